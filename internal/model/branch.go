// Package model holds the branch domain types mirrored from the remote
// reservations API plus the ephemeral form types edited in the console.
package model

// Branch is a restaurant location as returned by the branches API.
type Branch struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Reference           string                 `json:"reference"`
	AcceptsReservations bool                   `json:"accepts_reservations"`
	ReservationDuration int                    `json:"reservation_duration"` // minutes
	Sections            []Section              `json:"sections"`
	ReservationTimes    map[WeekDay][][]string `json:"reservation_times,omitempty"`
	OpeningFrom         string                 `json:"opening_from,omitempty"`
	OpeningTo           string                 `json:"opening_to,omitempty"`
}

// Section is a seating subdivision of a branch.
type Section struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}

// Table is a single table; its reservability toggles independently.
type Table struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	AcceptsReservations bool   `json:"accepts_reservations"`
}

// ReservableTableCount counts tables accepting reservations across all
// sections. Always recomputed from current sections, never cached.
func (b *Branch) ReservableTableCount() int {
	count := 0
	for _, section := range b.Sections {
		for _, table := range section.Tables {
			if table.AcceptsReservations {
				count++
			}
		}
	}
	return count
}
