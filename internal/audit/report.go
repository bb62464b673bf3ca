package audit

import (
	"fmt"
	"strings"
	"time"

	"stolik/internal/db"
	"stolik/internal/model"
)

// BuildReport writes the full console report into w: one sheet of
// branches, one of weekly schedules, one of recent operator actions.
func BuildReport(branches []model.Branch, actions []db.AuditAction, w ExcelWriter) error {
	if err := writeBranchesSheet(branches, w); err != nil {
		return err
	}
	if err := writeSchedulesSheet(branches, w); err != nil {
		return err
	}
	return writeActionsSheet(actions, w)
}

func writeBranchesSheet(branches []model.Branch, w ExcelWriter) error {
	if err := w.AddSheet("Branches"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Name", "Reference", "Reservations", "Duration (min)", "Reservable tables"}); err != nil {
		return err
	}

	for i := range branches {
		b := &branches[i]
		status := "disabled"
		if b.AcceptsReservations {
			status = "enabled"
		}
		row := []interface{}{b.Name, b.Reference, status, b.ReservationDuration, b.ReservableTableCount()}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSchedulesSheet(branches []model.Branch, w ExcelWriter) error {
	if err := w.AddSheet("Weekly Schedules"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Branch", "Day", "Windows"}); err != nil {
		return err
	}

	for i := range branches {
		b := &branches[i]
		for _, day := range model.WeekDays {
			windows := formatWindows(b.ReservationTimes[day])
			if windows == "" {
				continue
			}
			if err := w.WriteRow([]interface{}{b.Name, day.Title(), windows}); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeActionsSheet(actions []db.AuditAction, w ExcelWriter) error {
	if err := w.AddSheet("Recent Actions"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"When", "Operator", "Action", "Branch", "Details"}); err != nil {
		return err
	}

	for _, a := range actions {
		row := []interface{}{
			a.CreatedAt.Format(time.RFC3339),
			a.Actor,
			a.Action,
			a.BranchName,
			a.Details,
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func formatWindows(pairs [][]string) string {
	var parts []string
	for _, p := range pairs {
		if len(p) == 2 {
			parts = append(parts, fmt.Sprintf("%s-%s", p[0], p[1]))
		}
	}
	return strings.Join(parts, ", ")
}
