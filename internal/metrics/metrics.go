package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stolik",
			Name:      "api_requests_total",
			Help:      "Count of branches API requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	reservationToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stolik",
			Name:      "reservation_toggles_total",
			Help:      "Count of branch reservation toggles by action.",
		},
		[]string{"action"},
	)

	settingsUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stolik",
			Name:      "settings_updates_total",
			Help:      "Count of branch settings updates by outcome.",
		},
		[]string{"outcome"},
	)

	validationRejects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stolik",
			Name:      "validation_rejects_total",
			Help:      "Count of schedule drafts rejected by validation.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, reservationToggles, settingsUpdates, validationRejects)
	})
}

func IncAPIRequest(operation, outcome string) {
	apiRequests.WithLabelValues(operation, outcome).Inc()
}

func IncReservationToggle(action string) {
	reservationToggles.WithLabelValues(action).Inc()
}

func IncSettingsUpdate(outcome string) {
	settingsUpdates.WithLabelValues(outcome).Inc()
}

func IncValidationReject() {
	validationRejects.Inc()
}
