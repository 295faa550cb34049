package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PickupsScheduledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartwaste_pickups_scheduled_total",
		Help: "Total number of pickups scheduled, by waste type.",
	},
		[]string{"waste_type"},
	)

	PickupsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartwaste_pickups_cancelled_total",
		Help: "Total number of pickups moved to cancelled.",
	})

	StatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartwaste_status_changes_total",
		Help: "Total number of externally driven status changes, by new status.",
	},
		[]string{"status"},
	)

	PersistErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartwaste_persist_errors_total",
		Help: "Total number of failed writes of the pickup list to local storage.",
	})

	PickupsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "smartwaste_pickups",
		Help: "Current number of pickups held by the store.",
	})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartwaste_notifications_sent_total",
		Help: "Total number of push notifications attempted, by outcome.",
	},
		[]string{"outcome"},
	)
)
