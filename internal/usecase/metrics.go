package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Successful freight calculations partitioned by detected zone
	freightCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_calculations_total",
			Help: "Total number of freight calculations by zone",
		},
		[]string{"zone"},
	)

	freightUnsupportedCountryTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freight_unsupported_country_total",
			Help: "Total number of freight lookups rejected for an unsupported country",
		},
	)

	// Admin config updates partitioned by config kind
	freightConfigUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freight_config_updates_total",
			Help: "Total number of admin freight configuration updates",
		},
		[]string{"config"},
	)
)
