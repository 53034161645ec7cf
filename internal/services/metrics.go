package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "wastedash"

var (
	// Tenant metrics
	tenantResolveCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tenant_resolve_total",
			Help:      "Total number of tenant resolutions by outcome",
		},
		[]string{"result"}, // hit, miss, not_found
	)

	tenantProvisionCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tenant_provision_total",
			Help:      "Total number of tenant provisioning attempts by outcome",
		},
		[]string{"result"}, // created, conflict, invalid, error
	)

	// Observation metrics
	observationWriteCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "observation_writes_total",
			Help:      "Total number of waste observation writes",
		},
		[]string{"operation"}, // insert, update
	)

	// Recalculation metrics
	recalcRowsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recalc_rows_total",
			Help:      "Rows processed by the recalculation job by outcome",
		},
		[]string{"result"}, // updated, unchanged, failed
	)
)
