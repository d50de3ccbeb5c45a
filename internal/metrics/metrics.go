package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HoldingsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "butce_holdings_added_total",
		Help: "Total number of holdings appended to the worksheet.",
	})

	HoldingsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "butce_holdings_deleted_total",
		Help: "Total number of holdings removed by name.",
	})

	StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "butce_store_failures_total",
		Help: "Total number of failed record store operations.",
	}, []string{"op"})

	NormalizeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "butce_normalize_fallbacks_total",
		Help: "Total number of non-empty values that normalized to zero because nothing numeric was left.",
	})

	NetWorth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "butce_net_worth",
		Help: "Grand total of the most recently computed valuation.",
	})
)
