package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swapsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_swaps_created_total",
		Help: "Number of swap requests created (pending or immediately redeemed).",
	})
	swapsSettledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_swaps_settled_total",
		Help: "Number of completed settlements by path.",
	}, []string{"path"}) // redemption | acceptance
	swapsDeclinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_swaps_declined_total",
		Help: "Number of declined swap requests.",
	})
	swapsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_swaps_cancelled_total",
		Help: "Number of cancelled swap requests.",
	})
	settlementConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_settlement_conflicts_total",
		Help: "Settlement attempts that lost the item status race.",
	})
)
