package kv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	txTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moviedb",
		Subsystem: "kv",
		Name:      "transactions_total",
		Help:      "Finished transactions by result (commit, rollback, conflict, error).",
	}, []string{"result"})

	txDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moviedb",
		Subsystem: "kv",
		Name:      "transaction_duration_seconds",
		Help:      "Wall time from begin to commit or rollback.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"result"})
)

const (
	resultCommit   = "commit"
	resultRollback = "rollback"
	resultConflict = "conflict"
	resultError    = "error"
)
