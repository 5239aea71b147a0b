package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics keep bounded label sets; nothing is labelled per player.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jumpsync_tick_duration_seconds",
		Help:    "Time spent in one server tick",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
	})

	playersConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "jumpsync_players",
		Help: "Avatars currently in the match",
	})

	joinsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpsync_joins_rejected_total",
		Help: "Join requests rejected",
	}, []string{"reason"}) // "version mismatch", "server full"

	deltasReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jumpsync_deltas_received_total",
		Help: "Player deltas accepted for processing",
	})

	deltasRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpsync_deltas_rejected_total",
		Help: "Player deltas dropped",
	}, []string{"reason"}) // "rate", "malformed", "stale", "invalid"

	resimTicks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jumpsync_resim_ticks",
		Help:    "Full ticks replayed per received delta",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 60},
	})

	resimDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jumpsync_resim_degraded_total",
		Help: "Replays clamped to the tick budget",
	})

	tileReactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpsync_tile_reactions_total",
		Help: "Accepted tile reactions by resulting behavior",
	}, []string{"behavior"})

	collisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpsync_collision_outcomes_total",
		Help: "Applied avatar contact outcomes by kind",
	}, []string{"kind"})
)
