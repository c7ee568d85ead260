// Package metrics exposes Prometheus counters for the ingestion and
// ledger pipeline. Registered on the default registry and served from
// the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PhotosIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_photos_ingested_total",
		Help: "Upload events that produced a photo record.",
	})

	PhotosDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_photos_duplicate_total",
		Help: "Ingested photos flagged as duplicates by fingerprint.",
	})

	PhotosSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_photos_skipped_total",
		Help: "Upload events skipped before a record was written.",
	})

	PhotosApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_photos_approved_total",
		Help: "Pending photos resolved as approved.",
	})

	PhotosRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_photos_rejected_total",
		Help: "Pending photos resolved as rejected.",
	})

	Redemptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flyerpoints_redemptions_total",
		Help: "Accepted redemption requests.",
	})

	SnapshotRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flyerpoints_snapshot_runs_total",
		Help: "Weekly leaderboard snapshot job runs by outcome.",
	}, []string{"outcome"})
)
