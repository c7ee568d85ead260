package jobs

import (
	"context"
	"time"

	"flyerpoints-backend/internal/logger"
)

// SnapshotLeaderboard freezes the weekly ranking and resets the counters.
// Scheduled for the start of each ISO week in the configured timezone.
func (jr *JobRunner) SnapshotLeaderboard() {
	jr.runWithRecovery("SnapshotLeaderboard", func() {
		ctx := context.Background()

		snapshot, err := jr.leaderboard.RunWeeklySnapshot(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to snapshot leaderboard", "error", err)
			return
		}

		logger.Info("Leaderboard snapshot complete",
			"week_id", snapshot.WeekID,
			"ranked", len(snapshot.Rankings))
	})
}
