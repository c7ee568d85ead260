package service

import (
	"context"
	"time"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/metrics"
	"flyerpoints-backend/internal/repository"
	"flyerpoints-backend/internal/utils"
)

type leaderboardService struct {
	users     repository.UserRepository
	snapshots repository.LeaderboardRepository
	topN      int
	batchSize int
	loc       *time.Location
}

// NewLeaderboardService builds the snapshot service. loc is the zone the
// weekly schedule runs in; week ids are always derived in that zone so
// the job and the current-week read agree around the week boundary.
func NewLeaderboardService(users repository.UserRepository, snapshots repository.LeaderboardRepository, topN, resetBatchSize int, loc *time.Location) LeaderboardService {
	return &leaderboardService{
		users:     users,
		snapshots: snapshots,
		topN:      topN,
		batchSize: resetBatchSize,
		loc:       loc,
	}
}

// RunWeeklySnapshot freezes the current ranking under the ISO week id of
// now, then zeroes every weekly counter. Rerunning within the same week
// overwrites the snapshot, so the job is safe to retry after a partial
// failure.
func (s *leaderboardService) RunWeeklySnapshot(ctx context.Context, now time.Time) (*domain.LeaderboardSnapshot, error) {
	weekID := utils.WeekID(now.In(s.loc))
	logger.InfoContext(ctx, "building weekly leaderboard snapshot", "week_id", weekID)

	top, err := s.users.TopByWeeklyPhotos(ctx, s.topN)
	if err != nil {
		metrics.SnapshotRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	rankings := make([]domain.LeaderboardEntry, 0, len(top))
	for _, account := range top {
		if account.WeeklyPhotos == 0 {
			break
		}
		rankings = append(rankings, domain.LeaderboardEntry{
			UserID:      account.ID,
			DisplayName: account.DisplayName,
			AvatarURL:   account.AvatarURL,
			Count:       account.WeeklyPhotos,
			Rank:        len(rankings) + 1,
		})
	}

	snapshot := &domain.LeaderboardSnapshot{
		WeekID:    weekID,
		Rankings:  rankings,
		UpdatedAt: now,
	}
	if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		metrics.SnapshotRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	// Counters reset in bounded batches to stay under the store's write
	// ceiling. Each pass re-queries, so the loop terminates once no
	// account has weekly activity left.
	for {
		ids, err := s.users.ListIDsWithWeeklyActivity(ctx, s.batchSize)
		if err != nil {
			metrics.SnapshotRuns.WithLabelValues("error").Inc()
			return nil, err
		}
		if len(ids) == 0 {
			break
		}
		if err := s.users.ZeroWeeklyCounts(ctx, ids); err != nil {
			metrics.SnapshotRuns.WithLabelValues("error").Inc()
			return nil, err
		}
		logger.InfoContext(ctx, "weekly counters reset", "week_id", weekID, "count", len(ids))
	}

	metrics.SnapshotRuns.WithLabelValues("success").Inc()
	logger.InfoContext(ctx, "weekly leaderboard snapshot saved",
		"week_id", weekID, "ranked", len(rankings))
	return snapshot, nil
}

func (s *leaderboardService) GetSnapshot(ctx context.Context, weekID string) (*domain.LeaderboardSnapshot, error) {
	return s.snapshots.GetSnapshot(ctx, weekID)
}

func (s *leaderboardService) CurrentWeekID(now time.Time) string {
	return utils.WeekID(now.In(s.loc))
}
