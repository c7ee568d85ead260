package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/repository"
)

type leaderboardRepository struct {
	client *fs.Client
}

func NewLeaderboardRepository(client *fs.Client) repository.LeaderboardRepository {
	return &leaderboardRepository{client: client}
}

func (r *leaderboardRepository) SaveSnapshot(ctx context.Context, snapshot *domain.LeaderboardSnapshot) error {
	logger.StoreCall("SaveSnapshot", leaderboardCollection, "week_id", snapshot.WeekID)
	// Set, not Create: rerunning the job inside the same week overwrites.
	_, err := r.client.Collection(leaderboardCollection).Doc(snapshot.WeekID).Set(ctx, snapshot)
	logger.StoreResult("SaveSnapshot", err)
	return err
}

func (r *leaderboardRepository) GetSnapshot(ctx context.Context, weekID string) (*domain.LeaderboardSnapshot, error) {
	logger.StoreCall("GetSnapshot", leaderboardCollection, "week_id", weekID)
	doc, err := r.client.Collection(leaderboardCollection).Doc(weekID).Get(ctx)
	if err != nil {
		return nil, err
	}
	var snapshot domain.LeaderboardSnapshot
	if err := doc.DataTo(&snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
