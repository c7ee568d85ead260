package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/repository"
)

type userRepository struct {
	client *fs.Client
}

func NewUserRepository(client *fs.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	logger.StoreCall("GetUser", usersCollection, "id", id)
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	var user domain.UserAccount
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *userRepository) TopByWeeklyPhotos(ctx context.Context, limit int) ([]domain.UserAccount, error) {
	logger.StoreCall("TopByWeeklyPhotos", usersCollection, "limit", limit)
	iter := r.client.Collection(usersCollection).
		OrderBy("weeklyPhotos", fs.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var users []domain.UserAccount
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var user domain.UserAccount
		if err := doc.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = doc.Ref.ID
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) ListIDsWithWeeklyActivity(ctx context.Context, limit int) ([]string, error) {
	logger.StoreCall("ListIDsWithWeeklyActivity", usersCollection, "limit", limit)
	iter := r.client.Collection(usersCollection).
		Where("weeklyPhotos", ">", 0).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}

func (r *userRepository) ZeroWeeklyCounts(ctx context.Context, ids []string) error {
	logger.StoreCall("ZeroWeeklyCounts", usersCollection, "count", len(ids))
	batch := r.client.Batch()
	for _, id := range ids {
		batch.Update(r.client.Collection(usersCollection).Doc(id), []fs.Update{
			{Path: "weeklyPhotos", Value: 0},
		})
	}
	_, err := batch.Commit(ctx)
	logger.StoreResult("ZeroWeeklyCounts", err)
	return err
}
