// Package firestore backs the repository interfaces with Cloud Firestore:
// serializable document transactions with conflict-driven retry for ledger
// mutations, and bounded WriteBatch commits for the weekly counter reset.
package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"

	"flyerpoints-backend/internal/repository"
)

const (
	usersCollection        = "users"
	photosCollection       = "photos"
	transactionsCollection = "pointTransactions"
	leaderboardCollection  = "leaderboard"
)

type Store struct {
	client *fs.Client
	repository.UserRepository
	repository.PhotoRepository
	repository.TransactionRepository
	repository.LeaderboardRepository
}

func NewStore(client *fs.Client) *Store {
	return &Store{
		client:                client,
		UserRepository:        NewUserRepository(client),
		PhotoRepository:       NewPhotoRepository(client),
		TransactionRepository: NewTransactionRepository(client),
		LeaderboardRepository: NewLeaderboardRepository(client),
	}
}

// RunTransaction runs fn inside a Firestore transaction. Firestore retries
// fn on write conflicts, so precondition re-reads inside fn are what keep
// concurrent callers from double-applying a mutation.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx repository.Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, t *fs.Transaction) error {
		return fn(&storeTx{client: s.client, tx: t})
	})
}
