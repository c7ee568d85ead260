package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/repository"
)

type transactionRepository struct {
	client *fs.Client
}

func NewTransactionRepository(client *fs.Client) repository.TransactionRepository {
	return &transactionRepository{client: client}
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.PointTransaction, error) {
	logger.StoreCall("ListTransactionsByUser", transactionsCollection, "user_id", userID, "limit", limit)
	iter := r.client.Collection(transactionsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", fs.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var entries []domain.PointTransaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var entry domain.PointTransaction
		if err := doc.DataTo(&entry); err != nil {
			return nil, err
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, entry)
	}
	return entries, nil
}
