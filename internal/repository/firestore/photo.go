package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/repository"
)

type photoRepository struct {
	client *fs.Client
}

func NewPhotoRepository(client *fs.Client) repository.PhotoRepository {
	return &photoRepository{client: client}
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error) {
	logger.StoreCall("GetPhoto", photosCollection, "id", id)
	doc, err := r.client.Collection(photosCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	var photo domain.PhotoRecord
	if err := doc.DataTo(&photo); err != nil {
		return nil, err
	}
	photo.ID = doc.Ref.ID
	return &photo, nil
}

func (r *photoRepository) FindByFingerprint(ctx context.Context, hash string) (*domain.PhotoRecord, error) {
	logger.StoreCall("FindByFingerprint", photosCollection)
	iter := r.client.Collection(photosCollection).
		Where("imageHash", "==", hash).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var photo domain.PhotoRecord
	if err := doc.DataTo(&photo); err != nil {
		return nil, err
	}
	photo.ID = doc.Ref.ID
	return &photo, nil
}

func (r *photoRepository) ListByStatus(ctx context.Context, status domain.PhotoStatus, limit int) ([]domain.PhotoRecord, error) {
	logger.StoreCall("ListPhotosByStatus", photosCollection, "status", status, "limit", limit)
	iter := r.client.Collection(photosCollection).
		Where("status", "==", string(status)).
		OrderBy("createdAt", fs.Asc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var photos []domain.PhotoRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var photo domain.PhotoRecord
		if err := doc.DataTo(&photo); err != nil {
			return nil, err
		}
		photo.ID = doc.Ref.ID
		photos = append(photos, photo)
	}
	return photos, nil
}
