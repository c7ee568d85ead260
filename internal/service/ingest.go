package service

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/ledger"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/metrics"
	"flyerpoints-backend/internal/ocr"
	"flyerpoints-backend/internal/repository"
	"flyerpoints-backend/internal/storage"
	"flyerpoints-backend/internal/utils"
)

type ingestService struct {
	runner      repository.TxRunner
	photos      repository.PhotoRepository
	blobs       storage.BlobStorage
	ocrClient   ocr.Client
	photoPoints int64
}

func NewIngestService(runner repository.TxRunner, photos repository.PhotoRepository, blobs storage.BlobStorage, ocrClient ocr.Client, photoPoints int64) IngestService {
	return &ingestService{
		runner:      runner,
		photos:      photos,
		blobs:       blobs,
		ocrClient:   ocrClient,
		photoPoints: photoPoints,
	}
}

// parseUploadPath splits an object path of the shape
// users/{userId}/photos/{fileId} into its variable segments. Only this
// exact four-segment shape is ingested; deeper nesting under photos/ is
// treated as out of scope and skipped.
func parseUploadPath(name string) (userID, fileID string, ok bool) {
	parts := strings.Split(name, "/")
	if len(parts) != 4 || parts[0] != "users" || parts[2] != "photos" {
		return "", "", false
	}
	if parts[1] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[1], parts[3], true
}

func (s *ingestService) ProcessUploadEvent(ctx context.Context, event domain.UploadEvent) (*domain.PhotoRecord, error) {
	userID, fileID, ok := parseUploadPath(event.Name)
	if !ok {
		logger.InfoContext(ctx, "skipping upload outside photo path", "object", event.Name)
		metrics.PhotosSkipped.Inc()
		return nil, nil
	}
	if !strings.HasPrefix(event.ContentType, "image/") {
		logger.InfoContext(ctx, "skipping non-image upload",
			"object", event.Name, "content_type", event.ContentType)
		metrics.PhotosSkipped.Inc()
		return nil, nil
	}

	data, err := s.blobs.Download(ctx, event.Bucket, event.Name)
	if err != nil {
		// Oversize objects will never shrink on redelivery.
		if status.Code(err) == codes.InvalidArgument {
			logger.WarnContext(ctx, "skipping oversize upload", "object", event.Name, "error", err)
			metrics.PhotosSkipped.Inc()
			return nil, nil
		}
		return nil, err
	}

	// The record id is scoped by owner: clients name files by timestamp,
	// so bare file names can collide across users.
	photoID := userID + "_" + fileID

	fingerprint := utils.Fingerprint(data)
	existing, err := s.photos.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	isDuplicate := existing != nil && existing.ID != photoID

	// OCR runs for duplicates too, the record should carry its own text.
	text, err := s.ocrClient.DetectText(ctx, storage.ObjectURI(event.Bucket, event.Name))
	if err != nil {
		return nil, err
	}

	record := &domain.PhotoRecord{
		ID:             photoID,
		UserID:         userID,
		FilePath:       event.Name,
		StorageURL:     storage.ObjectURI(event.Bucket, event.Name),
		ImageHash:      fingerprint,
		OCRText:        text,
		Category:       utils.ClassifyFlyer(text),
		IsDuplicate:    isDuplicate,
		Status:         domain.PhotoStatusPending,
		ClientMetadata: event.Metadata,
		CreatedAt:      time.Now().UTC(),
	}
	if isDuplicate {
		record.Status = domain.PhotoStatusRejected
	}

	// The owner-scoped file id doubles as the record id, so a redelivered
	// event finds the record written by the first delivery and becomes a
	// no-op. The record and its pending credit commit in one transaction.
	err = s.runner.RunTransaction(ctx, func(tx repository.Tx) error {
		prior, err := tx.GetPhoto(record.ID)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if prior != nil {
			logger.InfoContext(ctx, "upload event already processed", "photo_id", record.ID)
			*record = *prior
			return nil
		}

		account, err := tx.GetUser(userID)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.CreatePhoto(record); err != nil {
			return err
		}
		if account == nil {
			// Unknown uploader: keep the record for audit, credit no one.
			logger.WarnContext(ctx, "photo owner has no account", "photo_id", record.ID, "user_id", userID)
			return nil
		}

		ledger.CreditPending(account, record, s.photoPoints, time.Now().UTC())
		return tx.SetUser(account)
	})
	if err != nil {
		return nil, err
	}

	metrics.PhotosIngested.Inc()
	if record.IsDuplicate {
		metrics.PhotosDuplicate.Inc()
	}
	logger.InfoContext(ctx, "photo ingested",
		"photo_id", record.ID,
		"user_id", userID,
		"category", record.Category,
		"duplicate", record.IsDuplicate)
	return record, nil
}
