package service

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/ledger"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/metrics"
	"flyerpoints-backend/internal/repository"
)

type reviewService struct {
	runner      repository.TxRunner
	users       repository.UserRepository
	photos      repository.PhotoRepository
	photoPoints int64
}

func NewReviewService(runner repository.TxRunner, users repository.UserRepository, photos repository.PhotoRepository, photoPoints int64) ReviewService {
	return &reviewService{
		runner:      runner,
		users:       users,
		photos:      photos,
		photoPoints: photoPoints,
	}
}

// requireAdmin re-reads the caller's account on every call so a revoked
// admin flag takes effect immediately.
func (s *reviewService) requireAdmin(ctx context.Context, adminID string) error {
	account, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return status.Error(codes.PermissionDenied, "admin access required")
		}
		return err
	}
	if !account.IsAdmin {
		return status.Error(codes.PermissionDenied, "admin access required")
	}
	return nil
}

func (s *reviewService) Approve(ctx context.Context, adminID, photoID string) (*domain.PhotoRecord, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	var approved domain.PhotoRecord
	err := s.runner.RunTransaction(ctx, func(tx repository.Tx) error {
		photo, err := tx.GetPhoto(photoID)
		if err != nil {
			return err
		}
		account, err := tx.GetUser(photo.UserID)
		if err != nil {
			return err
		}

		entry, err := ledger.Approve(account, photo, s.photoPoints, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := tx.SetPhoto(photo); err != nil {
			return err
		}
		if err := tx.SetUser(account); err != nil {
			return err
		}
		if err := tx.AppendTransaction(entry); err != nil {
			return err
		}
		approved = *photo
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PhotosApproved.Inc()
	logger.InfoContext(ctx, "photo approved", "photo_id", photoID, "admin_id", adminID)
	return &approved, nil
}

func (s *reviewService) Reject(ctx context.Context, adminID, photoID string) (*domain.PhotoRecord, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	var rejected domain.PhotoRecord
	err := s.runner.RunTransaction(ctx, func(tx repository.Tx) error {
		photo, err := tx.GetPhoto(photoID)
		if err != nil {
			return err
		}
		account, err := tx.GetUser(photo.UserID)
		if err != nil {
			return err
		}

		if err := ledger.Reject(account, photo, s.photoPoints); err != nil {
			return err
		}
		if err := tx.SetPhoto(photo); err != nil {
			return err
		}
		if err := tx.SetUser(account); err != nil {
			return err
		}
		rejected = *photo
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PhotosRejected.Inc()
	logger.InfoContext(ctx, "photo rejected", "photo_id", photoID, "admin_id", adminID)
	return &rejected, nil
}

func (s *reviewService) ListPending(ctx context.Context, adminID string, limit int) ([]domain.PhotoRecord, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.photos.ListByStatus(ctx, domain.PhotoStatusPending, limit)
}
