// Package service implements the application workflows on top of the
// repository, ledger, ocr and storage packages.
package service

import (
	"context"
	"time"

	"flyerpoints-backend/internal/domain"
)

// IngestService turns a blob-store upload event into a photo record and,
// for non-duplicates, a tentative point credit.
type IngestService interface {
	// ProcessUploadEvent returns the resulting record, or (nil, nil)
	// when the event is permanently skippable (wrong path shape,
	// non-image content type, oversize object). Errors mean the event
	// should be redelivered.
	ProcessUploadEvent(ctx context.Context, event domain.UploadEvent) (*domain.PhotoRecord, error)
}

// ReviewService resolves pending photos. All operations require the
// caller to hold the admin flag.
type ReviewService interface {
	Approve(ctx context.Context, adminID, photoID string) (*domain.PhotoRecord, error)
	Reject(ctx context.Context, adminID, photoID string) (*domain.PhotoRecord, error)
	ListPending(ctx context.Context, adminID string, limit int) ([]domain.PhotoRecord, error)
}

// RedemptionService exchanges confirmed points for rewards.
type RedemptionService interface {
	Redeem(ctx context.Context, userID string, details domain.RedemptionDetails) (*domain.PointTransaction, error)
}

// LeaderboardService builds and serves the weekly ranking snapshots.
type LeaderboardService interface {
	RunWeeklySnapshot(ctx context.Context, now time.Time) (*domain.LeaderboardSnapshot, error)
	GetSnapshot(ctx context.Context, weekID string) (*domain.LeaderboardSnapshot, error)
	CurrentWeekID(now time.Time) string
}

// UserService serves the caller's own account view.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserAccount, []domain.PointTransaction, error)
}
