// Package ledger holds the point-ledger mutations as pure functions of
// (current account state, current photo state). Services execute them
// inside a store transaction; the functions themselves perform no I/O and
// are deterministic given their inputs, so a conflict-driven transaction
// retry re-derives the same result from the re-read state.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
)

// CreditPending tentatively credits the owner for a freshly ingested,
// non-duplicate photo. Duplicate records never contribute pending points.
func CreditPending(account *domain.UserAccount, photo *domain.PhotoRecord, reward int64, now time.Time) {
	if photo.IsDuplicate {
		return
	}
	account.PendingPoints += reward
	account.LastActiveAt = now
}

// Approve resolves a pending photo: moves the reward from the pending to
// the confirmed balance, bumps the photo counters and returns the matching
// earn entry. Fails with FailedPrecondition when the photo has already
// been resolved, which is what makes repeated or concurrent resolution
// calls settle to exactly one winner.
func Approve(account *domain.UserAccount, photo *domain.PhotoRecord, reward int64, now time.Time) (*domain.PointTransaction, error) {
	if photo.Status != domain.PhotoStatusPending {
		return nil, status.Errorf(codes.FailedPrecondition, "photo %s is not pending", photo.ID)
	}

	photo.Status = domain.PhotoStatusApproved
	account.PendingPoints -= reward
	account.Points += reward
	account.TotalPhotos++
	account.WeeklyPhotos++

	return &domain.PointTransaction{
		ID:             uuid.NewString(),
		UserID:         account.ID,
		Type:           domain.TransactionTypeEarn,
		Amount:         reward,
		Reason:         domain.ReasonPhotoApproval,
		RelatedPhotoID: photo.ID,
		CreatedAt:      now,
	}, nil
}

// Reject resolves a pending photo without issuing points: the tentative
// pending credit is discarded. No ledger entry and no counter changes.
func Reject(account *domain.UserAccount, photo *domain.PhotoRecord, reward int64) error {
	if photo.Status != domain.PhotoStatusPending {
		return status.Errorf(codes.FailedPrecondition, "photo %s is not pending", photo.ID)
	}

	photo.Status = domain.PhotoStatusRejected
	account.PendingPoints -= reward
	return nil
}

// Redeem debits the confirmed balance in exchange for a reward request.
// The returned redeem entry carries the delivery details and starts in
// fulfillment status pending; the debit itself is effective immediately.
func Redeem(account *domain.UserAccount, amount int64, details domain.RedemptionDetails, now time.Time) (*domain.PointTransaction, error) {
	if account.Points < amount {
		return nil, status.Errorf(codes.FailedPrecondition, "insufficient points: have %d, need %d", account.Points, amount)
	}

	account.Points -= amount
	account.LastActiveAt = now

	return &domain.PointTransaction{
		ID:         uuid.NewString(),
		UserID:     account.ID,
		Type:       domain.TransactionTypeRedeem,
		Amount:     -amount,
		Reason:     domain.ReasonAmazonGift,
		Status:     domain.RedemptionStatusPending,
		Redemption: &details,
		CreatedAt:  now,
	}, nil
}
