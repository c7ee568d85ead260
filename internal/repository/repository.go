package repository

import (
	"context"

	"flyerpoints-backend/internal/domain"
)

// Tx is the view of the document store inside one serializable
// read-modify-write transaction. Backends require every read to happen
// before the first write of the same transaction.
type Tx interface {
	GetUser(id string) (*domain.UserAccount, error)
	GetPhoto(id string) (*domain.PhotoRecord, error)
	SetUser(user *domain.UserAccount) error
	CreatePhoto(photo *domain.PhotoRecord) error
	SetPhoto(photo *domain.PhotoRecord) error
	AppendTransaction(entry *domain.PointTransaction) error
}

// TxRunner executes fn inside a single store transaction spanning the
// documents fn touches. Conflicting concurrent transactions are retried by
// the backend; fn may therefore run more than once and must not carry side
// effects beyond its reads and writes.
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserAccount, error)
	// TopByWeeklyPhotos returns up to limit accounts ordered by weekly
	// photo count descending.
	TopByWeeklyPhotos(ctx context.Context, limit int) ([]domain.UserAccount, error)
	// ListIDsWithWeeklyActivity returns up to limit account ids whose
	// weekly photo count is nonzero.
	ListIDsWithWeeklyActivity(ctx context.Context, limit int) ([]string, error)
	// ZeroWeeklyCounts resets the weekly counter for the given accounts in
	// one atomic batch write. Callers must keep len(ids) under the store's
	// batch operation ceiling.
	ZeroWeeklyCounts(ctx context.Context, ids []string) error
}

type PhotoRepository interface {
	GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error)
	// FindByFingerprint returns any stored record with the given content
	// hash, or nil when none exists. The lookup runs outside transactions;
	// paired with record creation it is a best-effort duplicate detector:
	// two concurrent uploads of identical bytes may both pass. Accepted
	// trade-off, the store offers no cheap uniqueness constraint here.
	FindByFingerprint(ctx context.Context, hash string) (*domain.PhotoRecord, error)
	ListByStatus(ctx context.Context, status domain.PhotoStatus, limit int) ([]domain.PhotoRecord, error)
}

type TransactionRepository interface {
	// ListByUser returns the user's ledger entries, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.PointTransaction, error)
}

type LeaderboardRepository interface {
	// SaveSnapshot writes the snapshot keyed by its week id, overwriting
	// any prior snapshot for the same week.
	SaveSnapshot(ctx context.Context, snapshot *domain.LeaderboardSnapshot) error
	GetSnapshot(ctx context.Context, weekID string) (*domain.LeaderboardSnapshot, error)
}
