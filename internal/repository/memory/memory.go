// Package memory is the local development and test backend for the
// repository interfaces. A single store mutex serializes transactions,
// which trivially satisfies the serializable read-modify-write contract.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/repository"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]domain.UserAccount
	photos       map[string]domain.PhotoRecord
	transactions map[string]domain.PointTransaction
	snapshots    map[string]domain.LeaderboardSnapshot

	repository.UserRepository
	repository.PhotoRepository
	repository.TransactionRepository
	repository.LeaderboardRepository
}

func NewStore() *Store {
	s := &Store{
		users:        make(map[string]domain.UserAccount),
		photos:       make(map[string]domain.PhotoRecord),
		transactions: make(map[string]domain.PointTransaction),
		snapshots:    make(map[string]domain.LeaderboardSnapshot),
	}
	s.UserRepository = &userRepository{store: s}
	s.PhotoRepository = &photoRepository{store: s}
	s.TransactionRepository = &transactionRepository{store: s}
	s.LeaderboardRepository = &leaderboardRepository{store: s}
	return s
}

// SeedUser installs an account document directly, bypassing the ledger.
// Dev and test setup only.
func (s *Store) SeedUser(user domain.UserAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// RunTransaction serializes fn on the store mutex. Writes are staged and
// applied only when fn succeeds, so a failed transaction leaves no trace.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:        s,
		users:        make(map[string]domain.UserAccount),
		photos:       make(map[string]domain.PhotoRecord),
		transactions: make(map[string]domain.PointTransaction),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memTx struct {
	store        *Store
	users        map[string]domain.UserAccount
	photos       map[string]domain.PhotoRecord
	transactions map[string]domain.PointTransaction
}

func (t *memTx) commit() {
	for id, u := range t.users {
		t.store.users[id] = u
	}
	for id, p := range t.photos {
		t.store.photos[id] = p
	}
	for id, e := range t.transactions {
		t.store.transactions[id] = e
	}
}

func (t *memTx) GetUser(id string) (*domain.UserAccount, error) {
	if u, ok := t.users[id]; ok {
		return &u, nil
	}
	u, ok := t.store.users[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "user %q not found", id)
	}
	return &u, nil
}

func (t *memTx) GetPhoto(id string) (*domain.PhotoRecord, error) {
	if p, ok := t.photos[id]; ok {
		return &p, nil
	}
	p, ok := t.store.photos[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "photo %q not found", id)
	}
	return &p, nil
}

func (t *memTx) SetUser(user *domain.UserAccount) error {
	t.users[user.ID] = *user
	return nil
}

func (t *memTx) CreatePhoto(photo *domain.PhotoRecord) error {
	if _, ok := t.photos[photo.ID]; ok {
		return status.Errorf(codes.AlreadyExists, "photo %q already exists", photo.ID)
	}
	if _, ok := t.store.photos[photo.ID]; ok {
		return status.Errorf(codes.AlreadyExists, "photo %q already exists", photo.ID)
	}
	t.photos[photo.ID] = *photo
	return nil
}

func (t *memTx) SetPhoto(photo *domain.PhotoRecord) error {
	t.photos[photo.ID] = *photo
	return nil
}

func (t *memTx) AppendTransaction(entry *domain.PointTransaction) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, ok := t.store.transactions[entry.ID]; ok {
		return status.Errorf(codes.AlreadyExists, "transaction %q already exists", entry.ID)
	}
	t.transactions[entry.ID] = *entry
	return nil
}

type userRepository struct {
	store *Store
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "user %q not found", id)
	}
	return &u, nil
}

func (r *userRepository) TopByWeeklyPhotos(ctx context.Context, limit int) ([]domain.UserAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]domain.UserAccount, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].WeeklyPhotos != users[j].WeeklyPhotos {
			return users[i].WeeklyPhotos > users[j].WeeklyPhotos
		}
		return users[i].ID < users[j].ID
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *userRepository) ListIDsWithWeeklyActivity(ctx context.Context, limit int) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var ids []string
	for id, u := range r.store.users {
		if u.WeeklyPhotos > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *userRepository) ZeroWeeklyCounts(ctx context.Context, ids []string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			u.WeeklyPhotos = 0
			r.store.users[id] = u
		}
	}
	return nil
}

type photoRepository struct {
	store *Store
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.PhotoRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.photos[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "photo %q not found", id)
	}
	return &p, nil
}

func (r *photoRepository) FindByFingerprint(ctx context.Context, hash string) (*domain.PhotoRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.photos {
		if p.ImageHash == hash {
			photo := p
			return &photo, nil
		}
	}
	return nil, nil
}

func (r *photoRepository) ListByStatus(ctx context.Context, st domain.PhotoStatus, limit int) ([]domain.PhotoRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var photos []domain.PhotoRecord
	for _, p := range r.store.photos {
		if p.Status == st {
			photos = append(photos, p)
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		if !photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].CreatedAt.Before(photos[j].CreatedAt)
		}
		return photos[i].ID < photos[j].ID
	})
	if len(photos) > limit {
		photos = photos[:limit]
	}
	return photos, nil
}

type transactionRepository struct {
	store *Store
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.PointTransaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var entries []domain.PointTransaction
	for _, e := range r.store.transactions {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type leaderboardRepository struct {
	store *Store
}

func (r *leaderboardRepository) SaveSnapshot(ctx context.Context, snapshot *domain.LeaderboardSnapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.snapshots[snapshot.WeekID] = *snapshot
	return nil
}

func (r *leaderboardRepository) GetSnapshot(ctx context.Context, weekID string) (*domain.LeaderboardSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap, ok := r.store.snapshots[weekID]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "snapshot %q not found", weekID)
	}
	return &snap, nil
}
