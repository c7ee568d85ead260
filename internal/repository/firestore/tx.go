package firestore

import (
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"flyerpoints-backend/internal/domain"
)

// storeTx adapts a *firestore.Transaction to repository.Tx. Firestore
// requires all transactional reads before the first buffered write; the
// services hold to that ordering.
type storeTx struct {
	client *fs.Client
	tx     *fs.Transaction
}

func (t *storeTx) GetUser(id string) (*domain.UserAccount, error) {
	doc, err := t.tx.Get(t.client.Collection(usersCollection).Doc(id))
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

func (t *storeTx) GetPhoto(id string) (*domain.PhotoRecord, error) {
	doc, err := t.tx.Get(t.client.Collection(photosCollection).Doc(id))
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

func (t *storeTx) SetUser(user *domain.UserAccount) error {
	return t.tx.Set(t.client.Collection(usersCollection).Doc(user.ID), user)
}

func (t *storeTx) CreatePhoto(photo *domain.PhotoRecord) error {
	return t.tx.Create(t.client.Collection(photosCollection).Doc(photo.ID), photo)
}

func (t *storeTx) SetPhoto(photo *domain.PhotoRecord) error {
	return t.tx.Set(t.client.Collection(photosCollection).Doc(photo.ID), photo)
}

func (t *storeTx) AppendTransaction(entry *domain.PointTransaction) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return t.tx.Create(t.client.Collection(transactionsCollection).Doc(entry.ID), entry)
}
