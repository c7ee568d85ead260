package domain

import "time"

// UserAccount is the ledger-owned account document. Balances and counters
// are mutated only inside store transactions, never by direct writes.
type UserAccount struct {
	ID            string    `firestore:"id" json:"id"`
	DisplayName   string    `firestore:"displayName" json:"display_name"`
	AvatarURL     string    `firestore:"photoURL" json:"avatar_url"`
	Points        int64     `firestore:"points" json:"points"`
	PendingPoints int64     `firestore:"pendingPoints" json:"pending_points"`
	TotalPhotos   int64     `firestore:"totalPhotos" json:"total_photos"`
	WeeklyPhotos  int64     `firestore:"weeklyPhotos" json:"weekly_photos"`
	LastActiveAt  time.Time `firestore:"lastActiveAt" json:"last_active_at"`
	IsAdmin       bool      `firestore:"isAdmin" json:"is_admin"`
}
