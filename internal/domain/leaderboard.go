package domain

import "time"

type LeaderboardEntry struct {
	UserID      string `firestore:"userId" json:"user_id"`
	DisplayName string `firestore:"displayName" json:"display_name"`
	AvatarURL   string `firestore:"photoURL" json:"avatar_url"`
	Count       int64  `firestore:"count" json:"count"`
	Rank        int    `firestore:"rank" json:"rank"`
}

// LeaderboardSnapshot is keyed by week id; rerunning the snapshot job for
// the same week overwrites the prior document.
type LeaderboardSnapshot struct {
	WeekID    string             `firestore:"weekId" json:"week_id"`
	Rankings  []LeaderboardEntry `firestore:"rankings" json:"rankings"`
	UpdatedAt time.Time          `firestore:"updatedAt" json:"updated_at"`
}
