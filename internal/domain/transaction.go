package domain

import "time"

type TransactionType string

const (
	TransactionTypeEarn   TransactionType = "earn"
	TransactionTypeRedeem TransactionType = "redeem"
)

type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusCompleted RedemptionStatus = "completed"
)

// Reason codes carried on ledger entries.
const (
	ReasonPhotoApproval = "photo_approval"
	ReasonAmazonGift    = "amazon_gift"
)

// RedemptionDetails holds the delivery contact attached to a redeem entry,
// consumed out-of-band by fulfillment.
type RedemptionDetails struct {
	Name  string `firestore:"name" json:"name"`
	Email string `firestore:"email" json:"email"`
}

// PointTransaction is an append-only ledger entry. Amount is positive for
// earn and negative for redeem. Only a redemption's Status may change after
// creation (pending -> completed, out-of-band).
type PointTransaction struct {
	ID             string             `firestore:"id" json:"id"`
	UserID         string             `firestore:"userId" json:"user_id"`
	Type           TransactionType    `firestore:"type" json:"type"`
	Amount         int64              `firestore:"amount" json:"amount"`
	Reason         string             `firestore:"reason" json:"reason"`
	RelatedPhotoID string             `firestore:"relatedPhotoId,omitempty" json:"related_photo_id,omitempty"`
	Status         RedemptionStatus   `firestore:"status,omitempty" json:"status,omitempty"`
	Redemption     *RedemptionDetails `firestore:"redemptionDetails,omitempty" json:"redemption_details,omitempty"`
	CreatedAt      time.Time          `firestore:"createdAt" json:"created_at"`
}
