package domain

import "time"

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

type FlyerCategory string

const (
	CategorySupermarket FlyerCategory = "Supermarket"
	CategoryRealEstate  FlyerCategory = "Real Estate"
	CategoryRestaurant  FlyerCategory = "Restaurant"
	CategoryOther       FlyerCategory = "Other"
)

// PhotoRecord is created exactly once per ingested upload. Status is the
// only field that changes after creation, and only pending -> approved or
// pending -> rejected; duplicates are born rejected.
type PhotoRecord struct {
	ID             string            `firestore:"id" json:"id"`
	UserID         string            `firestore:"userId" json:"user_id"`
	FilePath       string            `firestore:"filePath" json:"file_path"`
	StorageURL     string            `firestore:"storageUrl" json:"storage_url"`
	ImageHash      string            `firestore:"imageHash" json:"image_hash"`
	OCRText        string            `firestore:"ocrText" json:"ocr_text"`
	Category       FlyerCategory     `firestore:"category" json:"category"`
	IsDuplicate    bool              `firestore:"isDuplicate" json:"is_duplicate"`
	Status         PhotoStatus       `firestore:"status" json:"status"`
	ClientMetadata map[string]string `firestore:"clientMetadata" json:"client_metadata,omitempty"`
	CreatedAt      time.Time         `firestore:"createdAt" json:"created_at"`
}
