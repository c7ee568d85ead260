package domain

// UploadEvent is the storage object-finalize notification consumed by the
// ingestion orchestrator. Name is the full object path, expected to look
// like users/{userId}/photos/{fileId}. Metadata carries uploader-supplied
// strings (latitude, longitude, client upload timestamp).
type UploadEvent struct {
	Name        string            `json:"name"`
	Bucket      string            `json:"bucket"`
	ContentType string            `json:"contentType"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
