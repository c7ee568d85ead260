// Package storage reads uploaded image bytes out of the blob store that
// fired the upload event.
package storage

import (
	"context"
	"fmt"
)

// BlobStorage fetches an object's full contents. Implementations enforce
// a size ceiling so a hostile upload cannot balloon ingestion memory.
type BlobStorage interface {
	Download(ctx context.Context, bucket, object string) ([]byte, error)
}

// ObjectURI renders the gs:// address understood by the Vision API.
func ObjectURI(bucket, object string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, object)
}
