// Package ocr extracts text from uploaded flyer images.
package ocr

import "context"

// Client runs text detection on an image already sitting in blob storage,
// addressed by its gs:// URI. Implementations return the full detected
// text block, or an empty string when the image carries no readable text.
type Client interface {
	DetectText(ctx context.Context, imageURI string) (string, error)
}
