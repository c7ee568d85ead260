package ocr

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/logger"
)

// VisionClient detects text with the Cloud Vision API. The first text
// annotation of a TEXT_DETECTION response is the canonical full-image
// block; the per-word annotations that follow are ignored.
type VisionClient struct {
	service *vision.Service
}

func NewVisionClient(ctx context.Context, credentialsFile string) (*VisionClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	service, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &VisionClient{service: service}, nil
}

func (c *VisionClient) DetectText(ctx context.Context, imageURI string) (string, error) {
	logger.ExternalServiceCall("vision", "DetectText", "image_uri", imageURI)

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image: &vision.Image{
				Source: &vision.ImageSource{ImageUri: imageURI},
			},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	logger.ExternalServiceResult("vision", "DetectText", err)
	if err != nil {
		return "", status.Errorf(codes.Unavailable, "vision annotate failed: %v", err)
	}
	if len(resp.Responses) == 0 {
		return "", status.Error(codes.Internal, "vision returned no responses")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return "", status.Errorf(codes.Internal, "vision annotation error: %s", annotated.Error.Message)
	}
	if len(annotated.TextAnnotations) == 0 {
		return "", nil
	}
	return annotated.TextAnnotations[0].Description, nil
}
