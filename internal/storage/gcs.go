package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/logger"
)

// GCSStorage downloads objects from Google Cloud Storage.
type GCSStorage struct {
	client   *gcs.Client
	maxBytes int64
}

func NewGCSStorage(ctx context.Context, credentialsFile string, maxBytes int64) (*GCSStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStorage{client: client, maxBytes: maxBytes}, nil
}

func (s *GCSStorage) Download(ctx context.Context, bucket, object string) ([]byte, error) {
	logger.ExternalServiceCall("gcs", "Download", "bucket", bucket, "object", object)

	reader, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		logger.ExternalServiceResult("gcs", "Download", err)
		if err == gcs.ErrObjectNotExist {
			return nil, status.Errorf(codes.NotFound, "object %s/%s not found", bucket, object)
		}
		return nil, status.Errorf(codes.Unavailable, "open object %s/%s: %v", bucket, object, err)
	}
	defer reader.Close()

	// Read one byte past the ceiling to tell "exactly at the limit"
	// apart from "over it".
	data, err := io.ReadAll(io.LimitReader(reader, s.maxBytes+1))
	logger.ExternalServiceResult("gcs", "Download", err)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "read object %s/%s: %v", bucket, object, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, status.Errorf(codes.InvalidArgument, "object %s/%s exceeds %d byte limit", bucket, object, s.maxBytes)
	}
	return data, nil
}
