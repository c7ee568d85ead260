package storage

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MemoryStorage serves objects from an in-process map. Dev and test only.
type MemoryStorage struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	maxBytes int64
}

func NewMemoryStorage(maxBytes int64) *MemoryStorage {
	return &MemoryStorage{
		objects:  make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

// Put installs an object. The key is bucket + "/" + object.
func (s *MemoryStorage) Put(bucket, object string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+object] = data
}

func (s *MemoryStorage) Download(ctx context.Context, bucket, object string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[bucket+"/"+object]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "object %s/%s not found", bucket, object)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, status.Errorf(codes.InvalidArgument, "object %s/%s exceeds %d byte limit", bucket, object, s.maxBytes)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
