package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

// FavoriteStorage stores each list as a JSON array object named
// <prefix><key>.json.
type FavoriteStorage struct {
	objects ports.ObjectStorage
	bucket  string
	prefix  string
}

func NewFavoriteStorage(objects ports.ObjectStorage, bucket, prefix string) *FavoriteStorage {
	return &FavoriteStorage{objects: objects, bucket: bucket, prefix: prefix}
}

func (s *FavoriteStorage) objectName(key string) string {
	return s.prefix + key + ".json"
}

func (s *FavoriteStorage) Get(ctx context.Context, key string) ([]int64, error) {
	data, err := s.objects.Download(ctx, s.bucket, s.objectName(key))
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := sonic.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.objectName(key), err)
	}
	return ids, nil
}

func (s *FavoriteStorage) Put(ctx context.Context, key string, placeIDs []int64) error {
	if placeIDs == nil {
		placeIDs = []int64{}
	}
	data, err := sonic.Marshal(placeIDs)
	if err != nil {
		return err
	}
	_, err = s.objects.Upload(ctx, s.bucket, s.objectName(key), "application/json", bytes.NewReader(data), int64(len(data)))
	return err
}

var _ ports.FavoriteStorage = (*FavoriteStorage)(nil)
