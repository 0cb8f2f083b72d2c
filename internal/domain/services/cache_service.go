package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Adinlo/colrag/internal/domain/entities"
)

const visibleListPrefix = "docs:visible:"

type CacheService interface {
	GetSummaries(ctx context.Context, key string) ([]*entities.DocumentSummary, error)
	SetSummaries(ctx context.Context, key string, docs []*entities.DocumentSummary) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	VisibleListKey(requesterID string) string
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, duration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type redisCacheService struct {
	client        RedisClient
	cacheDuration time.Duration
}

func NewRedisCacheService(client RedisClient, cacheDuration time.Duration) *redisCacheService {
	return &redisCacheService{
		client:        client,
		cacheDuration: cacheDuration,
	}
}

func (s *redisCacheService) GetSummaries(ctx context.Context, key string) ([]*entities.DocumentSummary, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var docs []*entities.DocumentSummary
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *redisCacheService) SetSummaries(ctx context.Context, key string, docs []*entities.DocumentSummary) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, s.cacheDuration)
}

func (s *redisCacheService) InvalidatePrefix(ctx context.Context, prefix string) error {
	pattern := fmt.Sprintf("%s*", prefix)
	keys, err := s.client.Keys(ctx, pattern)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return s.client.Del(ctx, keys...)
	}

	return nil
}

func (s *redisCacheService) VisibleListKey(requesterID string) string {
	return fmt.Sprintf("%s%s", visibleListPrefix, requesterID)
}
