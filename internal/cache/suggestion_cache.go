package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/padariaops/backend-go/internal/config"
	"github.com/padariaops/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	suggestionKeyPrefix     = "suggestions:store"
	suggestionScanBatchSize = 100
)

// SuggestionCache caches one engine run per (store, date, stock snapshot).
// The stock map participates in the key because reconciliation depends on it.
type SuggestionCache interface {
	Get(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int) ([]domain.ProductSuggestion, bool, error)
	Set(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int, suggestions []domain.ProductSuggestion) error
	InvalidateStore(ctx context.Context, storeID int64) error
}

type redisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSuggestionCache struct{}

func NewSuggestionCache(cfg config.CacheConfig) (SuggestionCache, error) {
	if !cfg.Enabled {
		return &noopSuggestionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSuggestionCache{client: client, ttl: ttl}, nil
}

func NewNoopSuggestionCache() SuggestionCache {
	return &noopSuggestionCache{}
}

func (c *redisSuggestionCache) Get(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int) ([]domain.ProductSuggestion, bool, error) {
	payload, err := c.client.Get(ctx, buildSuggestionKey(storeID, asOf, stock)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var suggestions []domain.ProductSuggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil, false, fmt.Errorf("decode suggestion cache: %w", err)
	}

	return suggestions, true, nil
}

func (c *redisSuggestionCache) Set(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int, suggestions []domain.ProductSuggestion) error {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestion cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSuggestionKey(storeID, asOf, stock), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSuggestionCache) InvalidateStore(ctx context.Context, storeID int64) error {
	prefix := fmt.Sprintf("%s:%d:", suggestionKeyPrefix, storeID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, suggestionScanBatchSize)
}

func (n *noopSuggestionCache) Get(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int) ([]domain.ProductSuggestion, bool, error) {
	return nil, false, nil
}

func (n *noopSuggestionCache) Set(ctx context.Context, storeID int64, asOf time.Time, stock map[int64]int, suggestions []domain.ProductSuggestion) error {
	return nil
}

func (n *noopSuggestionCache) InvalidateStore(ctx context.Context, storeID int64) error {
	return nil
}

func buildSuggestionKey(storeID int64, asOf time.Time, stock map[int64]int) string {
	return fmt.Sprintf("%s:%d:%s:%s",
		suggestionKeyPrefix, storeID, asOf.Format("2006-01-02"), stockHash(stock))
}

// stockHash produces a stable digest of the stock snapshot regardless of map
// iteration order.
func stockHash(stock map[int64]int) string {
	if len(stock) == 0 {
		return "empty"
	}

	ids := make([]int64, 0, len(stock))
	for id := range stock {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10)+"="+strconv.Itoa(stock[id]))
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(sum[:])
}
