package cache

import (
	"context"

	"github.com/TemirB/order-print-agent/internal/domain"
	"github.com/TemirB/order-print-agent/internal/observability"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type source interface {
	Detail(ctx context.Context, id int64) (*domain.OrderDetail, error)
}

// DetailCache is a read-through LRU in front of the order source's detail
// endpoint. It backs the preview/reprint UI path only; the dispatch path
// always goes to the source directly so it never prints a stale body.
type DetailCache struct {
	lru     *lru.Cache[int64, domain.OrderDetail]
	src     source
	metrics observability.Metrics
}

func New(size int, src source, metrics observability.Metrics) (*DetailCache, error) {
	if size <= 0 {
		size = 1
	}
	c, err := lru.New[int64, domain.OrderDetail](size)
	if err != nil {
		return nil, err
	}
	return &DetailCache{
		lru:     c,
		src:     src,
		metrics: metrics,
	}, nil
}

func (c *DetailCache) Detail(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	if detail, ok := c.lru.Get(id); ok {
		c.metrics.IncDetailCacheHit()
		return &detail, nil
	}
	c.metrics.IncDetailCacheMiss()

	detail, err := c.src.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	c.lru.Add(id, *detail)
	return detail, nil
}

func (c *DetailCache) Invalidate(id int64) {
	c.lru.Remove(id)
}
