// Package enrich 负责补全实体所需的并发辅助请求.
package enrich

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency 列表补全的默认并发数
const DefaultConcurrency = 8

// Ordered 并发处理每个元素, 结果与输入顺序一致
// 任一元素失败时取消其余请求并返回该错误, 不返回部分结果
func Ordered[T, R any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Pair 并发执行两个独立查询, 例如提交的作者与提交者头像
func Pair[R any](ctx context.Context, a, b func(ctx context.Context) (R, error)) (R, R, error) {
	var ra, rb R
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ra, err = a(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rb, err = b(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		var zero R
		return zero, zero, err
	}
	return ra, rb, nil
}

// AvatarCache 头像地址查询缓存, 只缓存名称到地址的映射
type AvatarCache struct {
	cache *lru.Cache[string, string]
}

// NewAvatarCache size <= 0 时返回 nil, 即不缓存
func NewAvatarCache(size int) *AvatarCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil
	}
	return &AvatarCache{cache: c}
}

// Resolve 命中缓存直接返回, 否则调用 fetch 并缓存非空结果
func (c *AvatarCache) Resolve(ctx context.Context, key string, fetch func(ctx context.Context) (string, error)) (string, error) {
	if c == nil {
		return fetch(ctx)
	}
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	if v != "" {
		c.cache.Add(key, v)
	}
	return v, nil
}

// Len 缓存条目数
func (c *AvatarCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
