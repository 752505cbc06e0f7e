// Package cache keeps recently issued document URLs so repeated previews of
// the same file do not hit storage each time.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Coshio12/gestionar-carrera/internal/metrics"
)

// URLCache stores signed URLs by storage reference.
type URLCache interface {
	Get(ctx context.Context, ref string) (url string, ok bool, err error)
	Set(ctx context.Context, ref, url string, ttl time.Duration) error
}

// Redis is a URLCache backed by Redis string keys with expiry.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, prefix: "inscritos:signed:"}
}

func (r *Redis) Get(ctx context.Context, ref string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+ref).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, ref, url string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+ref, url, ttl).Err()
}

// Check implements health.Checker.
func (r *Redis) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Open parses a redis:// URL and verifies the server answers.
func Open(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }

// Signer issues a signed URL for a storage reference.
type Signer interface {
	SignedURL(ctx context.Context, ref string) (string, error)
}

// CachedSigner serves URLs from the cache while they are still valid and
// asks next otherwise. Cache failures are logged and never fail the request.
type CachedSigner struct {
	next    Signer
	cache   URLCache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCachedSigner caches URLs for ttl minus a safety margin, so a cached URL
// never reaches the browser about to expire.
func NewCachedSigner(next Signer, cache URLCache, urlTTL time.Duration, logger *slog.Logger, m *metrics.Metrics) *CachedSigner {
	ttl := urlTTL - urlTTL/4
	if cache == nil {
		cache = Nop{}
	}
	return &CachedSigner{next: next, cache: cache, ttl: ttl, logger: logger, metrics: m}
}

func (s *CachedSigner) SignedURL(ctx context.Context, ref string) (string, error) {
	if ref != "" && s.ttl > 0 {
		url, ok, err := s.cache.Get(ctx, ref)
		if err != nil {
			s.logger.Warn("signed url cache read failed", "error", err)
		}
		if ok {
			s.metrics.ObserveSignedURL("cache")
			return url, nil
		}
	}

	url, err := s.next.SignedURL(ctx, ref)
	if err != nil {
		return "", err
	}
	s.metrics.ObserveSignedURL("storage")

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, ref, url, s.ttl); err != nil {
			s.logger.Warn("signed url cache write failed", "error", err)
		}
	}
	return url, nil
}
