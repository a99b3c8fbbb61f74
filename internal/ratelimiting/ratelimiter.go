package ratelimiting

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// Buckets for clients we have not seen in this long are evicted
const idleBucketTTL = 30 * time.Minute

type RateLimiter interface {
	Consume(key string) bool
}

type tokenBucketRateLimiter struct {
	bucketByKey *ttlcache.Cache[string, *rate.Limiter]
	refill      rate.Limit
	burst       int
	nowFunc     func() time.Time
}

func (l *tokenBucketRateLimiter) Consume(key string) bool {
	item, _ := l.bucketByKey.GetOrSet(key, rate.NewLimiter(l.refill, l.burst))
	return item.Value().AllowN(l.nowFunc(), 1)
}

type RefillPerSecond float64
type BurstSize int

// NewTokenBucketRateLimiter keeps one token bucket per key.
// The returned stop function ends the eviction loop.
func NewTokenBucketRateLimiter(refillPerSecond RefillPerSecond, burstSize BurstSize, nowFunc func() time.Time) (RateLimiter, func()) {
	bucketByKey := ttlcache.New(
		ttlcache.WithTTL[string, *rate.Limiter](idleBucketTTL),
	)
	go bucketByKey.Start()

	return &tokenBucketRateLimiter{
		bucketByKey: bucketByKey,
		refill:      rate.Limit(refillPerSecond),
		burst:       int(burstSize),
		nowFunc:     nowFunc,
	}, bucketByKey.Stop
}

type RequestRateLimiter interface {
	Consume(r *http.Request) bool
	KeyFor(r *http.Request) string
}

type requestBasedRateLimiter struct {
	limiter RateLimiter
	keyFunc func(r *http.Request) string
}

func (l *requestBasedRateLimiter) Consume(r *http.Request) bool {
	return l.limiter.Consume(l.keyFunc(r))
}

func (l *requestBasedRateLimiter) KeyFor(r *http.Request) string {
	return l.keyFunc(r)
}

func NewRequestBasedRateLimiter(limiter RateLimiter, keyFunc func(r *http.Request) string) RequestRateLimiter {
	return &requestBasedRateLimiter{
		limiter: limiter,
		keyFunc: keyFunc,
	}
}

func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port
		host = r.RemoteAddr
	}

	return fmt.Sprintf("ip: %s", host)
}
