package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcarousel/base/ctx"
)

const (
	// Forever is the expire value for keys without ttl
	Forever = time.Duration(-1)
)

var (
	ErrNotFound = errors.New("redis: key not found")
	ErrNoTTL    = errors.New("redis: key has no ttl")
	ErrNoPool   = errors.New("redis: no pool")
)

// Service is the redis command set used by caches and health checks
type Service interface {
	Name() string
	Ping(context ctx.Ctx) error
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	// TTL returns the remaining seconds to live
	TTL(context ctx.Ctx, key string) (int, error)
}
