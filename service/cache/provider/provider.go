package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/nftcarousel/base/ctx"
)

var (
	// ErrNotFound is returned for missing and expired keys
	ErrNotFound = errors.New("cache: not found")
)

// Provider stores raw bytes with a ttl, a ttl of 0 keeps the value until evicted
type Provider interface {
	Name() string
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
