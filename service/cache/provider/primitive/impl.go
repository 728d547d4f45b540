package primitive

import (
	"errors"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// New is an in-process provider of sizeMB megabytes
func New(name string, sizeMB int) provider.Provider {
	return &impl{
		name:  name,
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func (im *impl) Name() string {
	return im.name
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, exp, err := im.cache.GetWithExpiration([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"provider": im.name, "key": key, "err": err}).Error("freecache.GetWithExpiration failed")
		return nil, 0, err
	}
	if exp == 0 {
		return val, 0, nil
	}
	return val, time.Until(time.Unix(int64(exp), 0)), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, seconds(ttl)); err != nil {
		c.WithFields(log.Fields{"provider": im.name, "key": key, "err": err}).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

// seconds rounds sub-second ttls up, freecache treats 0 as no expiry
func seconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	s := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		s++
	}
	return s
}
