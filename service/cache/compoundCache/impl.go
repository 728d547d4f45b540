package compoundcache

import (
	"errors"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/service/cache"
)

// impl reads layers in order and backfills the faster ones on a hit further down.
// Concurrent misses of the same key share one getter call.
type impl struct {
	layers []cache.Service
	group  singleflight.Group
	met    metrics.Service
}

func NewCompoundCache(layers []cache.Service) cache.Service {
	return &impl{
		layers: layers,
		met:    metrics.New("compoundcache"),
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("failed to Get")
		return err
	}

	val, err, shared := im.group.Do(key, func() (interface{}, error) {
		val, err := getter()
		if err != nil {
			return nil, err
		}
		if err := im.Set(c, key, val); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Warn("failed to fill cache")
		}
		return val, nil
	})
	if err != nil {
		return err
	}
	if shared {
		im.met.BumpSum("load.shared", 1)
	}
	return cache.Fill(container, val)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	hitIdx := -1
	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if errors.Is(err, cache.ErrNotFound) {
			continue
		} else if err != nil {
			// a broken layer is treated as a miss so the next one can still serve
			c.WithFields(log.Fields{"err": err, "key": key, "layer": idx}).Warn("cache layer unavailable")
			continue
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return cache.ErrNotFound
	}
	im.met.BumpSum("hit", 1, "layer", strconv.Itoa(hitIdx))

	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, container); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key, "layer": idx}).Warn("failed to backfill cache layer")
		}
	}
	return nil
}

// Set writes every layer and returns the first failure
func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	var first error
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	var first error
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
