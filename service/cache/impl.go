package cache

import (
	"encoding/json"
	"errors"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/domain/keys"
	"github.com/x-xyz/nftcarousel/service/cache/provider"
)

type impl struct {
	cfg ServiceConfig
	met metrics.Service
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}
	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}

	return &impl{
		cfg: config,
		met: metrics.New("cache"),
	}
}

func (im *impl) tags() []string {
	return []string{"provider", im.cfg.Cache.Name(), "prefix", im.cfg.Pfx}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	val, err := getter()
	if err != nil {
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		// the loaded value is still served
		c.WithFields(log.Fields{"err": err, "key": key}).Warn("failed to fill cache")
	}
	return Fill(container, val)
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.cfg.Pfx, key)

	val, _, err := im.cfg.Cache.Get(c, key)
	if errors.Is(err, provider.ErrNotFound) {
		im.met.BumpSum("miss", 1, im.tags()...)
		return ErrNotFound
	} else if err != nil {
		im.met.BumpSum("get.err", 1, im.tags()...)
		return err
	}
	if err := im.cfg.Deserialize(val, container); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("deserialize failed")
		return err
	}
	im.met.BumpSum("hit", 1, im.tags()...)
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.cfg.Pfx, key)

	val, err := im.cfg.Serialize(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("serialize failed")
		return err
	}
	return im.cfg.Cache.Set(c, key, val, im.cfg.Ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	return im.cfg.Cache.Del(c, keys.RedisKey(im.cfg.Pfx, key))
}
