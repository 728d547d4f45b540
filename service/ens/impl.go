package ens

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/base/ptr"
	"github.com/x-xyz/nftcarousel/domain"
	"github.com/x-xyz/nftcarousel/domain/keys"
	"github.com/x-xyz/nftcarousel/service/cache"
	compoundcache "github.com/x-xyz/nftcarousel/service/cache/compoundCache"
	"github.com/x-xyz/nftcarousel/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/nftcarousel/service/cache/provider/redis"
	"github.com/x-xyz/nftcarousel/service/redis"
)

const (
	defaultLocalTtl  = 30 * time.Second
	defaultRemoteTtl = 7 * 24 * time.Hour
)

// go-ens reports these as errors, they mean the name or address has no record
var emptyRecordErrs = map[string]bool{
	"unregistered name": true,
	"no address":        true,
	"not a resolver":    true,
	"no resolution":     true,
}

type Config struct {
	LocalTtl  time.Duration
	RemoteTtl time.Duration
	// Redis is the optional shared cache layer
	Redis redis.Service
}

type impl struct {
	resolver Resolver
	cache    cache.Service
	met      metrics.Service
}

// New wraps the resolver with a local cache and, when configured, a redis cache
func New(resolver Resolver, cfg Config) ENS {
	if cfg.LocalTtl == 0 {
		cfg.LocalTtl = defaultLocalTtl
	}
	if cfg.RemoteTtl == 0 {
		cfg.RemoteTtl = defaultRemoteTtl
	}

	layers := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   cfg.LocalTtl,
			Pfx:   keys.PfxEns,
			Cache: primitive.New("ens", 32),
		}),
	}
	if cfg.Redis != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:   cfg.RemoteTtl,
			Pfx:   keys.PfxEns,
			Cache: redisCache.New(cfg.Redis),
		}))
	}

	return &impl{
		resolver: resolver,
		cache:    compoundcache.NewCompoundCache(layers),
		met:      metrics.New("ens"),
	}
}

func (im *impl) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	res := domain.Address("")
	key := keys.RedisKey("resolve", name)
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		defer im.met.BumpTime("resolve.latency").End()
		addr, err := im.resolver.Resolve(name)
		if err != nil && emptyRecordErrs[fmt.Sprint(err)] {
			ctx.WithField("name", name).Info("ens name has no address")
			val := domain.Address("")
			return &val, nil
		}
		if err != nil {
			im.met.BumpSum("resolve.err", 1)
			ctx.WithFields(log.Fields{
				"err":  err,
				"name": name,
			}).Error("failed to resolver.Resolve")
			return nil, err
		}
		val := domain.Address(addr.Hex())
		ctx.WithFields(log.Fields{
			"name":    name,
			"address": val,
		}).Info("ens name resolved")
		return &val, nil
	})

	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}

	return res, nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	res := ""
	key := keys.RedisKey("reverse-resolve", address.ToLowerStr())
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		name, err := im.resolver.ReverseResolve(common.HexToAddress(string(address)))
		if err != nil && emptyRecordErrs[fmt.Sprint(err)] {
			return ptr.String(""), nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("failed to resolver.ReverseResolve")
			return nil, err
		}
		return &name, nil
	})

	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}

	return res, nil
}
