package repository

import (
	"time"

	"github.com/x-xyz/nftcarousel/base/ctx"
	hcdomain "github.com/x-xyz/nftcarousel/domain/healthcheck"
	"github.com/x-xyz/nftcarousel/domain/keys"
	"github.com/x-xyz/nftcarousel/service/redis"
)

type impl struct {
	redisCache redis.Service
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(redisCache redis.Service) hcdomain.HealthCheckRepo {
	return &impl{
		redisCache: redisCache,
	}
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()

	if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
