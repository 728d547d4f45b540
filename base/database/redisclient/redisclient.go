package redisclient

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/nftcarousel/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	// NOTE: In k8s, a small amount of containers will fail to connect redis
	// caused by network issue, so we retry 3 times here.
	retryCount = 3
)

// Config is the redis connection config
type Config struct {
	URI      string
	Password string
	// PoolMultiplier scales pool size by cpu count, 0 uses fixed defaults
	PoolMultiplier float64
	// Retry dialing on startup, false in unit tests
	Retry bool
}

// MustConnectRedis connects to one redis uri
// NOTE This function panics if the connection fails.
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// NewPool builds the pool without dialing
func NewPool(cfg Config) *redis.Pool {
	maxIdle := 200
	maxActive := 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// ConnectRedis builds the pool and checks one connection
func ConnectRedis(cfg Config) (*redis.Pool, error) {
	p := NewPool(cfg)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	// at least 1 second
	sleepOffset := 1 * time.Second

	var dialErr error
	for i := retryCount; i >= 0; i-- {
		if i < retryCount {
			if !cfg.Retry {
				break
			}
			randSleep := r.Float32() * 1000
			time.Sleep(time.Duration(randSleep)*time.Millisecond + sleepOffset)
		}
		if dialErr = ping(p); dialErr != nil {
			log.Log().WithFields(log.Fields{
				"redisURI": cfg.URI,
				"err":      dialErr,
				"retry":    i,
			}).Error("fail to dial Redis")
			continue
		}
		break
	}
	if dialErr != nil {
		return nil, dialErr
	}

	log.Log().WithField("redisURI", cfg.URI).Info("redis connected")

	return p, nil
}

func ping(p *redis.Pool) error {
	c, err := p.Dial()
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Do("PING")
	return err
}
