package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/database/redisclient"
	"github.com/x-xyz/nftcarousel/base/env"
	"github.com/x-xyz/nftcarousel/base/goroutine"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	bValidator "github.com/x-xyz/nftcarousel/base/validator"
	mmiddleware "github.com/x-xyz/nftcarousel/middleware"
	"github.com/x-xyz/nftcarousel/service/ens"
	"github.com/x-xyz/nftcarousel/service/nftbalance"
	"github.com/x-xyz/nftcarousel/service/redis"
	"github.com/x-xyz/nftcarousel/service/viewstats"
	balance_delivery "github.com/x-xyz/nftcarousel/stores/balance/delivery/http"
	carousel_delivery "github.com/x-xyz/nftcarousel/stores/carousel/delivery/http"
	carousel_ws "github.com/x-xyz/nftcarousel/stores/carousel/delivery/ws"
	carousel_usecase "github.com/x-xyz/nftcarousel/stores/carousel/usecase"
	ens_delivery "github.com/x-xyz/nftcarousel/stores/ens/delivery/http"
	hc_delivery "github.com/x-xyz/nftcarousel/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/nftcarousel/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/nftcarousel/stores/healthcheck/usecase"
	statistic_delivery "github.com/x-xyz/nftcarousel/stores/statistic/delivery/http"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/nftcarousel/app/api/docs"
)

func loadConfig() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	envFile := pflag.String("env-file", ".env", "optional dotenv file with api keys")
	pflag.Parse()

	if err := env.LoadDotEnv(*envFile); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	// secrets only come from the environment
	viper.BindEnv("ens.apiKey", "ETH_MAINNET_API_KEY")
	viper.BindEnv("balance.covalentApiKey", "COVALENT_API_KEY")

	if viper.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			NFT Carousel API
//	@version		1.0
//	@description	NFT holdings of an address or ens name across chains, as json, html or a live websocket carousel.

// main
func main() {
	loadConfig()
	defer log.Sync()

	metrics.Init(metrics.Config{
		Host:    viper.GetString("metrics.host"),
		Port:    viper.GetInt("metrics.port"),
		EnvName: viper.GetString("env"),
		AppName: viper.GetString("app.name"),
	})

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// compressing hijacked websocket connections breaks the upgrade
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/ws/")
		},
	}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCachePool := redisclient.MustConnectRedis(redisclient.Config{
		URI:            viper.GetString("redis_cache.uri"),
		Password:       viper.GetString("redis_cache.password"),
		PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// ens on ethereum
	context.Info("init ens")
	ensRpc := viper.GetString("ens.rpcUrl") + viper.GetString("ens.apiKey")
	resolver, err := ens.NewChainResolver(ensRpc)
	if err != nil {
		context.WithField("err", err).Panic("ens.NewChainResolver failed")
	}
	ensService := ens.New(resolver, ens.Config{
		LocalTtl:  viper.GetDuration("ens.localTtl"),
		RemoteTtl: viper.GetDuration("ens.remoteTtl"),
		Redis:     redisCache,
	})

	balanceCfg := nftbalance.Config{
		Backend:         viper.GetString("balance.backend"),
		ProxyBaseUrl:    viper.GetString("balance.proxyBaseUrl"),
		CovalentBaseUrl: viper.GetString("balance.covalentBaseUrl"),
		CovalentApiKey:  viper.GetString("balance.covalentApiKey"),
		Timeout:         viper.GetDuration("balance.timeout"),
		RateLimit:       viper.GetFloat64("balance.rateLimit"),
		Burst:           viper.GetInt("balance.burst"),
	}
	fetcher, err := nftbalance.New(balanceCfg)
	if err != nil {
		context.WithFields(log.Fields{
			"err":     err,
			"backend": balanceCfg.Backend,
		}).Panic("nftbalance.New failed")
	}
	// the proxy route always talks to covalent, otherwise it would call itself
	proxyUpstream := nftbalance.NewCovalentFetcher(balanceCfg)

	viewStats := viewstats.New()

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(redisCache)
	hc := hc_usecase.New(hcRepo)

	carousel := carousel_usecase.New(&carousel_usecase.CarouselUseCaseCfg{
		Ens:            ensService,
		Fetcher:        fetcher,
		ViewStats:      viewStats,
		ReverseResolve: viper.GetBool("carousel.reverseResolve"),
		FetchTimeout:   viper.GetDuration("carousel.fetchTimeout"),
	})

	hc_delivery.New(e, hc)
	carousel_delivery.New(e, carousel)
	carousel_ws.New(e, carousel)
	balance_delivery.New(e, proxyUpstream)
	ens_delivery.New(e, ensService)
	statistic_delivery.New(e, viewStats, mmiddleware.CacheHttp(viper.GetDuration("statistics.cacheTtl")))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	serverDone := goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	})

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case p := <-serverDone:
		if p != nil {
			log.Log().WithField("panic", p.Panic).Error("server goroutine panicked")
		}
	}

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("failed to shutdown server")
	}
	if err := redisCachePool.Close(); err != nil {
		log.Log().WithField("err", err).Error("failed to close redis pool")
	}
	log.Log().Info("server stopped")
}
