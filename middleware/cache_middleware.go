package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/domain/keys"
	"github.com/x-xyz/nftcarousel/service/cache"
	compoundcache "github.com/x-xyz/nftcarousel/service/cache/compoundCache"
	"github.com/x-xyz/nftcarousel/service/cache/provider"
	"github.com/x-xyz/nftcarousel/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/nftcarousel/service/cache/provider/redis"
	"github.com/x-xyz/nftcarousel/service/redis"
)

var (
	cacheMiddlewareLocalCache provider.Provider
	cacheMiddlewareRedisCache provider.Provider

	once = sync.Once{}
)

// SetupCache must be called once before any CacheHttp
func SetupCache(redis redis.Service) {
	once.Do(func() {
		cacheMiddlewareLocalCache = primitive.New(keys.PfxHttpCache, 64)
		cacheMiddlewareRedisCache = redisCache.New(redis)
	})
}

// Response is the cached response data structure.
type Response struct {
	// Value is the cached response value.
	Value []byte

	// Header is the cached response header.
	Header http.Header
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Slice(param, func(i, j int) bool {
			return param[i] < param[j]
		})
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return strconv.FormatUint(hash.Sum64(), 36)
}

const (
	// HeaderXCache tells whether a response was replayed from the cache
	HeaderXCache = "X-Cache"
	cacheHit     = "HIT"
	cacheMiss    = "MISS"
)

// CacheHttp caches 200 GET responses by url for ttl. Requests sent with
// "Cache-Control: no-cache" skip the lookup and refresh the stored response.
func CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	if cacheMiddlewareLocalCache == nil || cacheMiddlewareRedisCache == nil {
		panic("need SetupCache before using CacheHttp")
	}

	primitiveTTL := 10 * time.Second
	if ttl < primitiveTTL {
		primitiveTTL = ttl
	}

	// local layer first so hot responses skip redis
	cacheService := compoundcache.NewCompoundCache([]cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   primitiveTTL,
			Pfx:   keys.PfxHttpCache,
			Cache: cacheMiddlewareLocalCache,
		}),
		cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxHttpCache,
			Cache: cacheMiddlewareRedisCache,
		}),
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Get("ctx").(ctx.Ctx)

			sortURLParams(req.URL)
			key := generateKey(req.URL.String())

			if !strings.Contains(req.Header.Get(echo.HeaderCacheControl), "no-cache") {
				response := Response{}
				if err := cacheService.Get(ctx, key, &response); err == nil {
					for k, v := range response.Header {
						c.Response().Header().Set(k, strings.Join(v, ","))
					}
					c.Response().Header().Set(HeaderXCache, cacheHit)
					return c.Blob(http.StatusOK, response.Header.Get(echo.HeaderContentType), response.Value)
				}
			}

			resBody := new(bytes.Buffer)
			mw := io.MultiWriter(c.Response().Writer, resBody)
			writer := &bodyDumpResponseWriter{Writer: mw, ResponseWriter: c.Response().Writer}
			c.Response().Writer = writer
			c.Response().Header().Set(HeaderXCache, cacheMiss)
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode != http.StatusOK {
				return nil
			}
			// the body is stored before any outer gzip, encoding headers belong to this response only
			header := writer.Header().Clone()
			header.Del(HeaderXCache)
			header.Del(echo.HeaderXRequestID)
			header.Del(echo.HeaderContentEncoding)
			header.Del(echo.HeaderContentLength)
			header.Del(echo.HeaderVary)
			if err := cacheService.Set(ctx, key, Response{Value: resBody.Bytes(), Header: header}); err != nil {
				ctx.WithFields(log.Fields{
					"err": err,
					"key": key,
				}).Error("failed to cacheService.Set")
			}
			return nil
		}
	}
}
