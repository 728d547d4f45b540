package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain/keys"
	"github.com/x-xyz/nftcarousel/service/redis"
	"github.com/x-xyz/nftcarousel/service/redis/redistest"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	redis redis.Service
}

func (s *cacheMiddlewareSuite) SetupSuite() {
	s.redis = redistest.NewStore().Service("cache")
	SetupCache(s.redis)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(mw echo.MiddlewareFunc, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	return s.serveReq(mw, httptest.NewRequest(http.MethodGet, target, nil), h)
}

func (s *cacheMiddlewareSuite) serveReq(mw echo.MiddlewareFunc, req *http.Request, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.WithValue(ctx.Background(), "requestID", "test"))
	s.Require().NoError(mw(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	mw := CacheHttp(30 * time.Second)

	res := "Hello, World"
	rec := s.serve(mw, "/?b=2&a=1", func(c echo.Context) error {
		return c.String(http.StatusOK, res)
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(res, rec.Body.String())
	s.Equal(cacheMiss, rec.Header().Get(HeaderXCache))

	// same query in another order hits the cache
	rec2 := s.serve(mw, "/?a=1&b=2", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, again")
	})
	s.Equal(http.StatusOK, rec2.Code)
	s.Equal(res, rec2.Body.String())
	s.Equal(echo.MIMETextPlainCharsetUTF8, rec2.Header().Get(echo.HeaderContentType))
	s.Equal(cacheHit, rec2.Header().Get(HeaderXCache))

	key := generateKey("/?a=1&b=2")
	_, err := s.redis.Get(ctx.Background(), keys.RedisKey(keys.PfxHttpCache, key))
	s.NoError(err)
}

func (s *cacheMiddlewareSuite) TestErrorNotCached() {
	mw := CacheHttp(30 * time.Second)

	rec := s.serve(mw, "/fail", func(c echo.Context) error {
		return c.String(http.StatusBadGateway, "upstream down")
	})
	s.Equal(http.StatusBadGateway, rec.Code)

	rec2 := s.serve(mw, "/fail", func(c echo.Context) error {
		return c.String(http.StatusOK, "recovered")
	})
	s.Equal(http.StatusOK, rec2.Code)
	s.Equal("recovered", rec2.Body.String())
}

func (s *cacheMiddlewareSuite) TestNoCacheRefreshes() {
	mw := CacheHttp(30 * time.Second)

	s.serve(mw, "/statistics/viewers", func(c echo.Context) error {
		return c.String(http.StatusOK, "1")
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/viewers", nil)
	req.Header.Set(echo.HeaderCacheControl, "no-cache")
	rec := s.serveReq(mw, req, func(c echo.Context) error {
		return c.String(http.StatusOK, "2")
	})
	s.Equal("2", rec.Body.String())
	s.Equal(cacheMiss, rec.Header().Get(HeaderXCache))

	rec = s.serve(mw, "/statistics/viewers", func(c echo.Context) error {
		return c.String(http.StatusOK, "3")
	})
	s.Equal("2", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestOnlyGetIsCached() {
	mw := CacheHttp(30 * time.Second)

	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	}
	for i := 0; i < 2; i++ {
		rec := s.serveReq(mw, httptest.NewRequest(http.MethodPost, "/post", nil), h)
		s.Empty(rec.Header().Get(HeaderXCache))
	}
	s.Equal(2, calls)
}

func (s *cacheMiddlewareSuite) TestRedirectNotCached() {
	mw := CacheHttp(30 * time.Second)

	s.serve(mw, "/moved", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/elsewhere")
	})
	rec := s.serve(mw, "/moved", func(c echo.Context) error {
		return c.String(http.StatusOK, "here")
	})
	s.Equal("here", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestGzipMissThenPlainHit() {
	e := echo.New()
	e.Use(echoMiddleware.Gzip())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	e.GET("/statistics/gzip", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int{"uniqueViewers": 3})
	}, CacheHttp(30*time.Second))

	req := httptest.NewRequest(http.MethodGet, "/statistics/gzip", nil)
	req.Header.Set(echo.HeaderAcceptEncoding, "gzip")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("gzip", rec.Header().Get(echo.HeaderContentEncoding))
	s.Equal(cacheMiss, rec.Header().Get(HeaderXCache))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statistics/gzip", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(cacheHit, rec.Header().Get(HeaderXCache))
	s.Empty(rec.Header().Get(echo.HeaderContentEncoding))
	s.Empty(rec.Header().Get(echo.HeaderVary))
	s.JSONEq(`{"uniqueViewers":3}`, rec.Body.String())
}
