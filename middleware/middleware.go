package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/delivery"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/base/validator"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	// another stuff , may be needed by middleware
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// AddContext adds a request scoped ctx.Ctx into echo, handlers read it by c.Get("ctx")
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			cont := ctx.From(c.Request().Context())
			cont = ctx.WithValue(cont, "requestID", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":             time.Since(start).Seconds() * 1000,
				"httpStatus":     res.Status,
				"host":           req.Host,
				"remoteIP":       c.RealIP(),
				"uri":            req.URL.Path,
				"route":          c.Path(),
				"httpMethod":     req.Method,
				"size":           res.Size,
				"userAgent":      req.UserAgent(),
				"acceptEncoding": req.Header.Get("Accept-Encoding"),
				"referer":        req.Header.Get("Referer"),
				"ip_country":     req.Header.Get("Cf-Ipcountry"),
			}

			if res.Status >= 400 {
				fields["nextErr"] = err
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}
			logger.WithFields(fields).Info("response")
			return nil
		}
	}
}

// IsValidAddress rejects requests whose path param, or query param of the same name,
// is not a hex address
func IsValidAddress(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			address := c.Param(param)
			if address == "" {
				address = c.QueryParam(param)
			}
			if !validator.IsValidAddress(address) {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
			}
			return next(c)
		}
	}
}
