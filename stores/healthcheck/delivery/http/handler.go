package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	hcdomain "github.com/x-xyz/nftcarousel/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

// check
//
//	@Summary	health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	healthcheck.Report
//	@Failure	503	{object}	healthcheck.Report
//	@Router		/health [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	report := h.healthCheck.Check(context)
	if !report.Healthy {
		context.WithFields(log.Fields{"checks": report.Checks}).Warn("unhealthy")
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}
