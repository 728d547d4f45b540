package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/delivery"
	"github.com/x-xyz/nftcarousel/domain"
)

type handler struct {
	viewStats domain.ViewStats
}

// New registers the statistic routes, mws wrap every route
func New(e *echo.Echo, viewStats domain.ViewStats, mws ...echo.MiddlewareFunc) {
	h := &handler{viewStats}
	gs := e.Group("/statistics", mws...)
	gs.GET("/viewers", h.getViewers)
}

type viewersResp struct {
	UniqueViewers uint64 `json:"uniqueViewers"`
}

// getViewers
//
//	@Summary		Unique viewers
//	@Description	Estimated number of distinct addresses whose carousel was served
//	@Tags			statistics
//	@Produce		json
//	@Success		200	{object}	viewersResp
//	@Router			/statistics/viewers [get]
func (h *handler) getViewers(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, viewersResp{
		UniqueViewers: h.viewStats.UniqueViewers(),
	})
}
