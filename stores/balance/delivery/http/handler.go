package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/delivery"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/domain"
	"github.com/x-xyz/nftcarousel/service/nftbalance"
)

type handler struct {
	fetcher domain.BalanceFetcher
}

// New registers the balance proxy which serves the upstream payload shape, so the proxy
// backend can point at this service
func New(e *echo.Echo, fetcher domain.BalanceFetcher) {
	h := &handler{fetcher}

	g := e.Group("/api/fetch")
	g.GET("/nftBalance", h.getNftBalance)
}

type params struct {
	ChainName domain.ChainName `query:"chainName" validate:"required,chain"`
	Address   domain.Address   `query:"address" validate:"required,address"`
}

// getNftBalance
//
//	@Summary		NFT balance of an address on one chain
//	@Tags			balance
//	@Produce		json
//	@Param			chainName	query		string	true	"chain name"	Enums(eth-mainnet, matic-mainnet, matic-mumbai)
//	@Param			address		query		string	true	"address"
//	@Success		200			{object}	nftbalance.Payload
//	@Failure		400
//	@Failure		502
//	@Router			/api/fetch/nftBalance [get]
func (h *handler) getNftBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	balance, err := h.fetcher.Fetch(ctx, p.ChainName, p.Address)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"chain": p.ChainName,
		}).Error("fetcher.Fetch failed")
		return delivery.MakeJsonResp(c, http.StatusBadGateway, err)
	}

	return c.JSON(http.StatusOK, nftbalance.ToPayload(balance))
}
