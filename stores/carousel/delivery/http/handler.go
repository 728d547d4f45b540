package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/delivery"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/domain"
)

//go:embed templates/*.html
var templates embed.FS

var carouselTmpl = template.Must(template.ParseFS(templates, "templates/carousel.html"))

type handler struct {
	carousel domain.CarouselUseCase
}

type page struct {
	*domain.Carousel
	Placeholder string
}

// New registers the carousel routes
func New(e *echo.Echo, carousel domain.CarouselUseCase) {
	h := &handler{
		carousel: carousel,
	}

	g := e.Group("/carousel")

	g.GET("/:address", h.get)
	g.GET("/:address/html", h.getHtml)
}

type payload struct {
	Address domain.Address `param:"address" validate:"required"`
}

// load returns an empty carousel for names which cannot be resolved
func (h *handler) load(c echo.Context) (*domain.Carousel, error) {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return nil, domain.ErrBadParamInput
	}
	if err := c.Validate(&p); err != nil {
		return nil, domain.ErrBadParamInput
	}

	res, err := h.carousel.Get(ctx, p.Address)
	if errors.Is(err, domain.ErrUnresolvedName) {
		return &domain.Carousel{Input: p.Address, Items: []domain.NftItem{}}, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": p.Address,
		}).Error("carousel.Get failed")
		return nil, err
	}
	return res, nil
}

// get
//
//	@Summary		Get carousel
//	@Description	NFT holdings of an address or ens name across the supported chains
//	@Tags			carousel
//	@Produce		json
//	@Param			address	path		string	true	"address or ens name"	example(vitalik.eth)
//	@Success		200		{object}	domain.Carousel
//	@Failure		400
//	@Failure		500
//	@Router			/carousel/{address} [get]
func (h *handler) get(c echo.Context) error {
	res, err := h.load(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getHtml
//
//	@Summary		Get carousel page
//	@Description	NFT holdings of an address or ens name rendered as a html carousel
//	@Tags			carousel
//	@Produce		html
//	@Param			address	path	string	true	"address or ens name"	example(vitalik.eth)
//	@Success		200
//	@Failure		400
//	@Failure		500
//	@Router			/carousel/{address}/html [get]
func (h *handler) getHtml(c echo.Context) error {
	res, err := h.load(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	buf := new(bytes.Buffer)
	if err := Render(buf, res); err != nil {
		c.Get("ctx").(ctx.Ctx).WithField("err", err).Error("Render failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Render writes the carousel page
func Render(w io.Writer, carousel *domain.Carousel) error {
	return carouselTmpl.Execute(w, page{carousel, domain.PlaceholderImage})
}
