package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/validator"
	"github.com/x-xyz/nftcarousel/domain"
	"github.com/x-xyz/nftcarousel/domain/mocks"
)

type carouselResp struct {
	Data   domain.Carousel `json:"data"`
	Status string          `json:"status"`
}

type handlerSuite struct {
	suite.Suite

	uc *mocks.CarouselUseCase
	e  *echo.Echo
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.uc = mocks.NewCarouselUseCase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.uc)
}

func (s *handlerSuite) do(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var sample = &domain.Carousel{
	Input:    "foo.eth",
	Resolved: "0x123",
	Name:     "foo.eth",
	Items: []domain.NftItem{
		{
			ContractName:    "Apes",
			ContractAddress: "0xaaa",
			TokenId:         "1",
			Image:           "https://img/1.png",
			Chain:           domain.ChainEthMainnet,
			MarketplaceUrl:  "https://opensea.io/assets/ethereum/0xaaa/1",
		},
		{
			ContractName:    "Cats",
			ContractAddress: "0xccc",
			TokenId:         "3",
			Image:           domain.PlaceholderImage,
			Chain:           domain.ChainMaticMumbai,
			MarketplaceUrl:  "https://testnets.opensea.io/assets/mumbai/0xccc/3",
		},
	},
}

func (s *handlerSuite) TestGet() {
	s.uc.On("Get", mock.Anything, domain.Address("foo.eth")).Return(sample, nil).Once()

	rec := s.do("/carousel/foo.eth")
	s.Equal(http.StatusOK, rec.Code)

	resp := carouselResp{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("success", resp.Status)
	s.Equal(*sample, resp.Data)
}

func (s *handlerSuite) TestGetUnresolved() {
	s.uc.On("Get", mock.Anything, domain.Address("nobody.eth")).Return(nil, domain.ErrUnresolvedName).Once()

	rec := s.do("/carousel/nobody.eth")
	s.Equal(http.StatusOK, rec.Code)

	resp := carouselResp{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(domain.Address("nobody.eth"), resp.Data.Input)
	s.NotNil(resp.Data.Items)
	s.Empty(resp.Data.Items)
}

func (s *handlerSuite) TestGetFailed() {
	s.uc.On("Get", mock.Anything, domain.Address("0x123")).Return(nil, errors.New("boom")).Once()

	rec := s.do("/carousel/0x123")
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *handlerSuite) TestGetHtml() {
	s.uc.On("Get", mock.Anything, domain.Address("foo.eth")).Return(sample, nil).Once()

	rec := s.do("/carousel/foo.eth/html")
	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML))

	body := rec.Body.String()
	s.Contains(body, `href="https://opensea.io/assets/ethereum/0xaaa/1" target="_blank" rel="noopener noreferrer"`)
	s.Contains(body, `href="https://testnets.opensea.io/assets/mumbai/0xccc/3"`)
	s.Contains(body, `src="https://via.placeholder.com/150"`)
	s.Contains(body, "max-height: 60vh")
	s.Contains(body, "max-width: 40vw")
	s.Contains(body, "height: 20rem")
	s.Contains(body, `<p class="chain">matic-mumbai</p>`)
	s.Equal(2, strings.Count(body, `<div class="slide`))
}

func (s *handlerSuite) TestGetHtmlUnresolved() {
	s.uc.On("Get", mock.Anything, domain.Address("nobody.eth")).Return(nil, domain.ErrUnresolvedName).Once()

	rec := s.do("/carousel/nobody.eth/html")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(0, strings.Count(rec.Body.String(), `<div class="slide`))
}
