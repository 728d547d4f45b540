package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain"
	mDomain "github.com/x-xyz/nftcarousel/domain/mocks"
	mEns "github.com/x-xyz/nftcarousel/service/ens/mocks"
	"github.com/x-xyz/nftcarousel/service/viewstats"
)

func balanceOf(chain domain.ChainName, contract domain.Address, tokenId domain.TokenId, image string) *domain.ChainBalance {
	var ext *domain.ExternalData
	if image != "" {
		ext = &domain.ExternalData{Image: image}
	}
	return &domain.ChainBalance{
		Chain: chain,
		Items: []domain.BalanceItem{
			{
				ContractAddress: contract,
				ContractName:    string(chain) + " collection",
				NftData:         []domain.NftData{{TokenId: tokenId, ExternalData: ext}},
			},
		},
	}
}

type carouselSuite struct {
	suite.Suite

	ens     *mEns.ENS
	fetcher *mDomain.BalanceFetcher
	stats   domain.ViewStats
	im      *impl
}

func TestCarouselSuite(t *testing.T) {
	suite.Run(t, new(carouselSuite))
}

func (s *carouselSuite) SetupTest() {
	s.ens = mEns.NewENS(s.T())
	s.fetcher = mDomain.NewBalanceFetcher(s.T())
	s.stats = viewstats.New()
	s.im = New(&CarouselUseCaseCfg{
		Ens:       s.ens,
		Fetcher:   s.fetcher,
		ViewStats: s.stats,
	}).(*impl)
}

func (s *carouselSuite) TestGetByName() {
	s.ens.On("Resolve", mock.Anything, "foo.eth").Return(domain.Address("0x123"), nil).Once()
	s.fetcher.On("Fetch", mock.Anything, domain.ChainEthMainnet, domain.Address("0x123")).
		Return(balanceOf(domain.ChainEthMainnet, "0xaaa", "1", "https://img/1.png"), nil).Once()
	s.fetcher.On("Fetch", mock.Anything, domain.ChainMaticMainnet, domain.Address("0x123")).
		Return(balanceOf(domain.ChainMaticMainnet, "0xbbb", "2", "https://img/2.png"), nil).Once()
	s.fetcher.On("Fetch", mock.Anything, domain.ChainMaticMumbai, domain.Address("0x123")).
		Return(balanceOf(domain.ChainMaticMumbai, "0xccc", "3", "https://img/3.png"), nil).Once()

	res, err := s.im.Get(ctx.Background(), "foo.eth")
	s.Require().NoError(err)

	s.Equal(domain.Address("foo.eth"), res.Input)
	s.Equal(domain.Address("0x123"), res.Resolved)
	s.Equal("foo.eth", res.Name)
	s.Equal([]domain.NftItem{
		{
			ContractName:    "eth-mainnet collection",
			ContractAddress: "0xaaa",
			TokenId:         "1",
			Image:           "https://img/1.png",
			Chain:           domain.ChainEthMainnet,
			MarketplaceUrl:  "https://opensea.io/assets/ethereum/0xaaa/1",
		},
		{
			ContractName:    "matic-mainnet collection",
			ContractAddress: "0xbbb",
			TokenId:         "2",
			Image:           "https://img/2.png",
			Chain:           domain.ChainMaticMainnet,
			MarketplaceUrl:  "https://opensea.io/assets/matic/0xbbb/2",
		},
		{
			ContractName:    "matic-mumbai collection",
			ContractAddress: "0xccc",
			TokenId:         "3",
			Image:           "https://img/3.png",
			Chain:           domain.ChainMaticMumbai,
			MarketplaceUrl:  "https://testnets.opensea.io/assets/mumbai/0xccc/3",
		},
	}, res.Items)
	s.ens.AssertNumberOfCalls(s.T(), "Resolve", 1)
	s.Equal(uint64(1), s.stats.UniqueViewers())
}

func (s *carouselSuite) TestGetRawAddress() {
	address := domain.Address("0x020cA66C30beC2c4Fe3861a94E4DB4A498A35872")
	for _, chain := range domain.SupportedChains {
		s.fetcher.On("Fetch", mock.Anything, chain, address).
			Return(&domain.ChainBalance{Chain: chain, Items: []domain.BalanceItem{}}, nil).Once()
	}

	res, err := s.im.Get(ctx.Background(), address)
	s.Require().NoError(err)
	s.Equal(address, res.Resolved)
	s.Empty(res.Name)
	s.Empty(res.Items)
	s.NotNil(res.Items)
	s.ens.AssertNotCalled(s.T(), "Resolve", mock.Anything, mock.Anything)
	s.ens.AssertNotCalled(s.T(), "ReverseResolve", mock.Anything, mock.Anything)
}

func (s *carouselSuite) TestGetOneChainFails() {
	s.fetcher.On("Fetch", mock.Anything, domain.ChainEthMainnet, domain.Address("0x123")).
		Return(balanceOf(domain.ChainEthMainnet, "0xaaa", "1", ""), nil).Once()
	s.fetcher.On("Fetch", mock.Anything, domain.ChainMaticMainnet, domain.Address("0x123")).
		Return(nil, errors.New("upstream down")).Once()
	s.fetcher.On("Fetch", mock.Anything, domain.ChainMaticMumbai, domain.Address("0x123")).
		Return(balanceOf(domain.ChainMaticMumbai, "0xccc", "3", ""), nil).Once()

	res, err := s.im.Get(ctx.Background(), "0x123")
	s.Require().NoError(err)
	s.Require().Len(res.Items, 2)
	s.Equal(domain.ChainEthMainnet, res.Items[0].Chain)
	s.Equal(domain.ChainMaticMumbai, res.Items[1].Chain)
	s.Equal(domain.PlaceholderImage, res.Items[0].Image)
}

func (s *carouselSuite) TestGetAllChainsFail() {
	s.fetcher.On("Fetch", mock.Anything, mock.Anything, domain.Address("0x123")).
		Return(nil, domain.ErrMalformedPayload).Times(3)

	res, err := s.im.Get(ctx.Background(), "0x123")
	s.Require().NoError(err)
	s.Empty(res.Items)
}

func (s *carouselSuite) TestGetUnresolvedName() {
	s.ens.On("Resolve", mock.Anything, "nobody.eth").Return(domain.Address(""), nil).Once()
	s.ens.On("Resolve", mock.Anything, "broken.eth").Return(domain.Address(""), errors.New("rpc down")).Once()

	_, err := s.im.Get(ctx.Background(), "nobody.eth")
	s.Equal(domain.ErrUnresolvedName, err)

	_, err = s.im.Get(ctx.Background(), "broken.eth")
	s.Equal(domain.ErrUnresolvedName, err)

	s.fetcher.AssertNotCalled(s.T(), "Fetch", mock.Anything, mock.Anything, mock.Anything)
	s.Equal(uint64(0), s.stats.UniqueViewers())
}

func (s *carouselSuite) TestGetEmptyInput() {
	_, err := s.im.Get(ctx.Background(), "  ")
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *carouselSuite) TestGetReverseResolve() {
	im := New(&CarouselUseCaseCfg{
		Ens:            s.ens,
		Fetcher:        s.fetcher,
		ReverseResolve: true,
	})
	s.ens.On("ReverseResolve", mock.Anything, domain.Address("0x123")).Return("foo.eth", nil).Once()
	s.fetcher.On("Fetch", mock.Anything, mock.Anything, domain.Address("0x123")).
		Return(&domain.ChainBalance{Items: []domain.BalanceItem{}}, nil).Times(3)

	res, err := im.Get(ctx.Background(), "0x123")
	s.Require().NoError(err)
	s.Equal("foo.eth", res.Name)
}

func (s *carouselSuite) TestGetReverseResolveFails() {
	im := New(&CarouselUseCaseCfg{
		Ens:            s.ens,
		Fetcher:        s.fetcher,
		ReverseResolve: true,
	})
	s.ens.On("ReverseResolve", mock.Anything, domain.Address("0x123")).Return("", errors.New("rpc down")).Once()
	s.fetcher.On("Fetch", mock.Anything, mock.Anything, domain.Address("0x123")).
		Return(&domain.ChainBalance{Items: []domain.BalanceItem{}}, nil).Times(3)

	res, err := im.Get(ctx.Background(), "0x123")
	s.Require().NoError(err)
	s.Empty(res.Name)
}

// blockingFetcher holds every fetch of the blocked address until its context is done
type blockingFetcher struct {
	blocked domain.Address
	started chan struct{}
	once    sync.Once
}

func (f *blockingFetcher) Fetch(c ctx.Ctx, chain domain.ChainName, address domain.Address) (*domain.ChainBalance, error) {
	if address == f.blocked {
		f.once.Do(func() { close(f.started) })
		<-c.Done()
		return nil, c.Err()
	}
	return balanceOf(chain, "0xaaa", "1", ""), nil
}

func (s *carouselSuite) TestSessionDropsStaleGeneration() {
	fetcher := &blockingFetcher{blocked: "0xold", started: make(chan struct{})}
	uc := New(&CarouselUseCaseCfg{Ens: s.ens, Fetcher: fetcher})
	session := uc.NewSession()
	defer session.Close()

	type result struct {
		res *domain.Carousel
		err error
	}
	oldDone := make(chan result, 1)
	go func() {
		res, err := session.Load(ctx.Background(), "0xold")
		oldDone <- result{res, err}
	}()

	select {
	case <-fetcher.started:
	case <-time.After(time.Second):
		s.FailNow("old fetch never started")
	}

	res, err := session.Load(ctx.Background(), "0xnew")
	s.Require().NoError(err)
	s.Equal(domain.Address("0xnew"), res.Resolved)
	s.Equal(uint64(2), res.Generation)
	s.Len(res.Items, 3)

	select {
	case old := <-oldDone:
		s.Nil(old.res)
		s.Equal(domain.ErrStaleGeneration, old.err)
	case <-time.After(time.Second):
		s.FailNow("old load was not cancelled")
	}
}

func (s *carouselSuite) TestSessionClose() {
	session := s.im.NewSession()
	session.Close()

	_, err := session.Load(ctx.Background(), "0x123")
	s.Error(err)
}
