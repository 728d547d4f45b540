package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/domain"
	"github.com/x-xyz/nftcarousel/service/ens"
	"github.com/x-xyz/nftcarousel/service/opensea"
)

type CarouselUseCaseCfg struct {
	Ens       ens.ENS
	Fetcher   domain.BalanceFetcher
	ViewStats domain.ViewStats
	// Chains defaults to domain.SupportedChains
	Chains []domain.ChainName
	// ReverseResolve looks up the primary name of raw address inputs
	ReverseResolve bool
	// FetchTimeout bounds the whole fetch batch, 0 means no bound
	FetchTimeout time.Duration
}

type impl struct {
	ens            ens.ENS
	fetcher        domain.BalanceFetcher
	stats          domain.ViewStats
	chains         []domain.ChainName
	reverseResolve bool
	fetchTimeout   time.Duration
	met            metrics.Service
}

// New creates carousel usecase
func New(cfg *CarouselUseCaseCfg) domain.CarouselUseCase {
	chains := cfg.Chains
	if len(chains) == 0 {
		chains = domain.SupportedChains
	}
	return &impl{
		ens:            cfg.Ens,
		fetcher:        cfg.Fetcher,
		stats:          cfg.ViewStats,
		chains:         chains,
		reverseResolve: cfg.ReverseResolve,
		fetchTimeout:   cfg.FetchTimeout,
		met:            metrics.New("carousel"),
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*domain.Carousel, error) {
	address = domain.Address(strings.TrimSpace(string(address)))
	if address.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}

	res := &domain.Carousel{
		Input:    address,
		Resolved: address,
		Items:    []domain.NftItem{},
	}

	if address.IsName() {
		resolved, err := im.ens.Resolve(c, string(address))
		if err != nil {
			im.met.BumpSum("resolve.err", 1)
			c.WithFields(log.Fields{
				"err":  err,
				"name": address,
			}).Error("ens.Resolve failed")
			return nil, domain.ErrUnresolvedName
		}
		if resolved.IsEmpty() {
			c.WithField("name", address).Warn("name has no address")
			return nil, domain.ErrUnresolvedName
		}
		res.Resolved = resolved
		res.Name = string(address)
	} else if im.reverseResolve {
		// best effort, a missing name only hides the title
		if name, err := im.ens.ReverseResolve(c, address); err == nil {
			res.Name = name
		}
	}

	balances := im.fetchAll(c, res.Resolved)

	res.Items = Aggregate(im.chains, balances)
	for i := range res.Items {
		item := &res.Items[i]
		item.MarketplaceUrl = opensea.AssetUrl(item.Chain, item.ContractAddress, item.TokenId)
	}

	if im.stats != nil {
		im.stats.Add(res.Resolved)
	}
	im.met.BumpHistogram("items", float64(len(res.Items)))

	return res, nil
}

type chainResult struct {
	chain   domain.ChainName
	balance *domain.ChainBalance
}

// fetchAll queries every chain concurrently and waits for all of them. Failed chains are
// left out of the result.
func (im *impl) fetchAll(c ctx.Ctx, address domain.Address) map[domain.ChainName]*domain.ChainBalance {
	defer im.met.BumpTime("fetch.time").End()

	if im.fetchTimeout > 0 {
		var cancel context.CancelFunc
		c, cancel = ctx.WithTimeout(c, im.fetchTimeout)
		defer cancel()
	}

	b := goroutines.NewBatch(len(im.chains), goroutines.WithBatchSize(len(im.chains)))
	defer b.Close()
	for _, chain := range im.chains {
		chain := chain
		b.Queue(func() (interface{}, error) {
			balance, err := im.fetcher.Fetch(c, chain, address)
			if err != nil {
				im.met.BumpSum("fetch.err", 1, "chain", string(chain))
				c.WithFields(log.Fields{
					"err":     err,
					"chain":   chain,
					"address": address,
				}).Error("fetcher.Fetch failed")
				return nil, err
			}
			return &chainResult{chain, balance}, nil
		})
	}
	b.QueueComplete()

	balances := make(map[domain.ChainName]*domain.ChainBalance, len(im.chains))
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		r := ret.Value().(*chainResult)
		balances[r.chain] = r.balance
	}
	return balances
}

func (im *impl) NewSession() domain.CarouselSession {
	return newSession(im)
}
