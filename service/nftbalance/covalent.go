package nftbalance

import (
	"fmt"
	"net/url"
	"strings"

	bCtx "github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain"
)

const authorizationKey = "Authorization"

type covalentFetcher struct {
	baseUrl string
	client  *client
}

// NewCovalentFetcher fetches the nft balances endpoint of the covalent api
func NewCovalentFetcher(cfg Config) domain.BalanceFetcher {
	baseUrl := cfg.CovalentBaseUrl
	if baseUrl == "" {
		baseUrl = defaultCovalentBaseUrl
	}
	c := newClient(BackendCovalent, cfg)
	if cfg.CovalentApiKey != "" {
		c.headers[authorizationKey] = "Bearer " + cfg.CovalentApiKey
	}
	return &covalentFetcher{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  c,
	}
}

func (f *covalentFetcher) Fetch(ctx bCtx.Ctx, chain domain.ChainName, address domain.Address) (*domain.ChainBalance, error) {
	u := fmt.Sprintf("%s/v1/%s/address/%s/balances_nft/", f.baseUrl, url.PathEscape(string(chain)), url.PathEscape(string(address)))
	return f.client.fetch(ctx, u, chain)
}
