package nftbalance

import (
	"fmt"
	"net/url"
	"strings"

	bCtx "github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain"
)

type proxyFetcher struct {
	baseUrl string
	client  *client
}

// NewProxyFetcher fetches through the self-hosted balance proxy
func NewProxyFetcher(cfg Config) domain.BalanceFetcher {
	baseUrl := cfg.ProxyBaseUrl
	if baseUrl == "" {
		baseUrl = defaultProxyBaseUrl
	}
	return &proxyFetcher{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		client:  newClient(BackendProxy, cfg),
	}
}

func (f *proxyFetcher) Fetch(ctx bCtx.Ctx, chain domain.ChainName, address domain.Address) (*domain.ChainBalance, error) {
	q := url.Values{}
	q.Set("chainName", string(chain))
	q.Set("address", string(address))
	u := fmt.Sprintf("%s/api/fetch/nftBalance?%s", f.baseUrl, q.Encode())
	return f.client.fetch(ctx, u, chain)
}
