package nftbalance

import (
	"errors"
	"net/http"
	"time"

	"github.com/x-xyz/nftcarousel/domain"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

const (
	BackendProxy    = "proxy"
	BackendCovalent = "covalent"

	defaultTimeout         = 10 * time.Second
	defaultProxyBaseUrl    = "http://localhost:8080"
	defaultCovalentBaseUrl = "https://api.covalenthq.com"
)

type Config struct {
	// Backend selects the upstream, proxy or covalent
	Backend         string
	ProxyBaseUrl    string
	CovalentBaseUrl string
	CovalentApiKey  string
	Timeout         time.Duration
	// RateLimit is the outbound requests per second, 0 means unlimited
	RateLimit float64
	Burst     int
	// HttpClient is used when set, mostly by tests
	HttpClient *http.Client
}

// Payload is the wire shape shared by both backends
type Payload struct {
	Data *PayloadData `json:"data"`
}

type PayloadData struct {
	Items []domain.BalanceItem `json:"items"`
}

// ToPayload renders a validated balance back into the wire shape
func ToPayload(b *domain.ChainBalance) Payload {
	items := []domain.BalanceItem{}
	if b != nil && b.Items != nil {
		items = b.Items
	}
	return Payload{Data: &PayloadData{Items: items}}
}

// New returns the fetcher of the configured backend
func New(cfg Config) (domain.BalanceFetcher, error) {
	switch cfg.Backend {
	case BackendProxy:
		return NewProxyFetcher(cfg), nil
	case BackendCovalent:
		return NewCovalentFetcher(cfg), nil
	default:
		return nil, domain.ErrUnsupportedBackend
	}
}
