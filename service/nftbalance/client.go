package nftbalance

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/domain"
)

type client struct {
	name    string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	headers map[string]string
	met     metrics.Service
}

func newClient(name string, cfg Config) *client {
	hc := cfg.HttpClient
	if hc == nil {
		hc = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &client{
		name:    name,
		client:  hc,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
		headers: map[string]string{},
		met:     metrics.New("nftbalance"),
	}
}

// fetch loads and validates one chain's payload
func (c *client) fetch(ctx bCtx.Ctx, url string, chain domain.ChainName) (*domain.ChainBalance, error) {
	defer c.met.BumpTime("fetch.latency", "backend", c.name, "chain", string(chain)).End()

	data, err := c.get(ctx, url)
	if err != nil {
		c.met.BumpSum("fetch.err", 1, "backend", c.name, "chain", string(chain))
		return nil, err
	}

	balance, err := decode(chain, data)
	if err != nil {
		c.met.BumpSum("fetch.malformed", 1, "backend", c.name, "chain", string(chain))
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("decode failed")
		return nil, err
	}
	return balance, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("limiter.Wait failed")
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}

func decode(chain domain.ChainName, data []byte) (*domain.ChainBalance, error) {
	payload := Payload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, xerrors.Errorf("%v: %w", err, domain.ErrMalformedPayload)
	}
	if payload.Data == nil {
		return nil, xerrors.Errorf("missing data: %w", domain.ErrMalformedPayload)
	}
	if payload.Data.Items == nil {
		return nil, xerrors.Errorf("missing data.items: %w", domain.ErrMalformedPayload)
	}

	items := make([]domain.BalanceItem, 0, len(payload.Data.Items))
	for _, item := range payload.Data.Items {
		// contracts without token data have nothing to display
		if len(item.NftData) == 0 {
			continue
		}
		items = append(items, item)
	}
	return &domain.ChainBalance{
		Chain: chain,
		Items: items,
	}, nil
}
