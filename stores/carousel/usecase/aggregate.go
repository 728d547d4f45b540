package usecase

import (
	"strings"

	"github.com/x-xyz/nftcarousel/domain"
)

// Aggregate flattens per-chain balances into display items in chain order. Chains without
// a balance are skipped, items keep their upstream order and are not deduplicated.
func Aggregate(chains []domain.ChainName, balances map[domain.ChainName]*domain.ChainBalance) []domain.NftItem {
	items := []domain.NftItem{}
	for _, chain := range chains {
		balance, ok := balances[chain]
		if !ok || balance == nil {
			continue
		}
		for _, item := range balance.Items {
			if len(item.NftData) == 0 {
				continue
			}
			nft := item.NftData[0]
			image := domain.PlaceholderImage
			if nft.ExternalData != nil {
				image = displayImage(nft.ExternalData.Image)
			}
			items = append(items, domain.NftItem{
				ContractName:    item.ContractName,
				ContractAddress: item.ContractAddress,
				TokenId:         nft.TokenId,
				Image:           image,
				Chain:           chain,
			})
		}
	}
	return items
}

// displayImage maps an upstream image url to one a browser can load, anything
// else falls back to the placeholder
func displayImage(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	switch {
	case raw == "":
		return domain.PlaceholderImage
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return raw
	case strings.HasPrefix(lower, "ipfs://"):
		path := raw[len("ipfs://"):]
		// some early collections wrote ipfs://ipfs/<cid>
		path = strings.TrimPrefix(path, "ipfs/")
		if path == "" {
			return domain.PlaceholderImage
		}
		return domain.IpfsGateway + path
	case strings.HasPrefix(lower, "ar://"):
		path := raw[len("ar://"):]
		if path == "" {
			return domain.PlaceholderImage
		}
		return domain.ArweaveGateway + path
	}
	return domain.PlaceholderImage
}
