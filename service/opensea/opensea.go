package opensea

import (
	"fmt"

	"github.com/x-xyz/nftcarousel/domain"
)

const (
	mainnetHost = "https://opensea.io/assets"
	testnetHost = "https://testnets.opensea.io/assets"
)

var mainnetSlugs = map[domain.ChainName]string{
	domain.ChainEthMainnet:   "ethereum",
	domain.ChainMaticMainnet: "matic",
}

// TestnetSlug is used for every chain without a mainnet listing
const TestnetSlug = "mumbai"

// AssetUrl returns the opensea page of a token. Chains other than the mainnets fall
// back to the mumbai testnet listing.
func AssetUrl(chain domain.ChainName, contract domain.Address, tokenId domain.TokenId) string {
	if slug, ok := mainnetSlugs[chain]; ok {
		return fmt.Sprintf("%s/%s/%s/%s", mainnetHost, slug, contract, tokenId)
	}
	return fmt.Sprintf("%s/%s/%s/%s", testnetHost, TestnetSlug, contract, tokenId)
}
