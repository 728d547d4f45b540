package domain

import (
	"github.com/x-xyz/nftcarousel/base/ctx"
)

// PlaceholderImage is shown for items without an image
const PlaceholderImage = "https://via.placeholder.com/150"

// gateways serving ipfs:// and ar:// images over https
const (
	IpfsGateway    = "https://ipfs.io/ipfs/"
	ArweaveGateway = "https://arweave.net/"
)

type ExternalData struct {
	Image string `json:"image"`
}

type NftData struct {
	TokenId      TokenId       `json:"token_id"`
	ExternalData *ExternalData `json:"external_data"`
}

// BalanceItem is one contract held by the address, with its tokens
type BalanceItem struct {
	ContractAddress Address   `json:"contract_address"`
	ContractName    string    `json:"contract_name"`
	NftData         []NftData `json:"nft_data"`
}

// ChainBalance is a validated balance payload of one chain
type ChainBalance struct {
	Chain ChainName
	Items []BalanceItem
}

// NftItem is the display projection of a held token
type NftItem struct {
	ContractName    string    `json:"contractName"`
	ContractAddress Address   `json:"contractAddress"`
	TokenId         TokenId   `json:"tokenId"`
	Image           string    `json:"image"`
	Chain           ChainName `json:"chain"`
	MarketplaceUrl  string    `json:"marketplaceUrl"`
}

// BalanceFetcher loads the nft balance of an address on one chain
type BalanceFetcher interface {
	Fetch(c ctx.Ctx, chain ChainName, address Address) (*ChainBalance, error)
}
