package domain

import (
	"strings"
)

// EnsMarker marks an address input as an ENS-style name
const EnsMarker = ".eth"

// Address is either a raw chain address or an ENS-style name
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// IsName reports whether the address is a human-readable name to be resolved first
func (a Address) IsName() bool {
	return strings.Contains(string(a), EnsMarker)
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// ChainName identifies a network in balance backends, e.g. eth-mainnet
type ChainName string

const (
	ChainEthMainnet   ChainName = "eth-mainnet"
	ChainMaticMainnet ChainName = "matic-mainnet"
	ChainMaticMumbai  ChainName = "matic-mumbai"
)

// SupportedChains is the ordered list of chains every carousel is fetched from
var SupportedChains = []ChainName{
	ChainEthMainnet,
	ChainMaticMainnet,
	ChainMaticMumbai,
}

func (c ChainName) IsSupported() bool {
	for _, s := range SupportedChains {
		if s == c {
			return true
		}
	}
	return false
}
