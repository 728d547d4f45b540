package ens

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain"
)

// ENS resolves names to addresses and back. An unregistered name resolves to an empty address.
type ENS interface {
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}

// Resolver is the uncached name lookup
type Resolver interface {
	Resolve(name string) (common.Address, error)
	ReverseResolve(address common.Address) (string, error)
}
