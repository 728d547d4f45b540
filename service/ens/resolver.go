package ens

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	goens "github.com/wealdtech/go-ens/v3"
)

type chainResolver struct {
	client *ethclient.Client
}

// NewChainResolver dials the json-rpc node and resolves against the ens registry on it
func NewChainResolver(rpc string) (Resolver, error) {
	client, err := ethclient.Dial(rpc)
	if err != nil {
		return nil, err
	}
	return &chainResolver{client}, nil
}

func (r *chainResolver) Resolve(name string) (common.Address, error) {
	return goens.Resolve(r.client, name)
}

func (r *chainResolver) ReverseResolve(address common.Address) (string, error) {
	return goens.ReverseResolve(r.client, address)
}
