package domain

import (
	"github.com/x-xyz/nftcarousel/base/ctx"
)

// Carousel is the display sequence built for one address input
type Carousel struct {
	Input    Address `json:"input"`
	Resolved Address `json:"resolved"`
	// Name is the primary ens name of a raw address input, empty when unknown
	Name       string    `json:"name,omitempty"`
	Items      []NftItem `json:"items"`
	Generation uint64    `json:"generation,omitempty"`
}

type CarouselUseCase interface {
	Get(c ctx.Ctx, address Address) (*Carousel, error)
	NewSession() CarouselSession
}

// CarouselSession serves a sequence of inputs, only the latest input's result is kept
type CarouselSession interface {
	Load(c ctx.Ctx, address Address) (*Carousel, error)
	Close()
}

type ViewStats interface {
	Add(address Address)
	UniqueViewers() uint64
}
