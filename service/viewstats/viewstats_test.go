package viewstats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/nftcarousel/domain"
)

func TestUniqueViewers(t *testing.T) {
	s := New()
	assert.Equal(t, uint64(0), s.UniqueViewers())

	s.Add("0xABC")
	s.Add("0xabc")
	s.Add("")
	assert.Equal(t, uint64(1), s.UniqueViewers())

	for i := 0; i < 100; i++ {
		s.Add(domain.Address(fmt.Sprintf("0x%040d", i)))
	}
	assert.InDelta(t, 101, s.UniqueViewers(), 3)
}
