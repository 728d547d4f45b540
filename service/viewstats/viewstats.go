package viewstats

import (
	"sync"

	"github.com/axiomhq/hyperloglog"

	"github.com/x-xyz/nftcarousel/domain"
)

type impl struct {
	mu     sync.Mutex
	sketch *hyperloglog.Sketch
}

// New counts distinct viewed addresses in a hyperloglog sketch, around 0.8% error
func New() domain.ViewStats {
	return &impl{sketch: hyperloglog.New16()}
}

func (im *impl) Add(address domain.Address) {
	if address.IsEmpty() {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.sketch.Insert([]byte(address.ToLowerStr()))
}

func (im *impl) UniqueViewers() uint64 {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.sketch.Estimate()
}
