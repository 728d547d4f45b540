package usecase

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/domain"
)

// session serves one changing input. Every Load starts a new generation and cancels the
// batch of the previous one, results of an outdated generation are dropped.
type session struct {
	uc         domain.CarouselUseCase
	generation atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

func newSession(uc domain.CarouselUseCase) *session {
	return &session{uc: uc}
}

func (s *session) Load(c ctx.Ctx, address domain.Address) (*domain.Carousel, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, context.Canceled
	}
	gen := s.generation.Inc()
	if s.cancel != nil {
		s.cancel()
	}
	c, cancel := ctx.WithCancel(c)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	res, err := s.uc.Get(c, address)
	if s.generation.Load() != gen {
		c.WithFields(log.Fields{
			"generation": gen,
			"address":    address,
		}).Debug("drop stale carousel")
		return nil, domain.ErrStaleGeneration
	}
	if err != nil {
		return nil, err
	}
	res.Generation = gen
	return res, nil
}

// Close cancels the in-flight batch, later loads fail
func (s *session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation.Inc()
	if s.cancel != nil {
		s.cancel()
	}
}
