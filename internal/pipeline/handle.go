package pipeline

import (
	"context"
	"sync"

	"github.com/aleister1102/grammarwhiz/internal/models"
)

// Callback receives the outcome of a submitted correction.
type Callback func(result models.ProofreadResult, err error)

// Handle controls a correction running in the background.
type Handle struct {
	cancel    context.CancelFunc
	done      chan struct{}
	mu        sync.Mutex
	abandoned bool
	delivered bool
}

// Submit runs RequestCorrection in a new goroutine and passes the outcome
// to callback unless the handle is abandoned first.
func (p *Pipeline) Submit(ctx context.Context, text string, scenario models.Scenario, callback Callback) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		result, err := p.RequestCorrection(ctx, text, scenario)

		h.mu.Lock()
		if h.abandoned {
			h.mu.Unlock()
			p.logger.Debug().Msg("Dropping result of abandoned request")
			return
		}
		h.delivered = true
		h.mu.Unlock()

		if callback != nil {
			callback(result, err)
		}
	}()

	return h
}

// Abandon cancels the pending attempt or backoff wait. It reports whether
// the callback was suppressed; false means it already started.
func (h *Handle) Abandon() bool {
	h.mu.Lock()
	suppressed := !h.delivered
	if suppressed {
		h.abandoned = true
	}
	h.mu.Unlock()

	h.cancel()
	return suppressed
}

// Done is closed once the background work, including the callback, finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
