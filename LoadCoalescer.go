package main

import (
	"context"
	"sync"
)

// LoadCoalescer keeps at most one load per key in flight. A load requested while another one
// for the same key is running is folded into a single rerun once the running load finishes.
// The rerun uses the context of the newest requester that is still live, so cancelling the
// running load does not drop a reload somebody else asked for.
type LoadCoalescer struct {
	mutex   sync.Mutex
	running map[string]bool
	pending map[string]context.Context
}

func (coalescer *LoadCoalescer) Run(ctx context.Context, key string, load func(ctx context.Context)) bool {
	coalescer.mutex.Lock()
	if coalescer.running == nil {
		coalescer.running = make(map[string]bool)
		coalescer.pending = make(map[string]context.Context)
	}

	if coalescer.running[key] {
		if previous := coalescer.pending[key]; previous == nil || previous.Err() != nil || ctx.Err() == nil {
			coalescer.pending[key] = ctx
		}
		coalescer.mutex.Unlock()
		LoadSkippedTotal.Inc()
		return false
	}
	coalescer.running[key] = true
	coalescer.mutex.Unlock()

	for {
		load(ctx)

		coalescer.mutex.Lock()
		next := coalescer.pending[key]
		delete(coalescer.pending, key)
		if next == nil || next.Err() != nil {
			delete(coalescer.running, key)
			coalescer.mutex.Unlock()
			return true
		}
		coalescer.mutex.Unlock()

		ctx = next
	}
}

func (coalescer *LoadCoalescer) IsRunning(key string) bool {
	coalescer.mutex.Lock()
	defer coalescer.mutex.Unlock()

	return coalescer.running[key]
}
