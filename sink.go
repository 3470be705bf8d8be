package cfgprops

import (
	"context"
	"sync"
)

// Collector is a ResultSink that buffers items until the closing signal.
type Collector struct {
	mu    sync.Mutex
	items []CompletionItem

	once sync.Once
	done chan struct{}
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{done: make(chan struct{})}
}

// Add appends a resolved candidate.
func (c *Collector) Add(item CompletionItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Done marks the result sequence complete. Safe to call more than once.
func (c *Collector) Done() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Wait blocks until Done or context cancellation and returns the collected
// items in emission order.
func (c *Collector) Wait(ctx context.Context) ([]CompletionItem, error) {
	select {
	case <-c.done:
		return c.Items(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Items returns a snapshot of the collected items.
func (c *Collector) Items() []CompletionItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CompletionItem, len(c.items))
	copy(out, c.items)

	return out
}
