package broadcast

import (
	"context"
	"sync"
)

// LocalBroadcaster fans notifications out to subscribers in the same
// process. Slow subscribers miss notifications rather than block publishers.
type LocalBroadcaster struct {
	mu   sync.Mutex
	subs map[chan Notification]struct{}
}

func NewLocalBroadcaster() *LocalBroadcaster {
	return &LocalBroadcaster{subs: make(map[chan Notification]struct{})}
}

func (b *LocalBroadcaster) Publish(ctx context.Context, n Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return nil
}

func (b *LocalBroadcaster) Subscribe(ctx context.Context) (<-chan Notification, error) {
	ch := make(chan Notification, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}
