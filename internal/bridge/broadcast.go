package bridge

import "sync"

// broadcaster fans out envelopes to every connected front-end. One is
// created per Server and registered against the session's state.Handler
// observers in Start.
type broadcaster struct {
	mu      sync.Mutex
	clients map[chan envelope]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{clients: make(map[chan envelope]struct{})}
}

func (b *broadcaster) subscribe() chan envelope {
	ch := make(chan envelope, 256)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broadcaster) unsubscribe(ch chan envelope) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
	close(ch)
}

func (b *broadcaster) publish(e envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- e:
		default:
			// Slow client; drop the frame rather than block the event
			// handler loop that is publishing it.
		}
	}
}
