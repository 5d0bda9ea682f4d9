package event

// Handler is a subscriber callback. It takes no arguments; subscribers that
// need state hold their own references.
type Handler func()

// Bus is a synchronous publish/subscribe register keyed by Name. It is
// populated once at startup and then only published to, all from the
// goroutine that drives the monitor, so it carries no lock.
type Bus struct {
	subs [numNames][]Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe appends h to the handlers for n. Handlers for the same name run
// in the order they were subscribed. Subscribing to an unknown name or with a
// nil handler is a programming error and panics.
func (b *Bus) Subscribe(n Name, h Handler) {
	if !n.valid() {
		panic("event: subscribe to unknown event name")
	}
	if h == nil {
		panic("event: nil handler")
	}
	b.subs[n] = append(b.subs[n], h)
}

// Publish runs every handler registered for n on the calling goroutine.
// A panicking handler is not recovered: the panic reaches the publisher and
// the remaining handlers for n do not run.
func (b *Bus) Publish(n Name) {
	if !n.valid() {
		return
	}
	for _, h := range b.subs[n] {
		h()
	}
}

// Subscribers reports how many handlers are registered for n.
func (b *Bus) Subscribers(n Name) int {
	if !n.valid() {
		return 0
	}
	return len(b.subs[n])
}
