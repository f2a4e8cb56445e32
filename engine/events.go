package engine

// EventKind identifies engine notifications.
type EventKind int

const (
	// EventImageLoaded fires after a new texture is created and assigned.
	EventImageLoaded EventKind = iota
	// EventImageUnloaded fires when the texture it referred to is released.
	EventImageUnloaded
)

// Event is delivered synchronously, on the render thread, to every
// subscriber in subscription order.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

type subscriber struct {
	id int
	fn func(Event)
}

// hub is an ordered observer list. Subscribers are invoked in the order they
// subscribed; unsubscribing keeps the relative order of the rest.
type hub struct {
	subs   []subscriber
	nextID int
}

func (h *hub) Subscribe(fn func(Event)) int {
	h.nextID++
	h.subs = append(h.subs, subscriber{id: h.nextID, fn: fn})
	return h.nextID
}

func (h *hub) Unsubscribe(id int) {
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}

func (h *hub) publish(e Event) {
	for _, s := range h.subs {
		s.fn(e)
	}
}
