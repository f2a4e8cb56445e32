package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubDeliversInSubscriptionOrder(t *testing.T) {
	var h hub
	var order []int

	h.Subscribe(func(Event) { order = append(order, 1) })
	h.Subscribe(func(Event) { order = append(order, 2) })
	h.Subscribe(func(Event) { order = append(order, 3) })

	h.publish(Event{Kind: EventImageLoaded})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHubUnsubscribe(t *testing.T) {
	var h hub
	var got []string

	h.Subscribe(func(Event) { got = append(got, "a") })
	id := h.Subscribe(func(Event) { got = append(got, "b") })
	h.Subscribe(func(Event) { got = append(got, "c") })

	h.Unsubscribe(id)
	h.publish(Event{Kind: EventImageUnloaded})
	assert.Equal(t, []string{"a", "c"}, got)

	// unknown ids are ignored
	h.Unsubscribe(9000)
	h.publish(Event{Kind: EventImageUnloaded})
	assert.Equal(t, []string{"a", "c", "a", "c"}, got)
}

func TestHubLoadThenUnloadOrder(t *testing.T) {
	var h hub
	var kinds []EventKind
	h.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	// replacing an image publishes unload of the old before load of the new
	h.publish(Event{Kind: EventImageUnloaded, Width: 10, Height: 10})
	h.publish(Event{Kind: EventImageLoaded, Width: 20, Height: 20})
	assert.Equal(t, []EventKind{EventImageUnloaded, EventImageLoaded}, kinds)
}
