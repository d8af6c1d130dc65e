// Package event is a small in-process event dispatcher.
package event

import (
	"context"
	"sync"
)

// Name identifies an event, e.g. "order.created".
type Name string

type Handler func(ctx context.Context, payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[Name][]Handler{}
)

func Listen(event Name, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

func listeners(event Name) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Fire calls every listener synchronously, in registration order.
func Fire(ctx context.Context, event Name, payload interface{}) {
	for _, h := range listeners(event) {
		h(ctx, payload)
	}
}

// FireAsync calls every listener on its own goroutine with a context that
// survives the caller's cancellation.
func FireAsync(ctx context.Context, event Name, payload interface{}) {
	detached := context.WithoutCancel(ctx)
	for _, h := range listeners(event) {
		go h(detached, payload)
	}
}

// Flush removes all listeners.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[Name][]Handler{}
}
