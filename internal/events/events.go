package events

import (
	"context"
	"fmt"
	"sync"

	"timely/internal/models"

	"github.com/rs/zerolog"
)

// MessageSent is published once per successfully stored message
type MessageSent struct {
	ClientID string
	Message  models.Message
}

// Handler reacts to a MessageSent event
type Handler func(ctx context.Context, evt MessageSent) error

type subscriber struct {
	name    string
	handler Handler
}

// Dispatcher fans events out to named subscribers in subscription order
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []subscriber
	logger      zerolog.Logger
}

// NewDispatcher creates a dispatcher with no subscribers
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Subscribe registers handler under name
func (d *Dispatcher) Subscribe(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, subscriber{name: name, handler: handler})
}

// Subscribers lists the registered names in order
func (d *Dispatcher) Subscribers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.subscribers))
	for i, s := range d.subscribers {
		names[i] = s.name
	}
	return names
}

// Dispatch delivers evt to every subscriber. A failing subscriber is logged and the
// rest still run; the names of the failed ones are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, evt MessageSent) []string {
	d.mu.RLock()
	subs := append([]subscriber(nil), d.subscribers...)
	d.mu.RUnlock()

	var failed []string
	for _, s := range subs {
		if err := deliver(ctx, s, evt); err != nil {
			d.logger.Warn().
				Err(err).
				Str("subscriber", s.name).
				Str("client_id", evt.ClientID).
				Str("message_id", evt.Message.ID).
				Msg("MessageSent subscriber failed")
			failed = append(failed, s.name)
		}
	}
	return failed
}

func deliver(ctx context.Context, s subscriber, evt MessageSent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber %s panicked: %v", s.name, r)
		}
	}()
	return s.handler(ctx, evt)
}
