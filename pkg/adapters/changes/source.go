// Package changes exposes registry change notifications as a
// lifecycle.Source, so they can be consumed next to other signal sources.
package changes

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/burrow/pkg/core"
)

// ChangeSource relays store changes, optionally restricted to some event types.
type ChangeSource struct {
	events    <-chan core.Event
	types     []core.EventType
	out       chan lifecycle.Event
	forwarded atomic.Int64
	dropped   atomic.Int64
}

// NewSource wraps a channel of store changes (typically from Engine.Watch).
// With types given, only those kinds of change are relayed.
// The Events channel closes once the input is drained or the context passed
// to Start is done.
func NewSource(events <-chan core.Event, types ...core.EventType) *ChangeSource {
	return &ChangeSource{
		events: events,
		types:  types,
		out:    make(chan lifecycle.Event),
	}
}

// Events implements lifecycle.Source.
func (s *ChangeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Forwarded is the number of changes relayed so far.
func (s *ChangeSource) Forwarded() int64 {
	return s.forwarded.Load()
}

// Dropped is the number of changes filtered out by type.
func (s *ChangeSource) Dropped() int64 {
	return s.dropped.Load()
}

// Start implements lifecycle.Source.
func (s *ChangeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			var ok bool
			select {
			case <-ctx.Done():
				return nil
			case e, ok = <-s.events:
			}
			if !ok {
				return nil
			}
			if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
				s.dropped.Add(1)
				continue
			}
			select {
			case s.out <- e:
				s.forwarded.Add(1)
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}

var _ lifecycle.Source = (*ChangeSource)(nil)
