package iotesting

import (
	"context"
	"sync"

	"github.com/cardlab/cardlab/pkg/lab"
)

// Recorder is a lab.Publisher that keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []lab.Event
}

func (r *Recorder) Publish(_ context.Context, e lab.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of recorded events.
func (r *Recorder) Events() []lab.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]lab.Event(nil), r.events...)
}

// Count returns how many events match entity and action.
func (r *Recorder) Count(entity string, action lab.Action) int {
	var res int
	for _, v := range r.Events() {
		if v.Entity == entity && v.Action == action {
			res++
		}
	}
	return res
}
