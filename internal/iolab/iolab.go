// Package iolab implements lab.Lab on top of the GORM store. It owns
// the rules that span entities: reference resolution of cards, restore
// reconciliation, cascades into dependent cards and change events.
package iolab

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardlab/cardlab/internal/iostore"
	"github.com/cardlab/cardlab/pkg/lab"
)

type cardLab struct {
	store *iostore.Store
	pub   lab.Publisher
	// jobs limits concurrent card updates of a cascade.
	jobs int
}

// New creates a card lab. Events go to pub, cascades update at most
// jobs cards at a time.
func New(store *iostore.Store, pub lab.Publisher, jobs int) lab.Lab {
	if jobs < 1 {
		jobs = 1
	}
	return &cardLab{store: store, pub: pub, jobs: jobs}
}

// publish reports a committed change. A failed publish is only logged.
func (l *cardLab) publish(
	ctx context.Context,
	entity string,
	action lab.Action,
	id uint,
	version int,
) {
	if l.pub == nil {
		return
	}
	e := lab.Event{
		Entity:  entity,
		Action:  action,
		ID:      id,
		Version: version,
		Time:    time.Now().UTC(),
	}
	if err := l.pub.Publish(ctx, e); err != nil {
		slog.Warn("Cannot publish change event",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}
