package iolab

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// cascade applies patch to every card of ids, each through its own
// versioned update. patch returns false when the card needs no change.
// Failures are collected into the report and never stop other cards.
func (l *cardLab) cascade(
	ctx context.Context,
	trigger string,
	triggerID uint,
	ids []uint,
	patch func(*schema.Card) bool,
) *schema.CascadeReport {
	res := schema.NewCascadeReport(trigger, triggerID)
	if len(ids) == 0 {
		return res
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(l.jobs)

	for _, id := range ids {
		g.Go(func() error {
			updated, err := l.patchCard(ctx, id, patch)
			if isCode(err, errcode.ConflictError) {
				updated, err = l.patchCard(ctx, id, patch)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, errUnchanged):
			case err != nil:
				err = CascadeFailedError(trigger, triggerID, id, err)
				slog.Warn("Cascade update failed",
					"trigger", trigger, "trigger_id", triggerID,
					"card", id, "error", err)
				res.Failures = append(res.Failures, schema.CascadeFailure{
					CardID: id,
					Error:  err.Error(),
				})
			default:
				res.UpdatedCardIDs = append(res.UpdatedCardIDs, updated.ID)
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(res.UpdatedCardIDs)
	slices.SortFunc(res.Failures, func(a, b schema.CascadeFailure) int {
		return int(a.CardID) - int(b.CardID)
	})
	if len(res.UpdatedCardIDs) > 0 || len(res.Failures) > 0 {
		slog.Info("Cascade finished",
			"trigger", trigger, "trigger_id", triggerID,
			"updated", len(res.UpdatedCardIDs), "failed", len(res.Failures))
	}
	return res
}

func (l *cardLab) patchCard(
	ctx context.Context,
	id uint,
	patch func(*schema.Card) bool,
) (*schema.Card, error) {
	res, err := l.store.Cards.Update(ctx, id, func(c *schema.Card) error {
		if !patch(c) {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.publish(ctx, entityCard, lab.ActionCascade, res.ID, res.Version)
	return res, nil
}
