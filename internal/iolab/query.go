package iolab

import (
	"context"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/schema"
)

// QueryCards loads current cards in creation order and applies f.
func (l *cardLab) QueryCards(
	ctx context.Context,
	f filter.Card,
) ([]schema.Card, error) {
	cards, err := l.store.Cards.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Cards(f, cards), nil
}

func (l *cardLab) QueryLocations(
	ctx context.Context,
	f filter.Location,
) ([]schema.Location, error) {
	locs, err := l.store.Locations(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Locations(f, locs), nil
}
