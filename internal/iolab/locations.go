package iolab

import (
	"context"
	"slices"
	"strings"

	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

const entityLocation = "location"

func (l *cardLab) Location(ctx context.Context, id uint) (*schema.Location, error) {
	return l.store.Location(ctx, id)
}

func (l *cardLab) CreateLocation(
	ctx context.Context,
	loc schema.Location,
) (*schema.Location, error) {
	loc.ID = 0
	if err := l.store.CreateLocation(ctx, &loc); err != nil {
		return nil, err
	}
	l.publish(ctx, entityLocation, lab.ActionCreate, loc.ID, 0)
	return &loc, nil
}

func (l *cardLab) UpdateLocation(
	ctx context.Context,
	id uint,
	loc schema.Location,
) (*schema.Location, error) {
	if err := loc.Prepare(); err != nil {
		return nil, invalid(err)
	}
	res, err := l.store.UpdateLocation(ctx, id, func(cur *schema.Location) error {
		cur.Name = loc.Name
		cur.Text = loc.Text
		cur.Pantheon = loc.Pantheon
		cur.Archetype = loc.Archetype
		cur.ImageURL = loc.ImageURL
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.publish(ctx, entityLocation, lab.ActionUpdate, res.ID, 0)
	return res, nil
}

func (l *cardLab) DeleteLocation(ctx context.Context, id uint) error {
	if err := l.store.DeleteLocation(ctx, id); err != nil {
		return err
	}
	l.publish(ctx, entityLocation, lab.ActionDelete, id, 0)
	return nil
}

// LocationSummary collects the distinct pantheons and archetypes of all
// locations, sorted ignoring case.
func (l *cardLab) LocationSummary(ctx context.Context) (*schema.LocationSummary, error) {
	locs, err := l.store.Locations(ctx)
	if err != nil {
		return nil, err
	}
	var pantheons, archetypes []string
	for _, v := range locs {
		if v.Pantheon != nil {
			pantheons = append(pantheons, *v.Pantheon)
		}
		if v.Archetype != nil {
			archetypes = append(archetypes, *v.Archetype)
		}
	}
	return &schema.LocationSummary{
		Pantheons:  sortedSet(pantheons),
		Archetypes: sortedSet(archetypes),
		Total:      len(locs),
	}, nil
}

func sortedSet(ss []string) []string {
	res := schema.NormSet(ss)
	slices.SortFunc(res, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return res
}
