package iolab

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

func checkKind(kind schema.CategoryKind) error {
	switch kind {
	case schema.CategoryPantheon, schema.CategoryArchetype,
		schema.CategoryTag, schema.CategoryAbilityTiming:
		return nil
	}
	return UnknownCategoryError(kind)
}

func (l *cardLab) Categories(
	ctx context.Context,
	kind schema.CategoryKind,
) ([]schema.Category, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	return l.store.Categories(ctx, kind)
}

// EnsureCategory is get-or-create by name ignoring case.
func (l *cardLab) EnsureCategory(
	ctx context.Context,
	c schema.Category,
) (*schema.Category, bool, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, false, err
	}
	if err := c.Prepare(); err != nil {
		return nil, false, invalid(err)
	}
	res, err := l.store.FindCategory(ctx, c.Kind, c.Name)
	if err == nil {
		return res, false, nil
	}
	if !isCode(err, errcode.NotFoundError) {
		return nil, false, err
	}

	c.ID = 0
	err = l.store.CreateCategory(ctx, &c)
	if isCode(err, errcode.ConflictError) {
		res, err = l.store.FindCategory(ctx, c.Kind, c.Name)
		return res, false, err
	}
	if err != nil {
		return nil, false, err
	}
	l.publish(ctx, string(c.Kind), lab.ActionCreate, c.ID, 0)
	return &c, true, nil
}

// UpdateCategory renames an entry and carries the new name into every
// card that uses the old one. Pantheon and archetype names also move in
// passives and locations.
func (l *cardLab) UpdateCategory(
	ctx context.Context,
	c schema.Category,
) (*schema.Category, *schema.CascadeReport, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, nil, err
	}
	if err := c.Prepare(); err != nil {
		return nil, nil, invalid(err)
	}
	old, err := l.store.Category(ctx, c.Kind, c.ID)
	if err != nil {
		return nil, nil, err
	}
	res, err := l.store.UpdateCategory(ctx, c.Kind, c.ID,
		func(cur *schema.Category) error {
			cur.Name = c.Name
			cur.Description = c.Description
			return nil
		})
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, string(c.Kind), lab.ActionUpdate, res.ID, 0)

	report := schema.NewCascadeReport(string(c.Kind), res.ID)
	if old.Name == res.Name {
		return res, report, nil
	}
	report, err = l.renameInCards(ctx, c.Kind, res.ID, old.Name, res.Name)
	if err != nil {
		return nil, nil, err
	}
	if c.Kind == schema.CategoryPantheon || c.Kind == schema.CategoryArchetype {
		if err = l.renameInPassives(ctx, c.Kind, old.Name, res.Name); err != nil {
			return nil, nil, err
		}
		if err = l.renameInLocations(ctx, c.Kind, old.Name, res.Name); err != nil {
			return nil, nil, err
		}
	}
	return res, report, nil
}

// DeleteCategory removes an entry. A deleted tag disappears from cards,
// other names stay on the entities that carry them.
func (l *cardLab) DeleteCategory(
	ctx context.Context,
	kind schema.CategoryKind,
	id uint,
) (*schema.CascadeReport, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	cat, err := l.store.DeleteCategory(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	l.publish(ctx, string(kind), lab.ActionDelete, id, 0)

	if kind != schema.CategoryTag {
		return schema.NewCascadeReport(string(kind), id), nil
	}
	cards, err := l.store.Cards.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []uint
	for i := range cards {
		if cards[i].HasTag(cat.Name) {
			ids = append(ids, cards[i].ID)
		}
	}
	patch := func(c *schema.Card) bool {
		tags := make([]string, 0, len(c.Tags))
		for _, v := range c.Tags {
			if !strings.EqualFold(v, cat.Name) {
				tags = append(tags, v)
			}
		}
		if len(tags) == len(c.Tags) {
			return false
		}
		c.Tags = tags
		return true
	}
	return l.cascade(ctx, string(kind), id, ids, patch), nil
}

func (l *cardLab) renameInCards(
	ctx context.Context,
	kind schema.CategoryKind,
	id uint,
	from, to string,
) (*schema.CascadeReport, error) {
	patch := renamePatch(kind, from, to)
	cards, err := l.store.Cards.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []uint
	// the listed cards are scratch copies, real changes run in updates
	for i := range cards {
		if patch(&cards[i]) {
			ids = append(ids, cards[i].ID)
		}
	}
	return l.cascade(ctx, string(kind), id, ids, patch), nil
}

func renamePatch(kind schema.CategoryKind, from, to string) func(*schema.Card) bool {
	rename := func(s *string) bool {
		if s == nil || !strings.EqualFold(*s, from) || *s == to {
			return false
		}
		*s = to
		return true
	}
	return func(c *schema.Card) bool {
		var changed bool
		switch kind {
		case schema.CategoryPantheon:
			changed = rename(c.Pantheon)
		case schema.CategoryArchetype:
			changed = rename(c.Archetype)
		case schema.CategoryTag:
			for i := range c.Tags {
				changed = rename(&c.Tags[i]) || changed
			}
		case schema.CategoryAbilityTiming:
			for i := range c.Abilities {
				changed = rename(c.Abilities[i].Timing) || changed
			}
		}
		return changed
	}
}

func (l *cardLab) renameInPassives(
	ctx context.Context,
	kind schema.CategoryKind,
	from, to string,
) error {
	passives, err := l.store.Passives.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range passives {
		field := p.Pantheon
		if kind == schema.CategoryArchetype {
			field = p.Archetype
		}
		if field == nil || !strings.EqualFold(*field, from) {
			continue
		}
		res, err := l.store.Passives.Update(ctx, p.ID, func(cur *schema.Passive) error {
			if kind == schema.CategoryArchetype {
				cur.Archetype = &to
			} else {
				cur.Pantheon = &to
			}
			return nil
		})
		if err != nil {
			slog.Warn("Cannot rename in passive",
				"kind", kind, "passive", p.ID, "error", err)
			continue
		}
		l.publish(ctx, string(schema.KindPassive), lab.ActionCascade, res.ID, res.Version)
	}
	return nil
}

func (l *cardLab) renameInLocations(
	ctx context.Context,
	kind schema.CategoryKind,
	from, to string,
) error {
	locs, err := l.store.Locations(ctx)
	if err != nil {
		return err
	}
	for _, v := range locs {
		field := v.Pantheon
		if kind == schema.CategoryArchetype {
			field = v.Archetype
		}
		if field == nil || !strings.EqualFold(*field, from) {
			continue
		}
		_, err = l.store.UpdateLocation(ctx, v.ID, func(cur *schema.Location) error {
			if kind == schema.CategoryArchetype {
				cur.Archetype = &to
			} else {
				cur.Pantheon = &to
			}
			return nil
		})
		if err != nil {
			slog.Warn("Cannot rename in location",
				"kind", kind, "location", v.ID, "error", err)
			continue
		}
		l.publish(ctx, entityLocation, lab.ActionUpdate, v.ID, 0)
	}
	return nil
}
