package iolab

import (
	"context"
	"log/slog"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

const entityCard = "card"

// resolveMode decides what happens to references that do not point to a
// live entity.
type resolveMode int

const (
	// resolveSave links unknown references by natural key, creating the
	// referent when it does not exist yet.
	resolveSave resolveMode = iota
	// resolveRestore refreshes live references and keeps the historical
	// snapshot of references whose referent is gone.
	resolveRestore
)

func (l *cardLab) Card(ctx context.Context, id uint) (*schema.Card, error) {
	return l.store.Cards.Get(ctx, id)
}

func (l *cardLab) CreateCard(
	ctx context.Context,
	c schema.Card,
) (*schema.Card, error) {
	if err := c.Prepare(); err != nil {
		return nil, invalid(err)
	}
	if err := l.resolveRefs(ctx, &c, resolveSave); err != nil {
		return nil, err
	}

	c.ID = 0
	if err := l.store.Cards.Create(ctx, &c); err != nil {
		return nil, err
	}
	l.publish(ctx, entityCard, lab.ActionCreate, c.ID, c.Version)
	return &c, nil
}

func (l *cardLab) UpdateCard(
	ctx context.Context,
	id uint,
	c schema.Card,
) (*schema.Card, error) {
	if err := c.Prepare(); err != nil {
		return nil, invalid(err)
	}
	if _, err := l.store.Cards.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := l.resolveRefs(ctx, &c, resolveSave); err != nil {
		return nil, err
	}

	res, err := l.store.Cards.Update(ctx, id, func(cur *schema.Card) error {
		cur.SetContent(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.publish(ctx, entityCard, lab.ActionUpdate, res.ID, res.Version)
	return res, nil
}

func (l *cardLab) DeleteCard(ctx context.Context, id uint) error {
	if err := l.store.Cards.Delete(ctx, id); err != nil {
		return err
	}
	l.publish(ctx, entityCard, lab.ActionDelete, id, 0)
	return nil
}

func (l *cardLab) CardVersions(
	ctx context.Context,
	id uint,
) ([]schema.VersionEntry[schema.Card], error) {
	return l.store.Cards.Versions(ctx, id)
}

func (l *cardLab) CardVersion(
	ctx context.Context,
	id uint,
	v int,
) (*schema.VersionEntry[schema.Card], error) {
	return l.store.Cards.Version(ctx, id, v)
}

// resolveRefs points the passives and keyword abilities of c at their
// current referents and copies the current text into the snapshots.
func (l *cardLab) resolveRefs(
	ctx context.Context,
	c *schema.Card,
	mode resolveMode,
) error {
	for i := range c.Passives {
		ref, err := l.resolvePassive(ctx, c, c.Passives[i], mode)
		if err != nil {
			return err
		}
		c.Passives[i] = ref
	}
	for i := range c.CardAbilities {
		ref, err := l.resolveAbility(ctx, c.CardAbilities[i], mode)
		if err != nil {
			return err
		}
		c.CardAbilities[i] = ref
	}
	return nil
}

func (l *cardLab) resolvePassive(
	ctx context.Context,
	c *schema.Card,
	ref schema.PassiveRef,
	mode resolveMode,
) (schema.PassiveRef, error) {
	if ref.PassiveID != nil {
		p, err := l.store.Passives.Get(ctx, *ref.PassiveID)
		if err == nil {
			droppedText(ctx, schema.KindPassive, p.ID, ref.Text, p.Text)
			return p.Ref(), nil
		}
		if !isCode(err, errcode.NotFoundError) {
			return ref, err
		}
		// the referent is gone, the snapshot text is all that is left
		ref.PassiveID = nil
	}
	if mode == resolveRestore {
		return ref, nil
	}

	input := schema.Passive{
		Name:      ref.Name,
		Text:      ref.Text,
		Pantheon:  c.Pantheon,
		Archetype: c.Archetype,
	}
	if ref.Group != nil {
		input.GroupName = *ref.Group
	}
	p, created, err := l.EnsurePassive(ctx, input)
	if err != nil {
		return ref, err
	}
	if !created {
		droppedText(ctx, schema.KindPassive, p.ID, ref.Text, p.Text)
	}
	return p.Ref(), nil
}

func (l *cardLab) resolveAbility(
	ctx context.Context,
	ref schema.AbilityRef,
	mode resolveMode,
) (schema.AbilityRef, error) {
	if ref.AbilityID != nil {
		a, err := l.store.Abilities.Get(ctx, *ref.AbilityID)
		if err == nil {
			droppedText(ctx, schema.KindKeywordAbility, a.ID, ref.Text, a.Text)
			return a.Ref(), nil
		}
		if !isCode(err, errcode.NotFoundError) {
			return ref, err
		}
		ref.AbilityID = nil
	}
	if mode == resolveRestore {
		return ref, nil
	}

	a, created, err := l.EnsureAbility(ctx, schema.KeywordAbility{
		Name: ref.Name,
		Text: ref.Text,
	})
	if err != nil {
		return ref, err
	}
	if !created {
		droppedText(ctx, schema.KindKeywordAbility, a.ID, ref.Text, a.Text)
	}
	return a.Ref(), nil
}

// droppedText logs a card edit of shared text that lost to the stored
// referent. Shared text changes only through its own entity.
func droppedText(ctx context.Context, kind schema.Kind, id uint, typed, stored string) {
	if typed == "" || schema.NormText(typed) == stored {
		return
	}
	slog.DebugContext(ctx, "Card text replaced by shared text",
		"kind", kind, "id", id, "typed", typed, "stored", stored)
}
