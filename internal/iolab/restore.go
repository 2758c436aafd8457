package iolab

import (
	"context"

	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

// RestoreCard copies the structure of version v into a new version. Live
// passives and keyword abilities get their current text, references to
// deleted ones keep the text they had in version v.
func (l *cardLab) RestoreCard(
	ctx context.Context,
	id uint,
	v int,
) (*schema.Card, error) {
	entry, err := l.store.Cards.Version(ctx, id, v)
	if err != nil {
		return nil, err
	}
	content := entry.Snapshot
	if err = l.resolveRefs(ctx, &content, resolveRestore); err != nil {
		return nil, err
	}

	res, err := l.store.Cards.Update(ctx, id, func(cur *schema.Card) error {
		cur.SetContent(content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.publish(ctx, entityCard, lab.ActionRestore, res.ID, res.Version)
	return res, nil
}

// RestorePassive copies version v into a new version and cascades the
// restored text into dependent cards.
func (l *cardLab) RestorePassive(
	ctx context.Context,
	id uint,
	v int,
) (*schema.Passive, *schema.CascadeReport, error) {
	entry, err := l.store.Passives.Version(ctx, id, v)
	if err != nil {
		return nil, nil, err
	}
	res, err := l.store.Passives.Update(ctx, id, func(cur *schema.Passive) error {
		cur.SetContent(entry.Snapshot)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, string(schema.KindPassive), lab.ActionRestore, res.ID, res.Version)

	report, err := l.cascadePassive(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return res, report, nil
}

func (l *cardLab) RestoreAbility(
	ctx context.Context,
	id uint,
	v int,
) (*schema.KeywordAbility, *schema.CascadeReport, error) {
	entry, err := l.store.Abilities.Version(ctx, id, v)
	if err != nil {
		return nil, nil, err
	}
	res, err := l.store.Abilities.Update(ctx, id, func(cur *schema.KeywordAbility) error {
		cur.SetContent(entry.Snapshot)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, string(schema.KindKeywordAbility), lab.ActionRestore, res.ID, res.Version)

	report, err := l.cascadeAbility(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return res, report, nil
}
