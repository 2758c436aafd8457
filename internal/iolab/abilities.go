package iolab

import (
	"context"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

func (l *cardLab) Abilities(ctx context.Context) ([]schema.KeywordAbility, error) {
	return l.store.Abilities.List(ctx)
}

func (l *cardLab) Ability(ctx context.Context, id uint) (*schema.KeywordAbility, error) {
	return l.store.Abilities.Get(ctx, id)
}

// EnsureAbility implements get-or-create on the ability name.
func (l *cardLab) EnsureAbility(
	ctx context.Context,
	a schema.KeywordAbility,
) (*schema.KeywordAbility, bool, error) {
	if err := a.Prepare(); err != nil {
		return nil, false, invalid(err)
	}
	res, err := l.store.FindAbility(ctx, a.Name)
	if err == nil {
		return res, false, nil
	}
	if !isCode(err, errcode.NotFoundError) {
		return nil, false, err
	}

	a.ID = 0
	err = l.store.Abilities.Create(ctx, &a)
	if isCode(err, errcode.ConflictError) {
		res, err = l.store.FindAbility(ctx, a.Name)
		return res, false, err
	}
	if err != nil {
		return nil, false, err
	}
	l.publish(ctx, string(schema.KindKeywordAbility), lab.ActionCreate, a.ID, a.Version)
	return &a, true, nil
}

func (l *cardLab) UpdateAbility(
	ctx context.Context,
	id uint,
	a schema.KeywordAbility,
) (*schema.KeywordAbility, *schema.CascadeReport, error) {
	if err := a.Prepare(); err != nil {
		return nil, nil, invalid(err)
	}
	res, err := l.store.Abilities.Update(ctx, id, func(cur *schema.KeywordAbility) error {
		cur.SetContent(a)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, string(schema.KindKeywordAbility), lab.ActionUpdate, res.ID, res.Version)

	report, err := l.cascadeAbility(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return res, report, nil
}

func (l *cardLab) DeleteAbility(ctx context.Context, id uint) error {
	if err := l.store.Abilities.Delete(ctx, id); err != nil {
		return err
	}
	l.publish(ctx, string(schema.KindKeywordAbility), lab.ActionDelete, id, 0)
	return nil
}

func (l *cardLab) AbilityVersions(
	ctx context.Context,
	id uint,
) ([]schema.VersionEntry[schema.KeywordAbility], error) {
	return l.store.Abilities.Versions(ctx, id)
}

func (l *cardLab) AbilityVersion(
	ctx context.Context,
	id uint,
	v int,
) (*schema.VersionEntry[schema.KeywordAbility], error) {
	return l.store.Abilities.Version(ctx, id, v)
}

func (l *cardLab) cascadeAbility(
	ctx context.Context,
	a *schema.KeywordAbility,
) (*schema.CascadeReport, error) {
	ids, err := l.store.Dependents(ctx, schema.KindKeywordAbility, a.ID)
	if err != nil {
		return nil, err
	}
	ref := a.Ref()
	patch := func(c *schema.Card) bool {
		var changed bool
		for i, v := range c.CardAbilities {
			if v.AbilityID == nil || *v.AbilityID != a.ID {
				continue
			}
			if v.Name == ref.Name && v.Text == ref.Text {
				continue
			}
			c.CardAbilities[i] = ref
			changed = true
		}
		return changed
	}
	return l.cascade(ctx, string(schema.KindKeywordAbility), a.ID, ids, patch), nil
}
