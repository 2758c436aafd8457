package iolab

import (
	"context"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
)

func (l *cardLab) Passives(ctx context.Context) ([]schema.Passive, error) {
	return l.store.Passives.List(ctx)
}

func (l *cardLab) Passive(ctx context.Context, id uint) (*schema.Passive, error) {
	return l.store.Passives.Get(ctx, id)
}

// EnsurePassive implements get-or-create on (group_name, name). When two
// callers race for the same key the loser reads the winner's row.
func (l *cardLab) EnsurePassive(
	ctx context.Context,
	p schema.Passive,
) (*schema.Passive, bool, error) {
	if err := p.Prepare(); err != nil {
		return nil, false, invalid(err)
	}
	res, err := l.store.FindPassive(ctx, p.GroupName, p.Name)
	if err == nil {
		return res, false, nil
	}
	if !isCode(err, errcode.NotFoundError) {
		return nil, false, err
	}

	p.ID = 0
	err = l.store.Passives.Create(ctx, &p)
	if isCode(err, errcode.ConflictError) {
		res, err = l.store.FindPassive(ctx, p.GroupName, p.Name)
		return res, false, err
	}
	if err != nil {
		return nil, false, err
	}
	l.publish(ctx, string(schema.KindPassive), lab.ActionCreate, p.ID, p.Version)
	return &p, true, nil
}

// UpdatePassive stores new content of a passive and carries its text
// into every card that embeds it.
func (l *cardLab) UpdatePassive(
	ctx context.Context,
	id uint,
	p schema.Passive,
) (*schema.Passive, *schema.CascadeReport, error) {
	if err := p.Prepare(); err != nil {
		return nil, nil, invalid(err)
	}
	res, err := l.store.Passives.Update(ctx, id, func(cur *schema.Passive) error {
		cur.SetContent(p)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, string(schema.KindPassive), lab.ActionUpdate, res.ID, res.Version)

	report, err := l.cascadePassive(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return res, report, nil
}

// DeletePassive removes a passive. Cards keep their snapshot of it.
func (l *cardLab) DeletePassive(ctx context.Context, id uint) error {
	if err := l.store.Passives.Delete(ctx, id); err != nil {
		return err
	}
	l.publish(ctx, string(schema.KindPassive), lab.ActionDelete, id, 0)
	return nil
}

func (l *cardLab) PassiveVersions(
	ctx context.Context,
	id uint,
) ([]schema.VersionEntry[schema.Passive], error) {
	return l.store.Passives.Versions(ctx, id)
}

func (l *cardLab) PassiveVersion(
	ctx context.Context,
	id uint,
	v int,
) (*schema.VersionEntry[schema.Passive], error) {
	return l.store.Passives.Version(ctx, id, v)
}

func (l *cardLab) cascadePassive(
	ctx context.Context,
	p *schema.Passive,
) (*schema.CascadeReport, error) {
	ids, err := l.store.Dependents(ctx, schema.KindPassive, p.ID)
	if err != nil {
		return nil, err
	}
	ref := p.Ref()
	patch := func(c *schema.Card) bool {
		var changed bool
		for i, v := range c.Passives {
			if v.PassiveID == nil || *v.PassiveID != p.ID {
				continue
			}
			if samePassiveRef(v, ref) {
				continue
			}
			c.Passives[i] = ref
			changed = true
		}
		return changed
	}
	return l.cascade(ctx, string(schema.KindPassive), p.ID, ids, patch), nil
}

func samePassiveRef(a, b schema.PassiveRef) bool {
	ga, gb := "", ""
	if a.Group != nil {
		ga = *a.Group
	}
	if b.Group != nil {
		gb = *b.Group
	}
	return ga == gb && a.Name == b.Name && a.Text == b.Text
}
