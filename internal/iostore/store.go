// Package iostore persists cardlab entities with GORM. Versioned
// entities go through a Ledger that appends every state to the
// versions table in the same transaction as the row write.
package iostore

import (
	"context"

	"github.com/cardlab/cardlab/pkg/db"
	"github.com/cardlab/cardlab/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store gives access to all cardlab tables.
type Store struct {
	db    *gorm.DB
	locks *locker
	// lockRows adds SELECT ... FOR UPDATE, SQLite has no row locks.
	lockRows bool

	Cards     Ledger[schema.Card, *schema.Card]
	Passives  Ledger[schema.Passive, *schema.Passive]
	Abilities Ledger[schema.KeywordAbility, *schema.KeywordAbility]
}

// New creates a Store on a connected operator.
func New(op db.Operator) *Store {
	res := &Store{
		db:    op.DB(),
		locks: newLocker(),
		lockRows: op.Driver() == db.DriverPostgres ||
			op.Driver() == db.DriverMySQL,
	}
	res.Cards = Ledger[schema.Card, *schema.Card]{
		s:          res,
		name:       "card",
		afterWrite: res.afterCardWrite,
	}
	res.Passives = Ledger[schema.Passive, *schema.Passive]{
		s:    res,
		name: "passive",
	}
	res.Abilities = Ledger[schema.KeywordAbility, *schema.KeywordAbility]{
		s:    res,
		name: "keyword ability",
	}
	return res
}

// afterCardWrite keeps the reference index, the tag registry and the
// ability timing registry in step with a card inside its transaction.
func (s *Store) afterCardWrite(tx *gorm.DB, c *schema.Card) error {
	err := tx.Where("card_id = ?", c.ID).Delete(&schema.CardReference{}).Error
	if err != nil {
		return err
	}
	if refs := c.References(); len(refs) > 0 {
		if err = tx.Create(&refs).Error; err != nil {
			return err
		}
	}
	if err = ensureCategories(tx, schema.CategoryTag, c.Tags); err != nil {
		return err
	}
	timings := make([]string, 0, len(c.Abilities))
	for _, v := range c.Abilities {
		if v.Timing != nil {
			timings = append(timings, *v.Timing)
		}
	}
	return ensureCategories(tx, schema.CategoryAbilityTiming, timings)
}

// Dependents returns ids of cards that embed the given passive or
// keyword ability.
func (s *Store) Dependents(
	ctx context.Context,
	kind schema.Kind,
	refID uint,
) ([]uint, error) {
	var res []uint
	err := s.db.WithContext(ctx).
		Model(&schema.CardReference{}).
		Where("kind = ? AND ref_id = ?", kind, refID).
		Order("card_id").
		Pluck("card_id", &res).Error
	if err != nil {
		return nil, QueryError("find dependent cards", err)
	}
	return res, nil
}

// FindPassive looks a passive up by its natural key.
func (s *Store) FindPassive(
	ctx context.Context,
	group, name string,
) (*schema.Passive, error) {
	var res schema.Passive
	err := s.db.WithContext(ctx).
		Where("group_key = ? AND name_key = ?", schema.NormKey(group), schema.NormKey(name)).
		First(&res).Error
	if err != nil {
		return nil, classify("passive", 0, "find passive", err)
	}
	return &res, nil
}

// FindAbility looks a keyword ability up by name.
func (s *Store) FindAbility(
	ctx context.Context,
	name string,
) (*schema.KeywordAbility, error) {
	var res schema.KeywordAbility
	err := s.db.WithContext(ctx).
		Where("name_key = ?", schema.NormKey(name)).
		First(&res).Error
	if err != nil {
		return nil, classify("keyword ability", 0, "find keyword ability", err)
	}
	return &res, nil
}

func (s *Store) locking(tx *gorm.DB) *gorm.DB {
	if s.lockRows {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
