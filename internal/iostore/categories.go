package iostore

import (
	"context"

	"github.com/cardlab/cardlab/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Categories lists a registry sorted by name.
func (s *Store) Categories(
	ctx context.Context,
	kind schema.CategoryKind,
) ([]schema.Category, error) {
	var res []schema.Category
	err := s.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("name_key").
		Find(&res).Error
	if err != nil {
		return nil, QueryError("list "+string(kind)+"s", err)
	}
	return res, nil
}

// Category returns one registry entry.
func (s *Store) Category(
	ctx context.Context,
	kind schema.CategoryKind,
	id uint,
) (*schema.Category, error) {
	var res schema.Category
	err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		First(&res).Error
	if err != nil {
		return nil, classify(string(kind), id, "get "+string(kind), err)
	}
	return &res, nil
}

// FindCategory looks an entry up by name ignoring case.
func (s *Store) FindCategory(
	ctx context.Context,
	kind schema.CategoryKind,
	name string,
) (*schema.Category, error) {
	var res schema.Category
	err := s.db.WithContext(ctx).
		Where("kind = ? AND name_key = ?", kind, schema.NormKey(name)).
		First(&res).Error
	if err != nil {
		return nil, classify(string(kind), 0, "find "+string(kind), err)
	}
	return &res, nil
}

// CreateCategory inserts a new entry. A name taken by another entry of
// the same kind is a Conflict.
func (s *Store) CreateCategory(ctx context.Context, cat *schema.Category) error {
	if err := cat.Prepare(); err != nil {
		return classify(string(cat.Kind), 0, "validate", err)
	}
	err := s.db.WithContext(ctx).Create(cat).Error
	return classify(string(cat.Kind), cat.ID, "create "+string(cat.Kind), err)
}

// UpdateCategory applies a mutation to an entry.
func (s *Store) UpdateCategory(
	ctx context.Context,
	kind schema.CategoryKind,
	id uint,
	apply func(*schema.Category) error,
) (*schema.Category, error) {
	var res schema.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.locking(tx).Where("kind = ? AND id = ?", kind, id).First(&res).Error
		if err != nil {
			return err
		}
		if err = apply(&res); err != nil {
			return err
		}
		res.Kind = kind
		if err = res.Prepare(); err != nil {
			return err
		}
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, classify(string(kind), id, "update "+string(kind), err)
	}
	return &res, nil
}

// DeleteCategory removes an entry and returns it.
func (s *Store) DeleteCategory(
	ctx context.Context,
	kind schema.CategoryKind,
	id uint,
) (*schema.Category, error) {
	var res schema.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("kind = ? AND id = ?", kind, id).First(&res).Error
		if err != nil {
			return err
		}
		return tx.Delete(&res).Error
	})
	if err != nil {
		return nil, classify(string(kind), id, "delete "+string(kind), err)
	}
	return &res, nil
}

// EnsureCategories registers names that are not in the registry yet.
func (s *Store) EnsureCategories(
	ctx context.Context,
	kind schema.CategoryKind,
	names []string,
) error {
	err := ensureCategories(s.db.WithContext(ctx), kind, names)
	return classify(string(kind), 0, "register "+string(kind)+"s", err)
}

func ensureCategories(tx *gorm.DB, kind schema.CategoryKind, names []string) error {
	for _, v := range names {
		cat := schema.Category{Kind: kind, Name: v}
		if err := cat.Prepare(); err != nil {
			continue
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cat).Error
		if err != nil {
			return err
		}
	}
	return nil
}
