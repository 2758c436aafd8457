package iostore

import (
	"context"

	"github.com/cardlab/cardlab/pkg/schema"
	"gorm.io/gorm"
)

// Locations returns all locations in creation order.
func (s *Store) Locations(ctx context.Context) ([]schema.Location, error) {
	var res []schema.Location
	err := s.db.WithContext(ctx).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("list locations", err)
	}
	return res, nil
}

func (s *Store) Location(ctx context.Context, id uint) (*schema.Location, error) {
	var res schema.Location
	err := s.db.WithContext(ctx).First(&res, id).Error
	if err != nil {
		return nil, classify("location", id, "get location", err)
	}
	return &res, nil
}

func (s *Store) CreateLocation(ctx context.Context, loc *schema.Location) error {
	if err := loc.Prepare(); err != nil {
		return classify("location", 0, "validate", err)
	}
	err := s.db.WithContext(ctx).Create(loc).Error
	return classify("location", loc.ID, "create location", err)
}

// UpdateLocation applies a mutation to a location.
func (s *Store) UpdateLocation(
	ctx context.Context,
	id uint,
	apply func(*schema.Location) error,
) (*schema.Location, error) {
	var res schema.Location
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.locking(tx).First(&res, id).Error; err != nil {
			return err
		}
		if err := apply(&res); err != nil {
			return err
		}
		if err := res.Prepare(); err != nil {
			return err
		}
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, classify("location", id, "update location", err)
	}
	return &res, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id uint) error {
	q := s.db.WithContext(ctx).Delete(&schema.Location{}, id)
	if q.Error != nil {
		return QueryError("delete location", q.Error)
	}
	if q.RowsAffected == 0 {
		return NotFoundError("location", id)
	}
	return nil
}
