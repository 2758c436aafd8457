package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardlab/cardlab/pkg/schema"
	"gorm.io/gorm"
)

// versioned is satisfied by pointers to versioned models.
type versioned[T any] interface {
	*T
	schema.Versioned
}

// Ledger stores one kind of versioned entity. There is no way to write
// a row without appending its snapshot to the versions table.
type Ledger[T any, PT versioned[T]] struct {
	s    *Store
	name string
	// afterWrite runs inside the write transaction of every version.
	afterWrite func(tx *gorm.DB, ent PT) error
}

func (l Ledger[T, PT]) kind() schema.Kind {
	return PT(new(T)).EntityKind()
}

// Create stores ent as version 1.
func (l Ledger[T, PT]) Create(ctx context.Context, ent PT) error {
	if err := ent.Prepare(); err != nil {
		return classify(l.name, 0, "validate "+l.name, err)
	}
	ent.SetVersion(1)

	err := l.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ent).Error; err != nil {
			return err
		}
		return l.appendVersion(tx, ent)
	})
	return classify(l.name, ent.EntityID(), "create "+l.name, err)
}

// Update applies a mutation to the current row and stores the result as
// the next version. The version bump holds the per-entity lock and runs
// in one transaction guarded by the previous version number.
func (l Ledger[T, PT]) Update(
	ctx context.Context,
	id uint,
	apply func(PT) error,
) (*T, error) {
	unlock := l.s.locks.lock(l.kind(), id)
	defer unlock()

	var res T
	ent := PT(&res)
	err := l.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.s.locking(tx).First(ent, id).Error; err != nil {
			return err
		}
		prev := ent.CurrentVersion()
		if err := apply(ent); err != nil {
			return err
		}
		if err := ent.Prepare(); err != nil {
			return err
		}
		ent.SetVersion(prev + 1)

		q := tx.Model(ent).Where("version = ?", prev).Select("*").Updates(ent)
		if q.Error != nil {
			return q.Error
		}
		if q.RowsAffected == 0 {
			return ConflictError(l.name, id,
				fmt.Errorf("version %d is no longer current", prev))
		}
		return l.appendVersion(tx, ent)
	})
	if err != nil {
		return nil, classify(l.name, id, "update "+l.name, err)
	}
	return &res, nil
}

func (l Ledger[T, PT]) appendVersion(tx *gorm.DB, ent PT) error {
	rec, err := schema.NewVersionRecord(ent)
	if err != nil {
		return err
	}
	err = tx.Model(&schema.VersionRecord{}).
		Where("kind = ? AND entity_id = ? AND is_current = ?",
			rec.Kind, rec.EntityID, true).
		Update("is_current", false).Error
	if err != nil {
		return err
	}
	if err = tx.Create(&rec).Error; err != nil {
		return err
	}
	if l.afterWrite != nil {
		return l.afterWrite(tx, ent)
	}
	return nil
}

// Get returns the current row.
func (l Ledger[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	var res T
	err := l.s.db.WithContext(ctx).First(PT(&res), id).Error
	if err != nil {
		return nil, classify(l.name, id, "get "+l.name, err)
	}
	return &res, nil
}

// GetMany returns the current rows of ids that exist, keyed by id.
func (l Ledger[T, PT]) GetMany(ctx context.Context, ids []uint) (map[uint]*T, error) {
	res := make(map[uint]*T, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var rows []T
	err := l.s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, QueryError("list "+l.name, err)
	}
	for i := range rows {
		res[PT(&rows[i]).EntityID()] = &rows[i]
	}
	return res, nil
}

// List returns all current rows in creation order.
func (l Ledger[T, PT]) List(ctx context.Context) ([]T, error) {
	var res []T
	err := l.s.db.WithContext(ctx).Order("id").Find(&res).Error
	if err != nil {
		return nil, QueryError("list "+l.name, err)
	}
	return res, nil
}

// Count returns the number of rows.
func (l Ledger[T, PT]) Count(ctx context.Context) (int64, error) {
	var res int64
	err := l.s.db.WithContext(ctx).Model(PT(new(T))).Count(&res).Error
	if err != nil {
		return 0, QueryError("count "+l.name, err)
	}
	return res, nil
}

// Delete removes the row with its history and reference rows.
func (l Ledger[T, PT]) Delete(ctx context.Context, id uint) error {
	unlock := l.s.locks.lock(l.kind(), id)
	defer unlock()

	kind := l.kind()
	err := l.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Delete(PT(new(T)), id)
		if q.Error != nil {
			return q.Error
		}
		if q.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		err := tx.Where("kind = ? AND entity_id = ?", kind, id).
			Delete(&schema.VersionRecord{}).Error
		if err != nil {
			return err
		}
		if kind == schema.KindCard {
			return tx.Where("card_id = ?", id).
				Delete(&schema.CardReference{}).Error
		}
		return tx.Where("kind = ? AND ref_id = ?", kind, id).
			Delete(&schema.CardReference{}).Error
	})
	return classify(l.name, id, "delete "+l.name, err)
}

// Versions lists the history of an entity, oldest first.
func (l Ledger[T, PT]) Versions(
	ctx context.Context,
	id uint,
) ([]schema.VersionEntry[T], error) {
	var recs []schema.VersionRecord
	err := l.s.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ?", l.kind(), id).
		Order("version").
		Find(&recs).Error
	if err != nil {
		return nil, QueryError("list versions of "+l.name, err)
	}
	if len(recs) == 0 {
		return nil, NotFoundError(l.name, id)
	}

	res := make([]schema.VersionEntry[T], len(recs))
	for i := range recs {
		if res[i], err = schema.DecodeEntry[T](recs[i]); err != nil {
			return nil, QueryError("decode version", err)
		}
	}
	return res, nil
}

// Version returns one ledger entry.
func (l Ledger[T, PT]) Version(
	ctx context.Context,
	id uint,
	version int,
) (*schema.VersionEntry[T], error) {
	var rec schema.VersionRecord
	err := l.s.db.WithContext(ctx).
		Where("kind = ? AND entity_id = ? AND version = ?", l.kind(), id, version).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, VersionNotFoundError(l.kind(), id, version)
	}
	if err != nil {
		return nil, QueryError("get version of "+l.name, err)
	}

	res, err := schema.DecodeEntry[T](rec)
	if err != nil {
		return nil, QueryError("decode version", err)
	}
	return &res, nil
}
