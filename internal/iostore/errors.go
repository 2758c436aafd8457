package iostore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/gnames/gn"
	"gorm.io/gorm"
)

// NotFoundError is returned for a missing entity.
func NotFoundError(entity string, id uint) error {
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  "%s %d not found",
		Vars: []any{entity, id},
		Err:  fmt.Errorf("%s %d not found", entity, id),
	}
}

// VersionNotFoundError is returned for a missing ledger entry.
func VersionNotFoundError(kind schema.Kind, id uint, version int) error {
	return &gn.Error{
		Code: errcode.NotFoundError,
		Msg:  "Version %d of %s %d not found",
		Vars: []any{version, kind, id},
		Err:  fmt.Errorf("%s %d version %d not found", kind, id, version),
	}
}

// ConflictError is returned when a concurrent write won the race for
// a version number or a natural key.
func ConflictError(entity string, id uint, err error) error {
	return &gn.Error{
		Code: errcode.ConflictError,
		Msg:  "%s %d was changed concurrently, reload and retry",
		Vars: []any{entity, id},
		Err:  fmt.Errorf("conflict on %s %d: %w", entity, id, err),
	}
}

// ValidationError wraps shape violations found before any write.
func ValidationError(verr *schema.ValidationError) error {
	return &gn.Error{
		Code: errcode.ValidationError,
		Msg:  "%s",
		Vars: []any{verr.Error()},
		Err:  fmt.Errorf("validation failed: %w", verr),
	}
}

// QueryError is returned when the database rejects a statement.
func QueryError(op string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Database error while trying to %s",
		Vars: []any{op},
		Err:  fmt.Errorf("cannot %s: %w", op, err),
	}
}

// errDuplicate marks unique index violations.
var errDuplicate = errors.New("duplicate key")

// classify turns driver errors into store errors. gn errors pass
// through unchanged.
func classify(entity string, id uint, op string, err error) error {
	if err == nil {
		return nil
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return err
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return ValidationError(verr)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError(entity, id)
	}
	if isDuplicate(err) {
		return ConflictError(entity, id, errDuplicate)
	}
	return QueryError(op, err)
}

// isDuplicate recognises unique violations. The SQLite driver does not
// translate errors of modernc.org/sqlite, so its message is checked too.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
