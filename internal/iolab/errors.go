package iolab

import (
	"errors"
	"fmt"

	"github.com/cardlab/cardlab/internal/iostore"
	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/gnames/gn"
)

// errUnchanged aborts a cascade write when the card already matches.
var errUnchanged = &gn.Error{
	Code: errcode.UnknownError,
	Msg:  "Nothing to change",
	Err:  errors.New("nothing to change"),
}

// CascadeFailedError describes a dependent card that could not follow a
// change of a shared entity.
func CascadeFailedError(trigger string, triggerID, cardID uint, err error) error {
	return &gn.Error{
		Code: errcode.CascadeError,
		Msg:  "Card %d did not receive the change of %s %d",
		Vars: []any{cardID, trigger, triggerID},
		Err: fmt.Errorf("cascade of %s %d into card %d: %w",
			trigger, triggerID, cardID, err),
	}
}

// UnknownCategoryError is returned for a registry that does not exist.
func UnknownCategoryError(kind schema.CategoryKind) error {
	return &gn.Error{
		Code: errcode.BadRequestError,
		Msg:  "Unknown registry <em>%s</em>",
		Vars: []any{kind},
		Err:  fmt.Errorf("unknown category kind %q", kind),
	}
}

// invalid converts shape violations of input into Validation errors.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return iostore.ValidationError(verr)
	}
	return err
}

func isCode(err error, code gn.ErrorCode) bool {
	return errcode.CodeOf(err) == code
}
