package ioimport

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadSeedError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read seed file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

func ParseSeedError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ImportParseError,
		Msg:  "Seed file <em>%s</em> is not valid YAML",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot parse %s: %w", path, err),
	}
}

// EntityError reports the entity that stopped an import.
func EntityError(entity, name string, err error) error {
	return &gn.Error{
		Code: errcode.ImportEntityError,
		Msg:  "Cannot import %s <em>%s</em>",
		Vars: []any{entity, name},
		Err:  fmt.Errorf("cannot import %s %q: %w", entity, name, err),
	}
}

func ExportError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  "Cannot export to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot export to %s: %w", path, err),
	}
}
