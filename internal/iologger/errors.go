package iologger

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError is returned when the "file" log destination cannot
// be opened. Logging falls back to nothing, so bootstrap stops.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>, check log.destination",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create log file %s: %w", path, err),
	}
}
