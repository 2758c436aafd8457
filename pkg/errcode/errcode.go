package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBUnknownDriverError
	DBNotConnectedError
	DBQueryError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError
	SchemaVacuumError

	// Entity errors
	NotFoundError
	ValidationError
	ConflictError
	CascadeError

	// Request errors
	BadRequestError

	// Events errors
	EventsConnectionError
	EventsPublishError

	// Import/export errors
	ImportParseError
	ImportEntityError
	ExportError
)

// CodeOf returns the code of the *gn.Error found in the chain of err,
// or UnknownError.
func CodeOf(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return UnknownError
}
