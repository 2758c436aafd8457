package iofs

import (
	"fmt"

	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
)

func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create cardlab directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create directory %s: %w", dir, err),
	}
}

// WriteConfigError reports a failure to write the default config.yaml.
func WriteConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot write default config.yaml to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write config %s: %w", path, err),
	}
}

func ReadConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read config file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read config %s: %w", path, err),
	}
}

// DecodeConfigError reports config values that do not fit the
// settings, such as a string where a port number is expected.
func DecodeConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Config file <em>%s</em> or CARDLAB_* variables have invalid values",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot decode config %s: %w", path, err),
	}
}
