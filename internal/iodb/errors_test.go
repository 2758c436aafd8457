package iodb

import (
	"errors"
	"testing"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")
	cfg := config.New().Database
	cfg.Driver = "postgres"

	err := NewConnectionError(cfg, originalErr)
	require.NotNil(t, err)

	connErr, ok := err.(ConnectionError)
	require.True(t, ok, "Error should be of type ConnectionError")
	assert.ErrorIs(t, connErr.error, originalErr)
	assert.Contains(t, err.Error(), "postgres localhost:5432/cardlab")

	cfg.Driver = "sqlite"
	err = NewConnectionError(cfg, originalErr)
	assert.Contains(t, err.Error(), "sqlite")
}

// TestGnErrors_Structure verifies codes of gn.Error constructors.
func TestGnErrors_Structure(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"driver", UnknownDriverError("x"), errcode.DBUnknownDriverError},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"data dir", CreateDataDirError("/x", cause), errcode.CreateDirError},
		{"drop", DropTableError("cards", cause), errcode.DBQueryError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
	}
}
