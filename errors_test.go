package ttyctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := newError(ErrIOFailed, "read", inner)

	require.ErrorIs(t, err, inner)
	assert.Equal(t, "io-error", err.Kind.String())
	assert.Contains(t, err.Error(), "read")
	assert.Contains(t, err.Error(), "boom")
}

func TestErrorNilWrapped(t *testing.T) {
	err := newUnlinkError("unlink", nil, DebugMovedButDeleteFailed)

	assert.Equal(t, DebugMovedButDeleteFailed, err.Debug)
	assert.Nil(t, err.Unwrap())
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestErrorKindStringUnknown(t *testing.T) {
	var k ErrorKind = 99
	assert.Equal(t, "unknown", k.String())
}
