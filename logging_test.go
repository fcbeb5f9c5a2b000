package ttyctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, currentLogger())
}

func TestSetLoggerCustom(t *testing.T) {
	l := zap.NewExample()
	SetLogger(l)
	defer SetLogger(nil)

	assert.Same(t, l, currentLogger())
}
