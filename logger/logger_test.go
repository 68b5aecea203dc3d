package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerNonNilBeforeInitialize(t *testing.T) {
	// The package-level logger must be usable before Initialize runs.
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() {
		Logger.Infow("pre-init log", "key", "value")
	})
}

func TestInitializeConsole(t *testing.T) {
	require.NoError(t, Initialize(false))
	assert.False(t, JSONOutput)
	require.NotNil(t, Logger)
}

func TestInitializeJSON(t *testing.T) {
	require.NoError(t, Initialize(true))
	assert.True(t, JSONOutput)
	require.NotNil(t, Logger)
}

func TestNamed(t *testing.T) {
	require.NoError(t, Initialize(false))
	child := Named("pipeline")
	require.NotNil(t, child)
	assert.NotPanics(t, func() {
		child.Infow("named logger works")
	})
}
