package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidLevel(t *testing.T) {
	logger, err := New("debug", true)
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("not-a-level", false)
	require.Error(t, err)
}
