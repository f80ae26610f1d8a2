package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoConfigFilePresent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1200.0, cfg.Pallet.Length)
	require.Equal(t, 800.0, cfg.Pallet.Width)
	require.Equal(t, 5, cfg.Pallet.MaxPallets)
	require.Equal(t, 100, cfg.GA.PopulationSize)
	require.Equal(t, int64(42), cfg.Batch.BaseSeed)
}

func TestPalletDimensionsConversion(t *testing.T) {
	cfg := Config{Pallet: PalletConfig{Length: 1000, Width: 700, Height: 1200}}
	dims := cfg.PalletDimensions()
	require.Equal(t, 1000.0, dims.Length)
	require.Equal(t, 700.0, dims.Width)
	require.Equal(t, 1200.0, dims.Height)
}
