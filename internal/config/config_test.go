package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avaldes/fieldsim/internal/laplace"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, DefaultGridSize, cfg.GridSize)
	require.Equal(t, string(laplace.GaussSeidel), cfg.Method)
	require.Positive(t, cfg.Tolerance)
	require.Positive(t, cfg.MaxIterations)
	require.Zero(t, cfg.Boundary.Left)
	require.Zero(t, cfg.Boundary.Right)
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("grid_size: 20\nboundary:\n  right: 10\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 20, cfg.GridSize)
	require.Equal(t, 10.0, cfg.Boundary.Right)

	// Omitted keys keep defaults; omitted edges default to 0 V.
	require.Equal(t, DefaultTolerance, cfg.Tolerance)
	require.Equal(t, DefaultMaxIterations, cfg.MaxIterations)
	require.Equal(t, DefaultMethod, cfg.Method)
	require.Zero(t, cfg.Boundary.Left)
	require.Zero(t, cfg.Boundary.Top)
	require.Zero(t, cfg.Boundary.Bottom)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Method = string(laplace.Jacobi)
	cfg.Boundary.Top = -3.5

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestBoundaryConversion(t *testing.T) {
	b := BoundaryConfig{Left: 1, Right: 2, Top: 3, Bottom: 4}
	require.Equal(t, laplace.Boundary{Left: 1, Right: 2, Top: 3, Bottom: 4}, b.Boundary())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("plates")
	require.NotNil(t, cfg)
	require.Equal(t, 10.0, cfg.Boundary.Right)

	require.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	require.IsIncreasing(t, names)
	require.Contains(t, names, "capacitor")
}
