package material

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

func TestConfigureOverridesPlaster(t *testing.T) {
	p := DefaultWallLower()
	err := Configure(p, map[string]any{
		"base_color":      []any{200, 170, 140},
		"tint_strength":   10.5,
		"rough_base":      "150",
		"rough_variation": 0.2,
		"size":            512,
		"seed":            99,
	})
	require.NoError(t, err)

	assert.Equal(t, types.RGB{200, 170, 140}, p.BaseColor)
	assert.Equal(t, 10.5, p.TintStrength)
	assert.Equal(t, 150, p.RoughBase)
	assert.Equal(t, 512, p.Size)
	assert.Equal(t, int64(99), p.Seed)
	assert.Equal(t, "wall_lower", p.Name)
}

func TestConfigureRejectsUnknownKeys(t *testing.T) {
	err := Configure(DefaultCeiling(), map[string]any{"tint_strength": 3})
	require.Error(t, err)

	var perr *types.InvalidParameterError
	require.True(t, errors.As(err, &perr), "expected InvalidParameterError, got %T", err)
	assert.Equal(t, "tint_strength", perr.Param)
	assert.Equal(t, 3, perr.Value)
	assert.Contains(t, perr.Reason, "ceiling")
}

func TestConfigureRejectsMistypedValues(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		raw    map[string]any
		param  string
	}{
		{"size not a number", DefaultWallLower(), map[string]any{"size": "abc"}, "size"},
		{"seed not a number", DefaultCeiling(), map[string]any{"seed": "many", "size": 64}, "seed"},
		{"color component", DefaultWallUpper(), map[string]any{"base_color": []any{1, "x", 3}}, "base_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Configure(tt.recipe, tt.raw)
			require.Error(t, err)

			var perr *types.InvalidParameterError
			require.True(t, errors.As(err, &perr), "expected InvalidParameterError, got %T", err)
			assert.Equal(t, tt.param, perr.Param)
		})
	}
}

func TestOffendingKeyFallsBack(t *testing.T) {
	raw := map[string]any{"size": 1, "seed": 2}

	key, ok := offendingKey(raw, "'' has invalid keys: seed")
	require.True(t, ok)
	assert.Equal(t, "seed", key)

	_, ok = offendingKey(raw, "something unrelated")
	assert.False(t, ok)
}

func TestConfigureValidates(t *testing.T) {
	err := Configure(DefaultCeiling(), map[string]any{"base_color": []any{0, 0, 999}})

	var perr *types.InvalidParameterError
	require.True(t, errors.As(err, &perr), "expected InvalidParameterError, got %v", err)
	assert.Equal(t, "base_color", perr.Param)
}

func TestConfigureEmptyIsNoop(t *testing.T) {
	s := DefaultSkylight()
	require.NoError(t, Configure(s, nil))
	assert.Equal(t, DefaultSkylight(), s)
}
