package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonewx/cursorbuddy/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompanionConfig_Defaults(t *testing.T) {
	cfg, err := NewCompanionConfig(CompanionOptions{})
	require.NoError(t, err)

	assert.Equal(t, DefaultFollowSpeed, cfg.FollowSpeed)
	assert.Equal(t, DefaultIdleRate, cfg.IdleRate)
	assert.Equal(t, types.Vector2{}, cfg.Offset)
	assert.Equal(t, DefaultAlt, cfg.Alt)
	assert.Equal(t, DefaultCompanionSize, cfg.Size)

	// 未配置的效果全部禁用
	assert.Nil(t, cfg.Hover)
	assert.Nil(t, cfg.Click)
	assert.Nil(t, cfg.Idle)
	assert.False(t, cfg.IdleFloats())
}

func TestNewCompanionConfig_ResolvesEachCategory(t *testing.T) {
	cfg, err := NewCompanionConfig(CompanionOptions{
		FollowSpeed:  ptr(0.3),
		Offset:       &types.Vector2{X: 12, Y: -8},
		HoverEffects: RawEffect{Value: true},
		ClickEffects: RawEffect{Value: map[string]any{"type": "spin"}},
		IdleEffects:  RawEffect{Value: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.FollowSpeed)
	assert.Equal(t, types.Vector2{X: 12, Y: -8}, cfg.Offset)

	require.NotNil(t, cfg.Hover)
	assert.Equal(t, DefaultHoverEffect, *cfg.Hover)

	require.NotNil(t, cfg.Click)
	assert.Equal(t, types.EffectSpin, cfg.Click.Type)
	assert.Equal(t, 0.85, cfg.Click.Intensity)
	assert.Equal(t, 150*time.Millisecond, cfg.Click.Duration)

	require.NotNil(t, cfg.Idle)
	assert.True(t, cfg.IdleFloats())
	assert.Equal(t, 5.0, cfg.Idle.Intensity)
}

func TestNewCompanionConfig_InvalidFollowSpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
	}{
		{"零永远无法收敛", 0},
		{"负数", -0.2},
		{"大于一会发散", 1.01},
		{"NaN", math.NaN()},
		{"正无穷", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompanionConfig(CompanionOptions{FollowSpeed: ptr(tt.speed)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "错误应包装 ErrInvalidConfiguration: %v", err)
		})
	}
}

func TestNewCompanionConfig_BoundaryFollowSpeed(t *testing.T) {
	cfg, err := NewCompanionConfig(CompanionOptions{FollowSpeed: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.FollowSpeed)

	cfg, err = NewCompanionConfig(CompanionOptions{FollowSpeed: ptr(1e-6)})
	require.NoError(t, err)
	assert.Equal(t, 1e-6, cfg.FollowSpeed)
}

func TestNewCompanionConfig_InvalidIdleRate(t *testing.T) {
	_, err := NewCompanionConfig(CompanionOptions{IdleRate: ptr(0.0)})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *Manifest)
	}{
		{
			name: "valid manifest",
			yamlContent: `
companions:
  - name: blue
    followSpeed: 0.2
    offset: {x: 16, y: 16}
    hoverEffects: true
    clickEffects:
      type: wiggle
      intensity: 1
      duration: 150
    idleEffects: true
  - name: plain
    hoverEffects: false
`,
			validate: func(t *testing.T, m *Manifest) {
				require.Len(t, m.Companions, 2)

				configs, err := m.Resolve()
				require.NoError(t, err)

				blue := configs[0]
				assert.Equal(t, "blue", blue.Name)
				assert.Equal(t, 0.2, blue.FollowSpeed)
				assert.Equal(t, types.Vector2{X: 16, Y: 16}, blue.Offset)
				require.NotNil(t, blue.Click)
				assert.Equal(t, types.EffectWiggle, blue.Click.Type)
				assert.Equal(t, 150*time.Millisecond, blue.Click.Duration)
				assert.True(t, blue.IdleFloats())

				plain := configs[1]
				assert.Nil(t, plain.Hover)
				assert.Equal(t, DefaultFollowSpeed, plain.FollowSpeed)
			},
		},
		{
			name: "invalid follow speed",
			yamlContent: `
companions:
  - name: frozen
    followSpeed: 0
`,
			wantErr:     true,
			errContains: "frozen",
		},
		{
			name:        "malformed yaml",
			yamlContent: "companions: [",
			wantErr:     true,
			errContains: "failed to parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "companions.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yamlContent), 0o644))

			m, err := LoadManifest(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, m)
			}
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestManifest_MarshalRoundTrip(t *testing.T) {
	src := `
companions:
  - name: spinner
    hoverEffects:
      type: spin
`
	m, err := ParseManifest([]byte(src))
	require.NoError(t, err)

	data, err := m.Marshal()
	require.NoError(t, err)

	again, err := ParseManifest(data)
	require.NoError(t, err)
	configs, err := again.Resolve()
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.NotNil(t, configs[0].Hover)
	assert.Equal(t, types.EffectSpin, configs[0].Hover.Type)
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := DefaultAppConfig()
	require.NoError(t, cfg.Validate())

	cfg.Window.TPS = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultAppConfig()
	cfg.Window.Width = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadManifest_ShippedDefault(t *testing.T) {
	m, err := LoadManifest(filepath.Join("..", "..", "data", "companions.yaml"))
	require.NoError(t, err)

	configs, err := m.Resolve()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "buddy", configs[0].Name)
	assert.True(t, configs[0].IdleFloats())
	assert.Equal(t, "*", configs[1].Glyph)
	require.NotNil(t, configs[1].Hover)
	assert.Equal(t, types.EffectWiggle, configs[1].Hover.Type)
}
