package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanValidConfigs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"cd to dat stereo", Config{Rate44100, Rate48000, 2, 256, DirectionPull, QualityGood}},
		{"dat to cd mono", Config{Rate48000, Rate44100, 1, 64, DirectionPull, QualityLow}},
		{"speech downsample", Config{Rate48000, Rate8000, 1, 1024, DirectionPull, QualityMedium}},
		{"hi-res upsample", Config{Rate44100, Rate192000, 2, 512, DirectionPull, QualityBest}},
		{"identity rate", Config{Rate48000, Rate48000, 2, 256, DirectionPull, QualityQuick}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Plan(&tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, stateAlignment, plan.StateAlignment)
			assert.Greater(t, plan.StateSize, 0)
		})
	}
}

func TestPlanInvalidConfigs(t *testing.T) {
	valid := Config{Rate44100, Rate48000, 2, 256, DirectionPull, QualityGood}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unsupported source rate", func(c *Config) { c.SourceRate = 44000 }, ErrUnsupportedRate},
		{"unsupported target rate", func(c *Config) { c.TargetRate = 0 }, ErrUnsupportedRate},
		{"zero channels", func(c *Config) { c.Channels = 0 }, ErrInvalidConfig},
		{"negative channels", func(c *Config) { c.Channels = -1 }, ErrInvalidConfig},
		{"too many channels", func(c *Config) { c.Channels = 1000 }, ErrInvalidConfig},
		{"zero max frames", func(c *Config) { c.MaxFrames = 0 }, ErrInvalidConfig},
		{"huge max frames", func(c *Config) { c.MaxFrames = 1 << 24 }, ErrInvalidConfig},
		{"push direction", func(c *Config) { c.Direction = DirectionPush }, ErrUnsupportedDirection},
		{"unknown direction", func(c *Config) { c.Direction = 99 }, ErrUnsupportedDirection},
		{"unknown quality", func(c *Config) { c.Quality = 99 }, ErrUnsupportedQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			_, err := Plan(&cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlanNilConfig(t *testing.T) {
	_, err := Plan(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPlanIsDeterministic(t *testing.T) {
	cfg := &Config{Rate44100, Rate48000, 2, 256, DirectionPull, QualityGood}

	first, err := Plan(cfg)
	require.NoError(t, err)

	for range 10 {
		again, err := Plan(cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPlanScalesWithChannels(t *testing.T) {
	mono := Config{Rate44100, Rate48000, 1, 256, DirectionPull, QualityGood}
	stereo := mono
	stereo.Channels = 2

	planMono, err := Plan(&mono)
	require.NoError(t, err)
	planStereo, err := Plan(&stereo)
	require.NoError(t, err)

	assert.Greater(t, planStereo.StateSize, planMono.StateSize,
		"per-channel staging must show up in the state size")
}

func TestPlanQuickIsSmallest(t *testing.T) {
	cfg := Config{Rate44100, Rate48000, 2, 256, DirectionPull, QualityQuick}
	quick, err := Plan(&cfg)
	require.NoError(t, err)

	cfg.Quality = QualityBest
	best, err := Plan(&cfg)
	require.NoError(t, err)

	assert.Less(t, quick.StateSize, best.StateSize,
		"Quick carries no coefficient tables and must plan smaller")
}
