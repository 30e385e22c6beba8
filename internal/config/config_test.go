package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.DelayMS)
	assert.Contains(t, cfg.Headings.Summary, "摘要")
	assert.Contains(t, cfg.Headings.MainEvents, "主要事件")

	ag, ok := cfg.Seasons["advanced_generation"]
	require.True(t, ok)
	assert.Equal(t, 191, ag.Episodes)
	assert.Equal(t, "宝可梦_超世代_第%d集", ag.TitlePattern)

	first, ok := cfg.Seasons["1997"]
	require.True(t, ok)
	assert.Equal(t, "https://wiki.52poke.com/wiki/", first.BaseURL)
}

func TestMergeConfigFlagPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontPaths = []string{"/cfg/font.ttf"}

	mergeConfig(cfg, Options{
		Debug:     true,
		BatchSize: 5,
		DelayMS:   250,
		UserAgent: "custom-agent",
		FontPaths: []string{"/flag/font.ttf"},
	})

	assert.True(t, cfg.Debug)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 250, cfg.DelayMS)
	assert.Equal(t, "custom-agent", cfg.UserAgent)
	assert.Equal(t, []string{"/flag/font.ttf", "/cfg/font.ttf"}, cfg.FontPaths,
		"flag fonts go ahead of configured fonts")
}

func TestMergeConfigZeroValuesKeepFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 10

	mergeConfig(cfg, Options{})

	assert.Equal(t, 10, cfg.BatchSize)
	assert.False(t, cfg.Debug)
}

func TestNormalizeDefaultsFillsGaps(t *testing.T) {
	cfg := &Config{BatchSize: -3}

	normalizeDefaults(cfg)

	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.DelayMS)
	assert.Equal(t, 30, cfg.TimeoutSec)
	assert.NotEmpty(t, cfg.Headings.Summary)
	assert.NotEmpty(t, cfg.Seasons)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	want := DefaultConfig()
	want.BatchSize = 7
	want.Headings.Summary = []string{"剧情概要"}
	require.NoError(t, SaveYAML(want, path))

	got, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 7, got.BatchSize)
	assert.Equal(t, []string{"剧情概要"}, got.Headings.Summary)
	assert.Equal(t, want.Seasons, got.Seasons)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, BatchSize: 3})

	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.DelayMS)
}

func TestDelayAndTimeout(t *testing.T) {
	cfg := &Config{DelayMS: 1500, TimeoutSec: 40}

	assert.Equal(t, "1.5s", cfg.Delay().String())
	assert.Equal(t, "40s", cfg.Timeout().String())
}
