package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/pokepdf/internal/extract"
)

// SeasonSpec describes how to generate a season's urls.txt: the article
// title pattern carries one %d verb for the episode number.
type SeasonSpec struct {
	BaseURL      string `yaml:"base_url"`
	TitlePattern string `yaml:"title_pattern"`
	Episodes     int    `yaml:"episodes"`
}

type Config struct {
	BatchSize  int      `yaml:"batch_size"`
	DelayMS    int      `yaml:"delay_ms"`
	TimeoutSec int      `yaml:"timeout_sec"`
	UserAgent  string   `yaml:"user_agent"`
	BypassCF   bool     `yaml:"bypass_cloudflare"`
	Debug      bool     `yaml:"debug"`
	FontPaths  []string `yaml:"font_paths"`

	Headings extract.Headings      `yaml:"headings"`
	Seasons  map[string]SeasonSpec `yaml:"seasons"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	BatchSize    int
	DelayMS      int
	UserAgent    string
	BypassCF     bool
	FontPaths    []string
}

const defaultBaseURL = "https://wiki.52poke.com/wiki/"

func DefaultConfig() *Config {
	return &Config{
		BatchSize:  20,
		DelayMS:    1000,
		TimeoutSec: 30,
		UserAgent:  "",
		BypassCF:   false,
		Debug:      false,
		FontPaths:  nil,
		Headings:   extract.DefaultHeadings(),
		Seasons: map[string]SeasonSpec{
			"1997": {
				BaseURL:      defaultBaseURL,
				TitlePattern: "宝可梦_第%d集",
				Episodes:     275,
			},
			"advanced_generation": {
				BaseURL:      defaultBaseURL,
				TitlePattern: "宝可梦_超世代_第%d集",
				Episodes:     191,
			},
		},
	}
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `pokepdf config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.BatchSize != 0 {
		c.BatchSize = o.BatchSize
	}
	if o.DelayMS != 0 {
		c.DelayMS = o.DelayMS
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.BypassCF {
		c.BypassCF = true
	}
	if len(o.FontPaths) > 0 {
		// flag fonts take precedence over configured ones
		c.FontPaths = append(append([]string{}, o.FontPaths...), c.FontPaths...)
	}
}

func normalizeDefaults(c *Config) {
	if c.BatchSize <= 0 {
		c.BatchSize = 20
	}
	if c.DelayMS <= 0 {
		c.DelayMS = 1000
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = 30
	}
	if len(c.Headings.Summary) == 0 || len(c.Headings.MainEvents) == 0 {
		defaults := extract.DefaultHeadings()
		if len(c.Headings.Summary) == 0 {
			c.Headings.Summary = defaults.Summary
		}
		if len(c.Headings.MainEvents) == 0 {
			c.Headings.MainEvents = defaults.MainEvents
		}
	}
	if c.Seasons == nil {
		c.Seasons = DefaultConfig().Seasons
	}
}

func (c *Config) Print() {
	fmt.Printf(" -batch_size: %d\n", c.BatchSize)
	fmt.Printf(" -delay_ms: %d\n", c.DelayMS)
	fmt.Printf(" -timeout_sec: %d\n", c.TimeoutSec)
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.BypassCF {
		fmt.Printf(" -bypass_cloudflare: %t\n", c.BypassCF)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if len(c.FontPaths) > 0 {
		fmt.Printf(" -font_paths: %s\n", strings.Join(c.FontPaths, ", "))
	}
	fmt.Printf(" -headings.summary: %s\n", strings.Join(c.Headings.Summary, ", "))
	fmt.Printf(" -headings.main_events: %s\n", strings.Join(c.Headings.MainEvents, ", "))
}
