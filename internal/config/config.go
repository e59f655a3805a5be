package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPageURL = "https://secretariadesalud.chubut.gov.ar/epidemiological_releases"
	DefaultOutput  = "pdfs"
	DefaultDelay   = 2
	DefaultTimeout = 10
)

type Config struct {
	PageURL        string `yaml:"page_url"`
	Output         string `yaml:"output"`
	DelaySeconds   int    `yaml:"delay_seconds"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Debug          bool   `yaml:"debug"`
	KeepPartial    bool   `yaml:"keep_partial"`

	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	PageURL      string
	Output       string
	DelaySeconds int
	KeepPartial  bool
	DefaultRange string
	DefaultList  string
	Cookie       string
	CookieFile   string
	UserAgent    string
}

func DefaultConfig() *Config {
	return &Config{
		PageURL:        DefaultPageURL,
		Output:         DefaultOutput,
		DelaySeconds:   DefaultDelay,
		TimeoutSeconds: DefaultTimeout,
		Debug:          false,
		KeepPartial:    false,
		DefaultRange:   "",
		DefaultList:    "",
		Cookie:         "",
		CookieFile:     "",
		UserAgent:      "",
	}
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
		return cfg, "(default config in memory)\nRun `epifetch config init` to create an actual config\n", nil
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
	if o.PageURL != "" {
		c.PageURL = o.PageURL
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.DelaySeconds != 0 {
		c.DelaySeconds = o.DelaySeconds
	}
	if o.Debug {
		c.Debug = true
	}
	if o.KeepPartial {
		c.KeepPartial = true
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

func normalizeDefaults(c *Config) {
	if c.PageURL == "" {
		c.PageURL = DefaultPageURL
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.DelaySeconds < 0 {
		c.DelaySeconds = 0
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeout
	}
}

func (c *Config) Print() {
	fmt.Printf(" -page_url: %s\n", c.PageURL)
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -delay_seconds: %d\n", c.DelaySeconds)
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.KeepPartial {
		fmt.Printf(" -keep_partial: %t\n", c.KeepPartial)
	}
	if c.DefaultRange != "" {
		fmt.Printf(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Printf(" -list: %s\n", c.DefaultList)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
}
