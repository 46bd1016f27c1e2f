package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "portfolio"
	configFile = "config.yaml"
)

// Source kinds.
const (
	SourceGViz   = "gviz"
	SourceSheets = "sheets"
)

const (
	DefaultProjectsSheet = "Projetos"
	DefaultTasksSheet    = "Tarefas"
	DefaultTimeout       = 15 * time.Second
	DefaultListen        = ":8080"
)

type Config struct {
	SpreadsheetID string        `yaml:"spreadsheet_id"`
	Source        string        `yaml:"source"`
	ProjectsSheet string        `yaml:"projects_sheet"`
	TasksSheet    string        `yaml:"tasks_sheet"`
	APIKey        string        `yaml:"api_key,omitempty"`
	Timeout       time.Duration `yaml:"timeout"`
	Listen        string        `yaml:"listen"`
}

// Default is used when no config file exists.
func Default() *Config {
	return &Config{
		Source:        SourceGViz,
		ProjectsSheet: DefaultProjectsSheet,
		TasksSheet:    DefaultTasksSheet,
		Timeout:       DefaultTimeout,
		Listen:        DefaultListen,
	}
}

// Dir is the directory holding the config file and OAuth files.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the file at path. A missing file yields the defaults; keys
// left out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from PORTFOLIO_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("PORTFOLIO_SPREADSHEET_ID", &c.SpreadsheetID)
	set("PORTFOLIO_SOURCE", &c.Source)
	set("PORTFOLIO_API_KEY", &c.APIKey)
	set("PORTFOLIO_LISTEN", &c.Listen)
}

// Validate reports settings the loader cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		errs = append(errs, errors.New("spreadsheet_id is not set (use set-sheet or PORTFOLIO_SPREADSHEET_ID)"))
	}
	switch c.Source {
	case SourceGViz, SourceSheets:
	default:
		errs = append(errs, fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceGViz, SourceSheets))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	return errors.Join(errs...)
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.ProjectsSheet == "" {
		c.ProjectsSheet = d.ProjectsSheet
	}
	if c.TasksSheet == "" {
		c.TasksSheet = d.TasksSheet
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
}
