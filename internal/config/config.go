package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"semscore/internal/domain"
)

// OpenAIScorerConfig holds connection details for the embedding-backed
// scorer.
type OpenAIScorerConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ScorerConfig selects and configures the scorer implementation.
type ScorerConfig struct {
	Type      string              `yaml:"type"`
	Model     string              `yaml:"model"`
	Lang      string              `yaml:"lang,omitempty"`
	BatchSize int                 `yaml:"batch_size"`
	UseIDF    bool                `yaml:"use_idf"`
	Rescale   bool                `yaml:"rescale"`
	OpenAI    *OpenAIScorerConfig `yaml:"openai,omitempty"`
}

// ChunkingConfig configures how texts are split into word windows.
// Overlap is a pointer so an explicit `overlap: 0` in the file is
// distinguishable from an absent key; Load fills absent keys with the
// default.
type ChunkingConfig struct {
	Size      int  `yaml:"size"`
	Overlap   *int `yaml:"overlap"`
	MaxChunks int  `yaml:"max_chunks,omitempty"`
	Disabled  bool `yaml:"disabled,omitempty"`
}

// NormalizeConfig configures text preprocessing applied before chunking.
type NormalizeConfig struct {
	Lower              bool `yaml:"lower"`
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
}

// ReportConfig configures the human-facing output. ShowChunks is a
// pointer for the same reason as ChunkingConfig.Overlap: zero is a valid
// explicit value meaning "hide chunk rows".
type ReportConfig struct {
	ShowChunks *int   `yaml:"show_chunks"`
	JSONPath   string `yaml:"json_path,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Scorer    ScorerConfig    `yaml:"scorer"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Report    ReportConfig    `yaml:"report"`
	LogLevel  string          `yaml:"log_level,omitempty"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks every numeric parameter before any chunking or scoring
// starts, naming the offending field.
func (c *AppConfig) Validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunking.size must be > 0, got %d", domain.ErrConfiguration, c.Chunking.Size)
	}
	if c.Chunking.Overlap != nil && *c.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunking.overlap must be >= 0, got %d", domain.ErrConfiguration, *c.Chunking.Overlap)
	}
	if c.Chunking.MaxChunks < 0 {
		return fmt.Errorf("%w: chunking.max_chunks must be >= 0, got %d", domain.ErrConfiguration, c.Chunking.MaxChunks)
	}
	if c.Scorer.BatchSize <= 0 {
		return fmt.Errorf("%w: scorer.batch_size must be > 0, got %d", domain.ErrConfiguration, c.Scorer.BatchSize)
	}
	if c.Report.ShowChunks != nil && *c.Report.ShowChunks < 0 {
		return fmt.Errorf("%w: report.show_chunks must be >= 0, got %d", domain.ErrConfiguration, *c.Report.ShowChunks)
	}
	switch c.Scorer.Type {
	case "openai", "lexical", "":
	default:
		return fmt.Errorf("%w: unknown scorer type %q", domain.ErrConfiguration, c.Scorer.Type)
	}
	return nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Scorer: ScorerConfig{
			Type:      "lexical",
			Model:     "text-embedding-3-small",
			BatchSize: 8,
		},
		Chunking:  ChunkingConfig{Size: 350, Overlap: intPtr(40)},
		Normalize: NormalizeConfig{},
		Report:    ReportConfig{ShowChunks: intPtr(5)},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Scorer.Type == "" {
		cfg.Scorer.Type = "lexical"
	}
	if cfg.Scorer.Model == "" {
		cfg.Scorer.Model = "text-embedding-3-small"
	}
	if cfg.Scorer.BatchSize == 0 {
		cfg.Scorer.BatchSize = 8
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 350
	}
	if cfg.Chunking.Overlap == nil {
		cfg.Chunking.Overlap = intPtr(40)
	}
	if cfg.Report.ShowChunks == nil {
		cfg.Report.ShowChunks = intPtr(5)
	}
	if cfg.Scorer.Type == "openai" && cfg.Scorer.OpenAI != nil {
		if cfg.Scorer.OpenAI.APIKeyEnv == "" {
			cfg.Scorer.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Scorer.OpenAI.TimeoutSecs == 0 {
			cfg.Scorer.OpenAI.TimeoutSecs = 30
		}
	}
}

func intPtr(v int) *int { return &v }
