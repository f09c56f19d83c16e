package config

import (
	"os"
	"path/filepath"
	"strconv"

	"riskhypo/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input  InputConfig
	Output OutputConfig
	Tests  TestConfig
	TopN   TopNConfig
}

// InputConfig holds dataset location settings
type InputConfig struct {
	// File, when set, overrides the candidate search entirely.
	File string
	// DataDir is searched for the well-known dataset files.
	DataDir    string
	Candidates []string
}

// OutputConfig holds result destination settings
type OutputConfig struct {
	Dir         string
	DatabaseURL string // optional; empty disables the PostgreSQL sink
}

// TestConfig holds statistical test thresholds
type TestConfig struct {
	MinGroupSize int // Kruskal-Wallis minimum per-group sample
}

// TopNConfig caps high-cardinality segmentations
type TopNConfig struct {
	PostalCodes int
	Makes       int
	Models      int
}

// Load builds configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{
		Input: InputConfig{
			File:    os.Getenv("RISK_INPUT_FILE"),
			DataDir: getEnvOrDefault("RISK_DATA_DIR", "data"),
		},
		Output: OutputConfig{
			Dir:         getEnvOrDefault("RISK_OUTPUT_DIR", filepath.Join("outputs", "results")),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Tests: TestConfig{
			MinGroupSize: getEnvIntOrDefault("RISK_MIN_GROUP_SIZE", 20),
		},
		TopN: TopNConfig{
			PostalCodes: getEnvIntOrDefault("RISK_TOP_POSTAL_CODES", 10),
			Makes:       getEnvIntOrDefault("RISK_TOP_MAKES", 20),
			Models:      getEnvIntOrDefault("RISK_TOP_MODELS", 20),
		},
	}

	cfg.Input.Candidates = defaultCandidates(cfg.Input.DataDir)
	if cfg.Input.File != "" {
		cfg.Input.Candidates = []string{cfg.Input.File}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultCandidates lists the well-known dataset locations, preferred first
func defaultCandidates(dataDir string) []string {
	return []string{
		filepath.Join(dataDir, "processed_sample_from_data_quality.csv"),
		filepath.Join(dataDir, "processed_sample_from_notebook.csv"),
		filepath.Join(dataDir, "MachineLearningRating_v3.txt"),
		filepath.Join(dataDir, "insurance.csv"),
	}
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Tests.MinGroupSize < 2 {
		return errors.ConfigInvalid("RISK_MIN_GROUP_SIZE must be at least 2")
	}
	if c.TopN.PostalCodes <= 0 || c.TopN.Makes <= 0 || c.TopN.Models <= 0 {
		return errors.ConfigInvalid("top-N caps must be positive")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
