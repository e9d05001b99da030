package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the reelchat service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Matching  MatchingConfig  `yaml:"matching"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds the static catalog asset location.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// MatchingConfig holds lexical matcher tuning.
// Zero weights fall back to the matcher defaults (title heaviest).
type MatchingConfig struct {
	Threshold         float64 `yaml:"threshold"` // minimum similarity to keep a match
	TitleWeight       float64 `yaml:"title_weight"`
	DirectorWeight    float64 `yaml:"director_weight"`
	DescriptionWeight float64 `yaml:"description_weight"`
}

// EmbeddingConfig holds embedding backend and cache settings.
type EmbeddingConfig struct {
	Provider   ProviderConfig `yaml:"provider"`
	Cache      CacheConfig    `yaml:"cache"`
	TimeoutSec int            `yaml:"timeout_sec"` // per-call bound, expiry treated as backend failure
}

// ProviderConfig holds embedding provider settings.
// An empty APIKey disables semantic ranking entirely (valid state).
type ProviderConfig struct {
	Name       string       `yaml:"name"`
	APIKey     string       `yaml:"api_key"`
	BaseURL    string       `yaml:"base_url"`
	Model      string       `yaml:"model"`
	Dimensions int          `yaml:"dimensions"`
	Budget     BudgetConfig `yaml:"budget"`
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// CacheConfig holds embedding cache backend settings.
type CacheConfig struct {
	Backend  string   `yaml:"backend"` // memory (default) | redis
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = filepath.Join("config", "catalog.json")
	}
	if c.Matching.Threshold <= 0 {
		c.Matching.Threshold = 0.3
	}
	if c.Embedding.Cache.Backend == "" {
		c.Embedding.Cache.Backend = "memory"
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Matching.Threshold >= 1 {
		return fmt.Errorf("matching.threshold must be below 1, got %v", c.Matching.Threshold)
	}
	switch c.Embedding.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("embedding.cache.backend must be \"memory\" or \"redis\", got %q",
			c.Embedding.Cache.Backend)
	}
	if c.Embedding.Cache.Backend == "redis" && len(c.Embedding.Cache.Addrs) == 0 {
		return fmt.Errorf("embedding.cache.addrs is required for the redis backend")
	}
	switch c.Embedding.Provider.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf(
			"embedding.provider.budget.action must be \"warn\" or \"reject\", got %q",
			c.Embedding.Provider.Budget.Action,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
