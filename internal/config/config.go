package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
)

// Project config file names, in lookup order.
const (
	ProjectConfigFile    = ".sitesearch.yaml"
	ProjectConfigFileAlt = ".sitesearch.yml"
)

// Config represents the complete sitesearch configuration.
type Config struct {
	Version int          `yaml:"version" json:"version"`
	Site    SiteConfig   `yaml:"site" json:"site"`
	Search  SearchConfig `yaml:"search" json:"search"`
	Server  ServerConfig `yaml:"server" json:"server"`
}

// SiteConfig locates the published site and its search index.
type SiteConfig struct {
	// Origin is the scheme and host every index URL is forced onto
	// (e.g. https://example.com). Required for remote loading.
	Origin string `yaml:"origin" json:"origin"`

	// IndexURL is the index location, resolved against Origin.
	// Absolute URLs keep only their path and query.
	IndexURL string `yaml:"index_url" json:"index_url"`

	// FetchTimeout bounds the index download (e.g. "30s").
	FetchTimeout string `yaml:"fetch_timeout" json:"fetch_timeout"`
}

// SearchConfig configures ranking and rendering.
type SearchConfig struct {
	// MinQueryLength is the shortest trimmed query that is searched.
	MinQueryLength int `yaml:"min_query_length" json:"min_query_length"`
	// MaxResults truncates the ranked hit list.
	MaxResults int `yaml:"max_results" json:"max_results"`
	// SnippetLength is the snippet window in characters.
	SnippetLength int `yaml:"snippet_length" json:"snippet_length"`
	// Debounce is the quiet period after typing before a search runs.
	Debounce string `yaml:"debounce" json:"debounce"`
	// CacheSize is the number of cached queries; negative disables the cache.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// ServerConfig configures the page server.
type ServerConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Site: SiteConfig{
			Origin:       "",
			IndexURL:     "/search_index.en.json",
			FetchTimeout: "30s",
		},
		Search: SearchConfig{
			MinQueryLength: 2,
			MaxResults:     20,
			SnippetLength:  200,
			Debounce:       "120ms",
			CacheSize:      256,
		},
		Server: ServerConfig{
			Addr:     "127.0.0.1:8080",
			LogLevel: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/sitesearch/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/sitesearch/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sitesearch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "sitesearch", "config.yaml")
	}
	return filepath.Join(home, ".config", "sitesearch", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// loadUserConfig loads the user/global configuration file if it exists.
// Returns nil config and nil error if the file doesn't exist.
func loadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration for the project in dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/sitesearch/config.yaml)
//  3. Project config (.sitesearch.yaml in dir)
//  4. Environment variables (SITESEARCH_*)
func Load(dir string) (*Config, error) {
	return LoadWithFile(dir, "")
}

// LoadWithFile is Load with an explicit project config file. A non-empty
// path replaces the project file lookup in dir and must exist.
func LoadWithFile(dir, path string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if path != "" {
		if !fileExists(path) {
			return nil, siteerrors.New(siteerrors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file %s not found", path), nil).
				WithSuggestion("check the --config path")
		}
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	} else if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile attempts to load configuration from .sitesearch.yaml or .sitesearch.yml.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{ProjectConfigFile, ProjectConfigFileAlt} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return c.loadYAML(p)
		}
	}
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

func readYAML(path string, into *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return siteerrors.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return siteerrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Site.Origin != "" {
		c.Site.Origin = other.Site.Origin
	}
	if other.Site.IndexURL != "" {
		c.Site.IndexURL = other.Site.IndexURL
	}
	if other.Site.FetchTimeout != "" {
		c.Site.FetchTimeout = other.Site.FetchTimeout
	}

	if other.Search.MinQueryLength != 0 {
		c.Search.MinQueryLength = other.Search.MinQueryLength
	}
	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.SnippetLength != 0 {
		c.Search.SnippetLength = other.Search.SnippetLength
	}
	if other.Search.Debounce != "" {
		c.Search.Debounce = other.Search.Debounce
	}
	if other.Search.CacheSize != 0 {
		c.Search.CacheSize = other.Search.CacheSize
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}
}

// applyEnvOverrides applies SITESEARCH_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SITESEARCH_ORIGIN"); v != "" {
		c.Site.Origin = v
	}
	if v := os.Getenv("SITESEARCH_INDEX_URL"); v != "" {
		c.Site.IndexURL = v
	}
	if v := os.Getenv("SITESEARCH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SITESEARCH_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv("SITESEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MaxResults = n
		}
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Site.Origin != "" {
		if _, err := c.OriginURL(); err != nil {
			return err
		}
	}
	if c.Site.IndexURL == "" {
		return siteerrors.ConfigError("site.index_url must not be empty", nil)
	}
	if _, err := parseDuration("site.fetch_timeout", c.Site.FetchTimeout); err != nil {
		return err
	}

	if c.Search.MinQueryLength < 1 {
		return siteerrors.ConfigError(fmt.Sprintf("search.min_query_length must be positive, got %d", c.Search.MinQueryLength), nil)
	}
	if c.Search.MaxResults < 1 {
		return siteerrors.ConfigError(fmt.Sprintf("search.max_results must be positive, got %d", c.Search.MaxResults), nil)
	}
	if c.Search.SnippetLength < 1 {
		return siteerrors.ConfigError(fmt.Sprintf("search.snippet_length must be positive, got %d", c.Search.SnippetLength), nil)
	}
	if _, err := parseDuration("search.debounce", c.Search.Debounce); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return siteerrors.ConfigError(fmt.Sprintf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel), nil)
	}

	return nil
}

// OriginURL parses Site.Origin. The origin must be an absolute http(s) URL.
func (c *Config) OriginURL() (*url.URL, error) {
	u, err := url.Parse(c.Site.Origin)
	if err != nil {
		return nil, siteerrors.ConfigError(fmt.Sprintf("site.origin %q is not a valid URL", c.Site.Origin), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, siteerrors.ConfigError(fmt.Sprintf("site.origin %q must be an absolute http(s) URL", c.Site.Origin), nil).
			WithSuggestion("set site.origin to e.g. https://example.com")
	}
	return u, nil
}

// FetchTimeoutDuration returns Site.FetchTimeout, or 0 if unset.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, _ := parseDuration("site.fetch_timeout", c.Site.FetchTimeout)
	return d
}

// DebounceDuration returns Search.Debounce, or 0 if unset.
func (c *Config) DebounceDuration() time.Duration {
	d, _ := parseDuration("search.debounce", c.Search.Debounce)
	return d
}

func parseDuration(key, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, siteerrors.ConfigError(fmt.Sprintf("%s %q is not a valid duration", key, v), err)
	}
	if d < 0 {
		return 0, siteerrors.ConfigError(fmt.Sprintf("%s must not be negative, got %s", key, v), nil)
	}
	return d, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
