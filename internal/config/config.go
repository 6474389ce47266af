package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_sources.yaml
var defaultSourcesFS embed.FS

// Source is a named RSS feed the aggregator pulls from. The name doubles as
// display label and filter key, so it must be unique.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	Port  int
	Debug bool

	// Remote classifier; empty key means keyword fallback only.
	OpenAIKey   string
	OpenAIModel string

	// Search log sink; empty connection string disables logging.
	StorageConnString string
	LogContainer      string
	LogBlob           string

	StaticDir string
	CacheTTL  time.Duration

	Sources []Source `yaml:"sources"`
}

// ClassifierEnabled reports whether the remote classifier is configured.
func (c *Config) ClassifierEnabled() bool {
	return c.OpenAIKey != ""
}

// SearchLogEnabled reports whether the remote search log sink is configured.
func (c *Config) SearchLogEnabled() bool {
	return c.StorageConnString != ""
}

func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		names = append(names, s.Name)
	}
	return names
}

// Load builds the service configuration from the environment, with the source
// registry read from the embedded defaults or, when path is non-empty, from a
// yaml file of the same shape.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:              envInt("PORT", 8000),
		Debug:             envBool("DEBUG"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       envStr("OPENAI_MODEL", "gpt-4o-mini"),
		StorageConnString: os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		LogContainer:      envStr("SEARCH_LOG_CONTAINER", "search-logs"),
		LogBlob:           envStr("SEARCH_LOG_BLOB", "searches.csv"),
		StaticDir:         envStr("STATIC_DIR", "static"),
		CacheTTL:          5 * time.Minute,
	}

	data, err := sourceData(path)
	if err != nil {
		return nil, err
	}
	var reg struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	cfg.Sources = reg.Sources

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sourceData(path string) ([]byte, error) {
	if path == "" {
		data, err := defaultSourcesFS.ReadFile("default_sources.yaml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded sources: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return data, nil
}

func validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	seen := make(map[string]bool, len(cfg.Sources))
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v := os.Getenv(key)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
