package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Catalog source names accepted by Config.CatalogSource.
const (
	SourceEmbedded = "embedded"
	SourcePostgres = "postgres"
)

// Config holds the complete application configuration, loadable from
// environment variables (LINKBIO_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string `default:"0.0.0.0:8080" usage:"API server listen address"`
	CatalogSource  string `default:"embedded" usage:"Catalog source: embedded or postgres" flag:"catalog-source"`
	DatabaseURL    string `usage:"PostgreSQL connection URL, required for the postgres source" flag:"database-url"`
	ImageBaseURL   string `default:"" usage:"Base URL prepended to relative product image paths" flag:"image-base-url"`
	SiteURL        string `default:"https://midnightstudio.example.com" usage:"Public site URL embedded in share payloads" flag:"site-url"`
	WhatsAppNumber string `default:"584246498029" usage:"WhatsApp recipient for composed orders, digits only" flag:"whatsapp-number"`
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	Graceful       GracefulConfig
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "LINKBIO",
		Files:     []string{"config.yaml", "/etc/linkbio/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	switch cfg.CatalogSource {
	case SourceEmbedded:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required for the postgres source: set LINKBIO_DATABASE_URL or DATABASE_URL")
		}
	default:
		return nil, errors.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and PORT
// to the application's LINKBIO_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
