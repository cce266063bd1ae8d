package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Graph    GraphConfig    `yaml:"graph"`
	Logging  LoggingConfig  `yaml:"logging"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Provider ProviderConfig `yaml:"provider"`
	Session  SessionConfig  `yaml:"session"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MetricsEnabled    bool          `yaml:"metrics_enabled"`
	AllowedOriginsCSV string        `yaml:"allowed_origins"`
}

// GraphConfig describes connectivity to the Neo4j card store. An empty URI
// disables it.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // console|json
	Colored       bool   `yaml:"color"`
	IncludeCaller bool   `yaml:"include_caller"`
}

// CatalogConfig selects where cards are loaded from.
type CatalogConfig struct {
	Source       string        `yaml:"source"` // auto|file|http|graph
	File         string        `yaml:"file"`
	APIURL       string        `yaml:"api_url"`
	APIKey       string        `yaml:"api_key"`
	APIHost      string        `yaml:"api_host"`
	APIKeyHeader string        `yaml:"api_key_header"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ProviderConfig selects the completion provider.
type ProviderConfig struct {
	Kind        string        `yaml:"kind"` // gemini|none
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Backend       string        `yaml:"backend"` // memory|redis
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Exporter     string  `yaml:"exporter"` // none|stdout|otlp
	Endpoint     string  `yaml:"endpoint"`
	Insecure     bool    `yaml:"insecure"`
	SamplerRatio float64 `yaml:"sampler_ratio"`
	ServiceName  string  `yaml:"service_name"`
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "console"
	defaultGraphMaxSessions = 10
	defaultCatalogSource    = "auto"
	defaultCatalogFile      = "data/cards.json"
	defaultCatalogTimeout   = 15 * time.Second
	defaultProviderKind     = "gemini"
	defaultProviderTimeout  = 20 * time.Second
	defaultTemperature      = 0.4
	defaultSessionBackend   = "memory"
	defaultSessionTTL       = 30 * time.Minute
	defaultTraceExporter    = "none"
	defaultSamplerRatio     = 0.1
	defaultServiceName      = "cardxpert"
)

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Catalog: CatalogConfig{
			Source:  defaultCatalogSource,
			File:    defaultCatalogFile,
			Timeout: defaultCatalogTimeout,
		},
		Provider: ProviderConfig{
			Kind:        defaultProviderKind,
			Temperature: defaultTemperature,
			Timeout:     defaultProviderTimeout,
		},
		Session: SessionConfig{
			Backend: defaultSessionBackend,
			TTL:     defaultSessionTTL,
		},
		Tracing: TracingConfig{
			Exporter:     defaultTraceExporter,
			SamplerRatio: defaultSamplerRatio,
			ServiceName:  defaultServiceName,
		},
	}
}

// Load reads configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTP.Host, "SERVER_HOST")
	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"CATALOG_TIMEOUT", &cfg.Catalog.Timeout},
		{"LLM_TIMEOUT", &cfg.Provider.Timeout},
		{"SESSION_TTL", &cfg.Session.TTL},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.key); err != nil {
			return err
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	setString(&cfg.HTTP.AllowedOriginsCSV, "SERVER_ALLOWED_ORIGINS")

	setString(&cfg.Graph.URI, "GRAPH_URI")
	setString(&cfg.Graph.Database, "GRAPH_DATABASE")
	setString(&cfg.Graph.Username, "GRAPH_USERNAME")
	setString(&cfg.Graph.Password, "GRAPH_PASSWORD")
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	cfg.Logging.Colored = parseBoolWithDefault("LOG_COLOR", cfg.Logging.Colored)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	setString(&cfg.Catalog.Source, "CATALOG_SOURCE")
	setString(&cfg.Catalog.File, "CATALOG_FILE")
	setString(&cfg.Catalog.APIURL, "CREDIT_CARDS_API_URL")
	setString(&cfg.Catalog.APIKey, "CREDIT_CARDS_API_KEY")
	setString(&cfg.Catalog.APIHost, "CREDIT_CARDS_API_HOST")
	setString(&cfg.Catalog.APIKeyHeader, "CREDIT_CARDS_API_KEY_HEADER")

	setString(&cfg.Provider.Kind, "LLM_PROVIDER")
	setString(&cfg.Provider.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Provider.Model, "GEMINI_MODEL")
	cfg.Provider.Temperature = parseFloatWithDefault("LLM_TEMPERATURE", cfg.Provider.Temperature)

	setString(&cfg.Session.Backend, "SESSION_BACKEND")
	setString(&cfg.Session.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Session.RedisPassword, "REDIS_PASSWORD")
	cfg.Session.RedisDB = parseIntWithDefault("REDIS_DB", cfg.Session.RedisDB)

	setString(&cfg.Tracing.Exporter, "OTEL_EXPORTER")
	setString(&cfg.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.Tracing.Insecure = parseBoolWithDefault("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	cfg.Tracing.SamplerRatio = parseFloatWithDefault("OTEL_SAMPLER_RATIO", cfg.Tracing.SamplerRatio)
	setString(&cfg.Tracing.ServiceName, "OTEL_SERVICE_NAME")

	return validate(cfg)
}

func validate(cfg *Config) error {
	var errs []error
	switch strings.ToLower(cfg.Catalog.Source) {
	case "auto", "file", "http", "graph":
	default:
		errs = append(errs, fmt.Errorf("invalid CATALOG_SOURCE %q", cfg.Catalog.Source))
	}
	switch strings.ToLower(cfg.Session.Backend) {
	case "memory", "redis", "none":
	default:
		errs = append(errs, fmt.Errorf("invalid SESSION_BACKEND %q", cfg.Session.Backend))
	}
	if strings.EqualFold(cfg.Session.Backend, "redis") && cfg.Session.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required for the redis session backend"))
	}
	if strings.EqualFold(cfg.Catalog.Source, "graph") && cfg.Graph.URI == "" {
		errs = append(errs, errors.New("GRAPH_URI is required for the graph catalog source"))
	}
	return errors.Join(errs...)
}

// AllowedOrigins splits the CORS origin list.
func (c HTTPConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOriginsCSV, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Addr is the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloatWithDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
