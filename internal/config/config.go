package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/mathfield/internal/errors"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultReadTimeout is the default WebSocket read deadline.
	DefaultReadTimeout = "60s"

	// DefaultWriteTimeout is the default WebSocket write deadline.
	DefaultWriteTimeout = "10s"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultTag is the widget element name.
	DefaultTag = "math-field"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"mathfield.json", "mathfield.yaml", "mathfield.yml"}

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
	Field   FieldConfig   `json:"field,omitempty" yaml:"field,omitempty"`
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP and WebSocket settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// ReadTimeout is the WebSocket read deadline (e.g. "60s").
	ReadTimeout string `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`

	// WriteTimeout is the WebSocket write deadline (e.g. "10s").
	WriteTimeout string `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`

	// AllowedOrigins lists origins allowed to open sessions. Empty means
	// same-origin only.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig controls OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracer_name,omitempty" yaml:"tracer_name,omitempty"`
}

// FieldConfig sets defaults for fields mounted by the server.
type FieldConfig struct {
	// Tag is the widget element name.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`

	// KeyboardContainer gives each field its own virtual keyboard container.
	KeyboardContainer bool `json:"keyboard_container,omitempty" yaml:"keyboard_container,omitempty"`

	// SyntheticInput enables the deprecated hidden-input mirror.
	SyntheticInput bool `json:"synthetic_input,omitempty" yaml:"synthetic_input,omitempty"`
}

// PublishConfig locates the object store the client runtime is uploaded to.
type PublishConfig struct {
	Bucket       string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	UsePathStyle bool   `json:"use_path_style,omitempty" yaml:"use_path_style,omitempty"`
	CacheControl string `json:"cache_control,omitempty" yaml:"cache_control,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Path:      DefaultMetricsPath,
			Namespace: "mathfield",
		},
		Tracing: TracingConfig{
			TracerName: "mathfield",
		},
		Field: FieldConfig{
			Tag: DefaultTag,
		},
		Publish: PublishConfig{
			Region:       "us-east-1",
			CacheControl: "public, max-age=31536000, immutable",
		},
	}
}

// Load reads configuration from the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No mathfield.json or mathfield.yaml found in " + dir).
		WithSuggestion("Create mathfield.yaml or pass --config")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := Unmarshal(path, data, cfg); err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Unmarshal decodes data into v as JSON or YAML according to the extension
// of name.
func Unmarshal(name string, data []byte, v any) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return errors.New("E101").
				WithDetail("Failed to parse " + filepath.Base(name) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.New("E101").
				WithDetail("Failed to parse " + filepath.Base(name) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	default:
		return errors.New("E103").WithDetail("Unsupported extension " + strconv.Quote(ext))
	}
	return nil
}

// SaveTo writes the configuration to path, as JSON or YAML by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return errors.New("E103").WithDetail("Cannot save to " + path)
	}
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
	if c.Field.Tag == "" {
		c.Field.Tag = d.Field.Tag
	}
	if c.Publish.Region == "" {
		c.Publish.Region = d.Publish.Region
	}
	if c.Publish.CacheControl == "" {
		c.Publish.CacheControl = d.Publish.CacheControl
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetailf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	for key, v := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return errors.New("E102").
				WithDetailf("%s must be a positive duration, got %q", key, v).
				WithSuggestion(`Use a Go duration such as "30s"`)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return errors.New("E102").Wrap(err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E102").
			WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E102").
			WithDetailf("metrics.path must start with /, got %q", c.Metrics.Path)
	}
	if !strings.Contains(c.Field.Tag, "-") {
		return errors.New("E102").
			WithDetailf("field.tag must be a custom element name containing a hyphen, got %q", c.Field.Tag)
	}
	return nil
}

// Address returns host:port for the server listener.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ReadTimeout returns the parsed read deadline.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, DefaultReadTimeout)
}

// WriteTimeout returns the parsed write deadline.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, DefaultWriteTimeout)
}

func parseDuration(v, fallback string) time.Duration {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
