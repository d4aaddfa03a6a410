package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vango-dev/mathfield/internal/config"
)

// DefaultWidgetScript loads the widget element definition from a CDN.
const DefaultWidgetScript = "https://cdn.jsdelivr.net/npm/mathlive"

// Config holds the server settings.
type Config struct {
	// Address is the listen address, e.g. "localhost:8080".
	Address string

	// ReadTimeout and WriteTimeout are the WebSocket deadlines.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// AllowedOrigins lists extra origins allowed to open sessions.
	// Same-origin requests are always allowed.
	AllowedOrigins []string

	// MetricsPath is where Prometheus metrics are served. Empty disables
	// the endpoint.
	MetricsPath string

	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string

	// Tracing wraps requests and field events in spans.
	Tracing    bool
	TracerName string

	// Tag is the widget element name.
	Tag string

	// AssetPrefix is where the page loads the runtime from.
	AssetPrefix string

	// WidgetScript is the URL of the script defining the widget element.
	// Empty leaves loading it to the page.
	WidgetScript string
}

// DefaultConfig returns the settings used for unset fields.
func DefaultConfig() Config {
	return Config{
		Address:          ":8080",
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		ShutdownTimeout:  30 * time.Second,
		MetricsPath:      config.DefaultMetricsPath,
		MetricsNamespace: "mathfield",
		TracerName:       "mathfield",
		Tag:              config.DefaultTag,
		AssetPrefix:      AssetPath,
		WidgetScript:     DefaultWidgetScript,
	}
}

// FromConfig maps a loaded file configuration onto server settings.
func FromConfig(c *config.Config) Config {
	out := DefaultConfig()
	out.Address = c.Address()
	out.ReadTimeout = c.ReadTimeout()
	out.WriteTimeout = c.WriteTimeout()
	out.AllowedOrigins = c.Server.AllowedOrigins
	if c.Metrics.Enabled {
		out.MetricsPath = c.Metrics.Path
	} else {
		out.MetricsPath = ""
	}
	if c.Metrics.Namespace != "" {
		out.MetricsNamespace = c.Metrics.Namespace
	}
	out.Tracing = c.Tracing.Enabled
	if c.Tracing.TracerName != "" {
		out.TracerName = c.Tracing.TracerName
	}
	if c.Field.Tag != "" {
		out.Tag = c.Field.Tag
	}
	return out
}

func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = d.MetricsNamespace
	}
	if c.TracerName == "" {
		c.TracerName = d.TracerName
	}
	if c.Tag == "" {
		c.Tag = d.Tag
	}
	if c.AssetPrefix == "" {
		c.AssetPrefix = d.AssetPrefix
	}
}

// SameOriginCheck reports whether the request Origin matches its Host.
// Requests without an Origin header are allowed.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

// OriginChecker allows same-origin requests plus the listed origins.
// An entry of "*" allows every origin.
func OriginChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimSuffix(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		if set["*"] || SameOriginCheck(r) {
			return true
		}
		return set[strings.ToLower(r.Header.Get("Origin"))]
	}
}
