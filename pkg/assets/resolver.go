package assets

import "strings"

// Resolver turns a logical asset name into the URL a page should load.
type Resolver interface {
	// Asset returns the URL for source, e.g.
	// "mathfield.js" → "/_mathfield/mathfield.3f9a0c1d.js".
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver resolves names through m and prepends prefix. The prefix is
// usually a CDN base URL or a local mount such as "/_mathfield/".
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return join(r.prefix, r.manifest.Resolve(source))
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver returns names unchanged apart from the prefix. The
// server uses it when the runtime is served from the binary.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return join(p.prefix, source)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(name, "/")
}
