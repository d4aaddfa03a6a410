// Package assets fingerprints the mathfield client runtime and resolves the
// URL it is served from.
//
// Publishing writes each runtime file under a content-addressed name and a
// manifest.json mapping the logical name to it:
//
//	{
//	  "mathfield.js": "mathfield.3f9a0c1d.js"
//	}
//
// Pages then ask a Resolver for the script URL:
//
//	m, _ := assets.Load("dist/manifest.json")
//	r := assets.NewResolver(m, "https://cdn.example.com/mathfield/")
//	r.Asset("mathfield.js") // "https://cdn.example.com/mathfield/mathfield.3f9a0c1d.js"
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path"
	"strings"
	"sync"
)

// ManifestName is the object name the manifest is published under.
const ManifestName = "manifest.json"

// hashLen is the number of hex digits kept from the content hash.
const hashLen = 8

// Manifest maps logical asset names to fingerprinted names.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSON manifest.
func Parse(data []byte) (*Manifest, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted name for source, or source itself when
// the manifest has no entry.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether the manifest has an entry for source.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or replaces an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// All returns a copy of the entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}

// MarshalJSON encodes the entries as a flat object.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.All())
}

// Fingerprint returns name with a short content hash inserted before the
// extension: "mathfield.js" becomes "mathfield.<hash>.js". Directories in
// name are kept.
func Fingerprint(name string, data []byte) string {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])[:hashLen]

	dir, file := path.Split(name)
	ext := path.Ext(file)
	base := strings.TrimSuffix(file, ext)
	return dir + base + "." + hash + ext
}
