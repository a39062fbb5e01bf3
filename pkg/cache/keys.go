package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key kinds. Every key starts with its kind so a backend listing can tell
// layouts from artifacts.
const (
	kindLayout   = "layout"
	kindArtifact = "artifact"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the document with
	// the given content hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the engine inputs that change a layout.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	RTL       bool    `json:"rtl"`
	Alignment string  `json:"alignment"`
	Columns   int     `json:"columns"`
	Spacing   string  `json:"spacing,omitempty"` // host spacing override, "" when unset
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Labels bool    `json:"labels"`
	Scale  float64 `json:"scale"`

	TextColumns int `json:"text_columns,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return digestKey(kindLayout, docHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digestKey(kindArtifact, layoutHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so that deployments
// sharing one Redis do not read each other's layouts:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements [Keyer].
func (k *ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(docHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// digestKey hashes the content hash together with the options that shaped
// the entry. Options are plain structs, so json.Marshal cannot fail.
func digestKey(kind, contentHash string, opts any) string {
	data, _ := json.Marshal(struct {
		Content string `json:"content"`
		Opts    any    `json:"opts"`
	}{contentHash, opts})
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Documents, layouts and file cache
// names are all addressed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
