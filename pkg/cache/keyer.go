package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered output for the dataset with
	// the given content hash.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything besides the dataset that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string     `json:"format"`
	Colormap   string     `json:"colormap"`
	Offset     float64    `json:"offset"`
	FontFamily string     `json:"font_family"`
	FontSizes  [3]float64 `json:"font_sizes"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<sha256>". The format stays readable
// so that entries can be told apart when listing a backend.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	// ArtifactKeyOpts holds only strings and numbers; Marshal cannot fail.
	data, _ := json.Marshal(struct {
		Dataset string          `json:"dataset"`
		Opts    ArtifactKeyOpts `json:"opts"`
	}{datasetHash, opts})
	return "artifact:" + opts.Format + ":" + Hash(data)
}

// ScopedKeyer prefixes the keys of another Keyer. The CLI scopes keys by
// program version so that a new drawing routine never serves stale images.
//
//	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the inner key with the prefix in front.
func (k *ScopedKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(datasetHash, opts)
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it as the
// content hash of a dataset's canonical JSON.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
