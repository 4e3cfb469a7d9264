package cache

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey identifies one render pass: a dataset, a selected person
	// (empty for none) and the scene options.
	RenderKey(datasetHash, selectedID string, opts RenderKeyOpts) string
	// ExportKey identifies an exported artifact of a scene.
	ExportKey(sceneHash, format string) string
}

// RenderKeyOpts holds the scene options that change render output.
type RenderKeyOpts struct {
	NodeSize     int
	EmphasisSize int
	Background   string
	FontColor    string
}

// DefaultKeyer produces unprefixed keys of the form "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(datasetHash, selectedID string, opts RenderKeyOpts) string {
	return hashKey("render", datasetHash, selectedID, opts)
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(sceneHash, format string) string {
	return hashKey("export", sceneHash, format)
}

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "cliques:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RenderKey implements Keyer.
func (k *ScopedKeyer) RenderKey(datasetHash, selectedID string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(datasetHash, selectedID, opts)
}

// ExportKey implements Keyer.
func (k *ScopedKeyer) ExportKey(sceneHash, format string) string {
	return k.prefix + k.inner.ExportKey(sceneHash, format)
}
