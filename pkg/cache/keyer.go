package cache

// Keyer builds cache keys. Implementations must be deterministic: equal inputs
// produce equal keys.
type Keyer interface {
	// LayoutKey identifies a computed snapshot for the given metrics hash.
	LayoutKey(metricsHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact for the given snapshot hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout parameters that change a snapshot.
type LayoutKeyOpts struct {
	Columns int     `json:"columns"`
	Padding float64 `json:"padding"`
	Width   float64 `json:"width"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Labels bool    `json:"labels,omitempty"`

	// Cells encodes the occupant of every cell, one glyph per cell.
	Cells string `json:"cells,omitempty"`
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key builder.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(metricsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", metricsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
