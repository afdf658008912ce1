package cache

// Keyer derives cache keys for the two things the pipeline caches.
type Keyer interface {
	// LayoutKey identifies a computed layout by the hash of its inputs
	// (words, mask and distance field) and every option that shapes it.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output of a cached layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the options that change a layout.
type LayoutKeyOpts struct {
	KeywordNum       int      `json:"keyword_num"`
	KeywordColor     string   `json:"keyword_color"`
	FillingWordColor string   `json:"filling_word_color"`
	FontFamily       string   `json:"font_family"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Colors           []string `json:"colors"`
	PlanA            bool     `json:"plan_a"`
	MaxFontSize      int      `json:"max_font_size"`
	MinFontSize      int      `json:"min_font_size"`
	FillingFontSize  int      `json:"filling_font_size"`
	AngleMode        int      `json:"angle_mode"`
	MaxMatch         bool     `json:"max_match"`
	Experimental     bool     `json:"experimental"`
	Eps              float64  `json:"eps"`
	Seed             uint64   `json:"seed"`
	Glyphs           string   `json:"glyphs"`
	FontHash         string   `json:"font_hash,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	Outlines   bool    `json:"outlines,omitempty"`
	NoFillings bool    `json:"no_fillings,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
