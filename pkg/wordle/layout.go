package wordle

// Kind distinguishes keyword records from filling records.
type Kind string

const (
	KindKeyword Kind = "keyword"
	KindFilling Kind = "filling"
)

// Record is one placed word, ready for a renderer: translate to
// (TransX, TransY), rotate by Rotate radians, then draw the text with its
// left baseline at (FillX, FillY).
type Record struct {
	Name       string  `json:"name"`
	Kind       Kind    `json:"kind"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily,omitempty"`
	Color      string  `json:"color"`
	Alpha      float64 `json:"alpha"`
	Rotate     float64 `json:"rotate"`
	TransX     float64 `json:"transX"`
	TransY     float64 `json:"transY"`
	FillX      float64 `json:"fillX"`
	FillY      float64 `json:"fillY"`
}

// RegionReport summarises how one region fared during placement.
type RegionReport struct {
	ID          int           `json:"id"`
	Area        int           `json:"area"`
	WordsNum    int           `json:"wordsNum"`
	WordsWeight float64       `json:"wordsWeight"`
	Anchors     []AnchorPoint `json:"anchors"`
	Placed      int           `json:"placed"`
	Attempts    int           `json:"attempts"`
	RolledBack  bool          `json:"rolledBack,omitempty"`
}

// Layout is the complete result of a run.
type Layout struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Seed        uint64         `json:"seed"`
	MaxFontSize int            `json:"maxFontSize"`
	Keywords    []Record       `json:"keywords"`
	Fillings    []Record       `json:"fillings"`
	Regions     []RegionReport `json:"regions"`
}

// Records returns keywords followed by filling words, the order a renderer
// should paint them in.
func (l Layout) Records() []Record {
	out := make([]Record, 0, len(l.Keywords)+len(l.Fillings))
	out = append(out, l.Keywords...)
	return append(out, l.Fillings...)
}

// KeywordRecord builds the render record for a placed keyword.
func KeywordRecord(w *Word) Record {
	return Record{
		Name:       w.Name,
		Kind:       KindKeyword,
		FontSize:   w.FontSize,
		FontFamily: w.FontFamily,
		Color:      w.Color,
		Alpha:      1,
		Rotate:     w.Angle,
		TransX:     w.X,
		TransY:     w.Y,
		FillX:      -w.Width / 2,
		FillY:      w.Height/2 - w.Descent,
	}
}
