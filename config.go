package mathsvg

// Package-wide configuration. These are read once at the start of each
// render; changing them mid-render does not affect renders in flight.
var (
	// SVG2 emits one <symbol> per distinct glyph referenced by <use>.
	// Disable for SVG 1.1 output where every glyph is an inlined <path>,
	// larger but compatible with older viewers.
	SVG2 = true

	// Precision is the number of decimal places of SVG coordinates (and of
	// significant digits of glyph scale factors).
	Precision = 6

	// MinSizeFraction is the smallest allowed text size for scripts, as a
	// fraction of the base font size.
	MinSizeFraction = 0.3

	// DecimalSeparator is "." or ",". With ",", no operator space follows a
	// comma between two digits.
	DecimalSeparator = "."

	// SVGClasses adds class attributes to SVG elements.
	SVGClasses = false

	// SVGStyle is CSS injected as a <style> element into each SVG.
	SVGStyle = ""

	// SVGDefs is raw XML injected into the <defs> of each SVG.
	SVGDefs = ""

	// Debug draws bounding boxes and baselines.
	Debug = false
)

// MathConfig styles math expressions.
type MathConfig struct {
	MathFont   string // font file, must contain a MATH table; empty selects the host's STIX Two Math
	Variant    string // mathvariant inherited by the root, e.g. "sans"; elements' own mathvariant still applies
	FontSize   float64
	Color      string
	Background string
}

// TextConfig styles prose spans in mixed text.
type TextConfig struct {
	TextFont    string
	Variant     string
	FontSize    float64
	Color       string
	LineSpacing float64
}

// NumberingConfig controls equation numbering.
type NumberingConfig struct {
	Autonumber  bool
	Format      string           // fmt verb with one %d, e.g. "(%d)"
	FormatFunc  func(int) string // overrides Format when set
	ColumnWidth string           // length with unit, e.g. "6.5in"
}

var (
	MathStyle = MathConfig{FontSize: 24, Background: "none"}
	TextStyle = TextConfig{Variant: "serif", FontSize: 24, Color: "black", LineSpacing: 1.0}
	Numbering = NumberingConfig{Format: "(%d)", ColumnWidth: "6.5in"}
)

// config is the per-render snapshot of the package configuration.
type config struct {
	svg2             bool
	precision        int
	minSizeFraction  float64
	decimalSeparator string
	svgClasses       bool
	svgStyle         string
	svgDefs          string
	debug            bool
	math             MathConfig
	text             TextConfig
	numbering        NumberingConfig
}

func snapshot() config {
	return config{
		svg2:             SVG2,
		precision:        Precision,
		minSizeFraction:  MinSizeFraction,
		decimalSeparator: DecimalSeparator,
		svgClasses:       SVGClasses,
		svgStyle:         SVGStyle,
		svgDefs:          SVGDefs,
		debug:            Debug,
		math:             MathStyle,
		text:             TextStyle,
		numbering:        Numbering,
	}
}
