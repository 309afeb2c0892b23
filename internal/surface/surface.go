// Package surface declares the vector drawing surface the interpreter
// renders onto. This is an external collaborator: the interpreter only
// ever calls through the Surface interface, never constructs PDF bytes
// itself. Recorder, below, is an in-memory implementation used by tests
// and by callers who want to inspect what would have been drawn without
// depending on a concrete PDF backend.
package surface

// Color is the CMYK-mapped ink colour of a drawn primitive, matching
// the 8-colour Epson ribbon palette.
type Color struct {
	C, M, Y, K float64
}

// Black is the default ink colour.
var Black = Color{K: 1}

// FontStyle carries the style bits the typography subsystem resolves,
// so the font resolver and drawing surface can pick/shape glyphs.
type FontStyle struct {
	Italic    bool
	Bold      bool
	Underline bool
	Strikeout bool
	Overscore bool
	ShearDeg  float64 // non-zero when italic is simulated without a dedicated font
}

// Font is an opaque handle returned by the external font resolver and
// passed back into DrawText; the interpreter never inspects it.
type Font interface{}

// Surface is the vector drawing surface: draw text, dots and rects,
// open new pages, and finalize the document. Units are PDF points
// (1/72 inch).
type Surface interface {
	DrawText(glyph rune, font Font, x, y float64, style FontStyle, color Color)
	DrawDot(x, y, diameter float64, color Color)
	DrawRect(x, y, w, h float64, color Color)
	NewPage(widthPt, heightPt float64)
	Finalize() error
}

// op is one recorded call, used by Recorder for assertions in tests.
type op struct {
	kind                 string
	glyph                rune
	x, y, w, h, diameter float64
	color                Color
	style                FontStyle
}

// Recorder is an in-memory Surface that remembers every call it
// receives, for use in tests and as a stand-in pending a real PDF
// backend.
type Recorder struct {
	Ops      []op
	Pages    int
	Final    bool
	FinalErr error
}

// NewRecorder returns a ready-to-use Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) DrawText(glyph rune, font Font, x, y float64, style FontStyle, color Color) {
	r.Ops = append(r.Ops, op{kind: "text", glyph: glyph, x: x, y: y, style: style, color: color})
}

func (r *Recorder) DrawDot(x, y, diameter float64, color Color) {
	r.Ops = append(r.Ops, op{kind: "dot", x: x, y: y, diameter: diameter, color: color})
}

func (r *Recorder) DrawRect(x, y, w, h float64, color Color) {
	r.Ops = append(r.Ops, op{kind: "rect", x: x, y: y, w: w, h: h, color: color})
}

func (r *Recorder) NewPage(widthPt, heightPt float64) {
	r.Pages++
	r.Ops = append(r.Ops, op{kind: "page", w: widthPt, h: heightPt})
}

func (r *Recorder) Finalize() error {
	r.Final = true
	return r.FinalErr
}

// Text reconstructs the sequence of glyphs drawn so far, for round-trip
// assertions in tests.
func (r *Recorder) Text() string {
	var out []rune
	for _, o := range r.Ops {
		if o.kind == "text" {
			out = append(out, o.glyph)
		}
	}
	return string(out)
}

// DotCount returns how many dots and rectangles were drawn: graphics
// pixels under either renderer, plus any underline/strikeout/overscore
// rules drawn as rectangles.
func (r *Recorder) DotCount() int {
	n := 0
	for _, o := range r.Ops {
		if o.kind == "dot" || o.kind == "rect" {
			n++
		}
	}
	return n
}
