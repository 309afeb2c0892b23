// Package fontresolver implements the font-resolver collaborator the
// typography subsystem calls at draw time: given a resolved typeface,
// pitch kind and style it returns an opaque handle the drawing surface
// knows how to render with.
package fontresolver

import (
	"strings"

	"go.uber.org/zap"

	"github.com/doswriter/escp2pdf/internal/config"
	"github.com/doswriter/escp2pdf/internal/surface"
)

// typefaceNames maps the ESC/P numeric typeface selector (ESC k) to the
// configuration section name carrying its font files.
var typefaceNames = map[int]string{
	0:  "roman",
	1:  "sans serif",
	2:  "courier",
	3:  "prestige",
	4:  "script",
	5:  "ocr-b",
	6:  "ocr-a",
	7:  "orator",
	8:  "orator-s",
	9:  "script c",
	10: "roman t",
	11: "sans serif h",
}

// Font is the opaque handle returned through surface.Font.
type Font struct {
	Family      string
	Path        string
	Style       surface.FontStyle
	Substituted bool // true when no configured font existed and a core font was used
}

// Resolver is the default FontResolver: it serves font paths out of a
// loaded configuration, falling back to an embedded core font (Courier
// for fixed pitch, Times for proportional) when a typeface is missing.
type Resolver struct {
	typefaces map[string]config.FontSpec
	logger    *zap.Logger
}

// New builds a Resolver over the typeface sections of a loaded
// configuration.
func New(typefaces map[string]config.FontSpec, logger *zap.Logger) *Resolver {
	return &Resolver{typefaces: typefaces, logger: logger}
}

// Resolve implements typography.FontResolver.
func (r *Resolver) Resolve(typefaceID int, proportional bool, pointSize float64, style surface.FontStyle) (surface.Font, error) {
	name, ok := typefaceNames[typefaceID]
	if !ok {
		name = "roman"
	}

	spec, ok := r.typefaces[name]
	substituted := !ok
	if !ok {
		r.log().Info("substituting default font for unconfigured typeface",
			zap.Int("typeface_id", typefaceID), zap.String("typeface", name))
	}

	path := spec.Fixed
	if proportional {
		path = spec.Proportional
	}
	if path == "" {
		substituted = true
		if proportional {
			path = "Times-Roman"
		} else {
			path = "Courier"
		}
		r.log().Info("substituting core font: typeface has no matching font file",
			zap.String("typeface", name), zap.Bool("proportional", proportional))
	}

	return &Font{
		Family:      displayName(name),
		Path:        path,
		Style:       style,
		Substituted: substituted,
	}, nil
}

func (r *Resolver) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return zap.NewNop()
}

func displayName(lower string) string {
	fields := strings.Fields(lower)
	for i, f := range fields {
		if len(f) > 0 {
			fields[i] = strings.ToUpper(f[:1]) + f[1:]
		}
	}
	return strings.Join(fields, " ")
}
