// Package interpreter is the top-level command-stream dispatcher: it
// reads raw printer bytes, classifies each as an ESC sequence, a
// control code, or data, and drives the layout, typography, encoding
// and graphics subsystems plus the drawing surface to produce a
// document. Run is its only public operation.
package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/doswriter/escp2pdf/internal/encoding"
	"github.com/doswriter/escp2pdf/internal/graphics"
	"github.com/doswriter/escp2pdf/internal/layout"
	"github.com/doswriter/escp2pdf/internal/surface"
	"github.com/doswriter/escp2pdf/internal/typography"
	"github.com/doswriter/escp2pdf/internal/units"
	"github.com/doswriter/escp2pdf/internal/userdict"
)

const escByte = 0x1B

// ErrFatalTruncation is wrapped into any command error that escapes Run:
// a declared parameter block (or the fixed-size prefix of one) ran past
// end of stream. Every other command error is absorbed; a non-EOF read
// error from the input and the surface's Finalize error are returned
// as they are.
var ErrFatalTruncation = errors.New("interpreter: truncated parameter block at end of stream")

// recoverableSkip marks an error the dispatcher absorbs: logged at
// warning, then the next byte is read as if nothing happened.
type recoverableSkip struct{ err error }

func (r recoverableSkip) Error() string { return r.err.Error() }
func (r recoverableSkip) Unwrap() error { return r.err }

func skip(format string, args ...any) error {
	return recoverableSkip{fmt.Errorf(format, args...)}
}

// Options configures a new Interpreter with the document defaults a
// loaded configuration (or a test) supplies.
type Options struct {
	Paper             layout.Paper
	Margins           layout.Margins
	LineSpacing       units.Subunit
	DefinedUnit       units.Subunit
	AutomaticLinefeed bool
	Pins              int
	Renderer          graphics.Renderer
	CondensedFallback typography.CondensedFallback
	Fonts             typography.FontResolver
	UserDict          encoding.UserDefinedStore
	Registry          *encoding.Registry
	DefaultTableName  string
	Logger            *zap.Logger
}

// Interpreter is the command dispatcher / printer state machine. It
// owns the layout, typography and encoding state for one document run
// and delegates graphics decoding and drawing to its collaborators.
type Interpreter struct {
	layout *layout.Engine
	typo   typography.State
	enc    *encoding.Resolver
	gfx    *graphics.Decoder
	surf   surface.Surface
	fonts  typography.FontResolver
	dict   encoding.UserDefinedStore
	log    *zap.Logger

	r *bufio.Reader

	layoutDefaults layout.Defaults
	defaultTable   *encoding.Table

	pins              int
	ink               surface.Color
	condensedFallback typography.CondensedFallback

	controlPrintableHigh bool // ESC 6/7: print 0x80-0x9F instead of swallowing (on by default)
	allControlPrintable  bool // ESC I: print every 0x00-0x1F / 0x80-0x9F byte other than a named control code

	userDefined    bool // ESC %
	userDefMode    byte // mode byte from the last ESC & definition, part of the fingerprint
	densityRemap   map[byte]int // ESC ?: legacy K/L/Y/Z density reassignment
	hTabUnit       units.Subunit
	vTabUnit       units.Subunit
}

// New constructs an Interpreter bound to surf, ready for Run.
func New(surf surface.Surface, opts Options) (*Interpreter, error) {
	table, err := opts.Registry.Lookup(opts.DefaultTableName)
	if err != nil {
		return nil, fmt.Errorf("interpreter: %w", err)
	}

	ip := &Interpreter{
		surf:              surf,
		fonts:             opts.Fonts,
		dict:              opts.UserDict,
		log:               opts.Logger,
		layoutDefaults:    layout.Defaults{Paper: opts.Paper, Margins: opts.Margins, LineSpacing: opts.LineSpacing, DefinedUnit: opts.DefinedUnit, AutomaticLinefeed: opts.AutomaticLinefeed},
		defaultTable:      table,
		pins:              opts.Pins,
		ink:               surface.Black,
		condensedFallback: opts.CondensedFallback,
		densityRemap:      map[byte]int{'K': 0, 'L': 1, 'Y': 2, 'Z': 3},
	}
	ip.layout = layout.NewEngine(surf, ip.layoutDefaults)
	ip.enc = encoding.NewResolver(opts.Registry, table, opts.UserDict, ip.fingerprint)
	ip.gfx = &graphics.Decoder{Layout: ip.layout, Surface: surf, Renderer: opts.Renderer, Color: surface.Black}
	ip.typo = typography.Default()
	ip.controlPrintableHigh = true
	return ip, nil
}

func (ip *Interpreter) logger() *zap.Logger {
	if ip.log != nil {
		return ip.log
	}
	return zap.NewNop()
}

func (ip *Interpreter) fingerprint() string {
	return userdict.Fingerprint(ip.typo.TypefaceID, ip.typo.Proportional, ip.userDefMode)
}

// reset implements ESC @: every subsystem reverts to configured
// defaults, but the currently open page is not closed.
func (ip *Interpreter) reset() {
	ip.layout.Reset(ip.layoutDefaults)
	ip.typo.Reset()
	ip.enc.Reset(ip.defaultTable)
	ip.ink = surface.Black
	ip.gfx.Color = surface.Black
	ip.controlPrintableHigh = true
	ip.allControlPrintable = false
	ip.userDefined = false
	ip.hTabUnit = 0
	ip.vTabUnit = 0
}

// Run consumes every byte of r, dispatching to the command table and
// drawing onto the surface bound at construction, then finalises the
// surface. It is the only operation Interpreter exposes.
func (ip *Interpreter) Run(r io.Reader) error {
	ip.r = bufio.NewReader(r)
	for {
		b, err := ip.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("interpreter: reading input: %w", err)
		}
		if derr := ip.dispatch(b); derr != nil {
			if errors.Is(derr, ErrFatalTruncation) {
				_ = ip.surf.Finalize()
				return derr
			}
			ip.logger().Warn("recoverable command error, continuing", zap.Error(derr))
		}
	}
	return ip.surf.Finalize()
}

func (ip *Interpreter) dispatch(b byte) error {
	switch {
	case b == escByte:
		return ip.dispatchEsc()
	case namedControls[b]:
		return ip.dispatchControl(b)
	case ip.isSwallowedControl(b):
		return nil
	default:
		return ip.drawGlyph(b)
	}
}

// isSwallowedControl reports whether b falls in the non-named control
// ranges (0x00-0x1F, 0x80-0x9F) that print only when the
// upper-control-printable toggle or ESC I is active.
func (ip *Interpreter) isSwallowedControl(b byte) bool {
	if ip.allControlPrintable {
		return false
	}
	switch {
	case b < 0x20:
		return true
	case b >= 0x80 && b <= 0x9F:
		return !ip.controlPrintableHigh
	default:
		return false
	}
}

// readByte reads one byte, reporting fatal truncation on EOF mid
// parameter block.
func (ip *Interpreter) readByte() (byte, error) {
	b, err := ip.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFatalTruncation, err)
	}
	return b, nil
}

func (ip *Interpreter) readLen16() (int, error) {
	lo, err := ip.readByte()
	if err != nil {
		return 0, err
	}
	hi, err := ip.readByte()
	if err != nil {
		return 0, err
	}
	return int(lo) | int(hi)<<8, nil
}

// readExact reads exactly n bytes, fatal on a short read — used for
// commands whose parameter block declares its own byte length.
func (ip *Interpreter) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(ip.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalTruncation, err)
	}
	return buf, nil
}

// readUpTo reads up to n bytes and returns whatever arrived before end
// of stream, with no error — graphics payloads render as many whole
// units as they have data for and stop cleanly otherwise.
func (ip *Interpreter) readUpTo(n int) []byte {
	buf := make([]byte, n)
	read, _ := io.ReadFull(ip.r, buf)
	return buf[:read]
}
