// Package userdict implements the user-defined-character persistence
// collaborator: a JSON mapping file keyed by a font-identity fingerprint,
// optionally paired with a PNG dump of each glyph bitmap an operator can
// inspect while filling in the mapping.
package userdict

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/kovidgoyal/imaging"

	"github.com/doswriter/escp2pdf/internal/encoding"
)

// Entry is one fingerprint's worth of user-defined character mappings.
type Entry struct {
	Mode                byte
	ProportionalSpacing bool
	Scripting           string // "", "super", "sub"
	Chars               map[byte]rune
}

// MarshalJSON flattens Entry into the format described for the mapping
// file: known keys alongside one string-keyed entry per character code.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(e.Chars)+3)
	m["mode"] = e.Mode
	m["proportional_spacing"] = e.ProportionalSpacing
	if e.Scripting == "" {
		m["scripting"] = nil
	} else {
		m["scripting"] = e.Scripting
	}
	for code, r := range e.Chars {
		m[strconv.Itoa(int(code))] = string(r)
	}
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Chars = make(map[byte]rune, len(raw))
	for k, v := range raw {
		switch k {
		case "mode":
			var m int
			if err := json.Unmarshal(v, &m); err == nil {
				e.Mode = byte(m)
			}
		case "proportional_spacing":
			_ = json.Unmarshal(v, &e.ProportionalSpacing)
		case "scripting":
			var s *string
			if err := json.Unmarshal(v, &s); err == nil && s != nil {
				e.Scripting = *s
			}
		default:
			code, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}
			runes := []rune(s)
			if len(runes) > 0 {
				e.Chars[byte(code)] = runes[0]
			}
		}
	}
	return nil
}

// Store is a JSON-file-backed encoding.UserDefinedStore, with an
// optional side directory of PNG glyph dumps for operator review.
type Store struct {
	mu         sync.Mutex
	path       string
	imagesPath string
	entries    map[string]*Entry
	dirty      bool
}

// Open loads databasePath if it exists, or starts an empty store. A
// non-empty imagesPath additionally dumps every newly recorded glyph as
// a PNG for an operator to inspect while filling in its mapping.
func Open(databasePath, imagesPath string) (*Store, error) {
	s := &Store{path: databasePath, imagesPath: imagesPath, entries: make(map[string]*Entry)}

	data, err := os.ReadFile(databasePath)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("userdict: reading %s: %w", databasePath, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("userdict: parsing %s: %w", databasePath, err)
	}
	return s, nil
}

// Lookup implements encoding.UserDefinedStore.
func (s *Store) Lookup(fingerprint string, code byte) (rune, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[fingerprint]
	if !ok {
		return 0, false
	}
	r, ok := e.Chars[code]
	if !ok || r == encoding.Replacement {
		return 0, false
	}
	return r, true
}

// Record implements encoding.UserDefinedStore: it registers a
// not-yet-mapped placeholder for the glyph (an operator edits the JSON
// file afterwards) and, if configured, dumps the bitmap to a PNG.
func (s *Store) Record(fingerprint string, code byte, bitmap []byte, width, height int) {
	s.mu.Lock()
	e, ok := s.entries[fingerprint]
	if !ok {
		e = &Entry{Chars: make(map[byte]rune)}
		s.entries[fingerprint] = e
	}
	_, known := e.Chars[code]
	if !known {
		e.Chars[code] = encoding.Replacement
		s.dirty = true
	}
	imagesPath := s.imagesPath
	s.mu.Unlock()

	if !known && imagesPath != "" {
		if err := dumpGlyphPNG(imagesPath, fingerprint, code, bitmap, width, height); err != nil {
			// Best-effort: a failed PNG dump never blocks the run, the
			// JSON mapping is still usable without it.
			_ = err
		}
	}
}

// Flush writes the store to its backing file if anything changed since
// Open (or since the last Flush).
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("userdict: encoding %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("userdict: creating directory for %s: %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("userdict: writing %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// Fingerprint derives the stable per-font-identity key used both as the
// store's lookup key and the JSON file's "<fingerprint>_<mode>" entry
// name: a SHA-256 over the typeface id and proportional flag, truncated
// to 16 hex characters for a readable file, followed by "_" and the
// ESC & definition mode in decimal.
func Fingerprint(typefaceID int, proportional bool, mode byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%t", typefaceID, proportional)
	sum := hex.EncodeToString(h.Sum(nil))[:16]
	return fmt.Sprintf("%s_%d", sum, mode)
}

// dumpGlyphPNG renders a packed MSB-first bitmap (as ESC & delivers it)
// into a black-on-white PNG: the mirror image of the image-to-bitmap
// dithering pipeline, which went image -> packed bits.
func dumpGlyphPNG(imagesPath, fingerprint string, code byte, bitmap []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("userdict: invalid glyph dimensions %dx%d", width, height)
	}
	if err := os.MkdirAll(imagesPath, 0o755); err != nil {
		return fmt.Errorf("userdict: creating images directory: %w", err)
	}

	img := imaging.New(width, height, color.White)
	bytesPerCol := (height + 7) / 8
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			byteIdx := x*bytesPerCol + y/8
			if byteIdx >= len(bitmap) {
				continue
			}
			if bitmap[byteIdx]&(1<<uint(7-(y%8))) != 0 {
				img.Set(x, y, color.Black)
			}
		}
	}

	name := fmt.Sprintf("%s_%d.png", fingerprint, code)
	return imaging.Save(img, filepath.Join(imagesPath, name))
}
