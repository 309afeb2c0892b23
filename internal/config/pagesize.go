package config

import (
	"fmt"
	"strconv"
	"strings"
)

// mmToPt converts millimeters to points (1in = 72pt = 25.4mm).
const mmToPt = 72.0 / 25.4

// isoSizes holds width,height in millimetres, portrait orientation, for
// every alias the [misc] page_size key accepts.
var isoSizes = map[string][2]float64{
	"A0": {841, 1189}, "A1": {594, 841}, "A2": {420, 594}, "A3": {297, 420},
	"A4": {210, 297}, "A5": {148, 210}, "A6": {105, 148}, "A7": {74, 105},
	"A8": {52, 74}, "A9": {37, 52}, "A10": {26, 37},

	"B0": {1000, 1414}, "B1": {707, 1000}, "B2": {500, 707}, "B3": {353, 500},
	"B4": {250, 353}, "B5": {176, 250}, "B6": {125, 176}, "B7": {88, 125},
	"B8": {62, 88}, "B9": {44, 62}, "B10": {31, 44},

	"C0": {917, 1297}, "C1": {648, 917}, "C2": {458, 648}, "C3": {324, 458},
	"C4": {229, 324}, "C5": {162, 229}, "C6": {114, 162}, "C7": {81, 114},
	"C8": {57, 81}, "C9": {40, 57}, "C10": {28, 40},

	"LETTER":  {215.9, 279.4},
	"LEGAL":   {215.9, 355.6},
	"TABLOID": {279.4, 431.8},
	"LEDGER":  {431.8, 279.4},
}

// ResolvePageSize turns a [misc] page_size value — an alias (optionally
// "L-" prefixed for landscape) or a literal "W,H" in millimetres — into
// PDF points.
func ResolvePageSize(spec string) (widthPt, heightPt float64, err error) {
	spec = strings.TrimSpace(spec)
	landscape := false
	if rest, ok := strings.CutPrefix(strings.ToUpper(spec), "L-"); ok {
		landscape = true
		spec = rest
	}

	if wMM, hMM, ok := parseLiteralMM(spec); ok {
		if landscape {
			wMM, hMM = hMM, wMM
		}
		return wMM * mmToPt, hMM * mmToPt, nil
	}

	dims, ok := isoSizes[strings.ToUpper(spec)]
	if !ok {
		return 0, 0, fmt.Errorf("config: unknown page size alias %q", spec)
	}
	wMM, hMM := dims[0], dims[1]
	if landscape {
		wMM, hMM = hMM, wMM
	}
	return wMM * mmToPt, hMM * mmToPt, nil
}

func parseLiteralMM(spec string) (w, h float64, ok bool) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return w, h, true
}
