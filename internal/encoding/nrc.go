package encoding

// Country selects the international-overlay (NRC, National Replacement
// Character set) chosen by ESC R. The Epson reference numbers 14
// countries, 0 through 13.
type Country int

const (
	USA Country = iota
	France
	Germany
	UnitedKingdom
	DenmarkI
	Sweden
	Italy
	SpainI
	Japan
	Norway
	DenmarkII
	SpainII
	LatinAmerica
	Korea
	countryCount
)

// nrcPositions are the ASCII codes the overlay may substitute. The
// Epson reference overlay touches 14 fixed positions; everything else
// always comes from the active table.
var nrcPositions = [14]byte{
	0x23, 0x24, 0x40, 0x5B, 0x5C, 0x5D, 0x5E, 0x60, 0x7B, 0x7C, 0x7D, 0x7E, 0x21, 0x27,
}

// nrcOverlays[country][i] is the replacement rune for nrcPositions[i],
// or 0 to mean "no replacement, fall through to the active table".
var nrcOverlays [countryCount][14]rune

func init() {
	set := func(c Country, pos byte, r rune) {
		for i, p := range nrcPositions {
			if p == pos {
				nrcOverlays[c][i] = r
				return
			}
		}
	}
	// France
	set(France, 0x23, '£')
	set(France, 0x40, 'à')
	set(France, 0x5B, '°')
	set(France, 0x5C, 'ç')
	set(France, 0x5D, '§')
	set(France, 0x60, 'à')
	set(France, 0x7B, 'é')
	set(France, 0x7C, 'ù')
	set(France, 0x7D, 'è')
	set(France, 0x7E, '¨')
	// Germany
	set(Germany, 0x40, '§')
	set(Germany, 0x5B, 'Ä')
	set(Germany, 0x5C, 'Ö')
	set(Germany, 0x5D, 'Ü')
	set(Germany, 0x7B, 'ä')
	set(Germany, 0x7C, 'ö')
	set(Germany, 0x7D, 'ü')
	set(Germany, 0x7E, 'ß')
	// United Kingdom
	set(UnitedKingdom, 0x23, '£')
	// Denmark I
	set(DenmarkI, 0x5B, 'Æ')
	set(DenmarkI, 0x5C, 'Ø')
	set(DenmarkI, 0x5D, 'Å')
	set(DenmarkI, 0x7B, 'æ')
	set(DenmarkI, 0x7C, 'ø')
	set(DenmarkI, 0x7D, 'å')
	// Sweden
	set(Sweden, 0x40, 'É')
	set(Sweden, 0x5B, 'Ä')
	set(Sweden, 0x5C, 'Ö')
	set(Sweden, 0x5D, 'Å')
	set(Sweden, 0x5E, 'Ü')
	set(Sweden, 0x60, 'é')
	set(Sweden, 0x7B, 'ä')
	set(Sweden, 0x7C, 'ö')
	set(Sweden, 0x7D, 'å')
	set(Sweden, 0x7E, 'ü')
	// Italy
	set(Italy, 0x23, '£')
	set(Italy, 0x40, '§')
	set(Italy, 0x5B, '°')
	set(Italy, 0x5C, 'ç')
	set(Italy, 0x5D, 'é')
	set(Italy, 0x60, 'ù')
	set(Italy, 0x7B, 'à')
	set(Italy, 0x7C, 'ò')
	set(Italy, 0x7D, 'è')
	set(Italy, 0x7E, 'ì')
	// Spain I
	set(SpainI, 0x23, 'Ñ')
	set(SpainI, 0x40, '¡')
	set(SpainI, 0x5B, 'ñ')
	set(SpainI, 0x5D, 'Ç')
	set(SpainI, 0x7B, '¿')
	set(SpainI, 0x7D, 'ç')
	// Norway
	set(Norway, 0x23, '§')
	set(Norway, 0x40, 'É')
	set(Norway, 0x5B, 'Æ')
	set(Norway, 0x5C, 'Ø')
	set(Norway, 0x5D, 'Å')
	set(Norway, 0x5E, 'Ü')
	set(Norway, 0x60, 'é')
	set(Norway, 0x7B, 'æ')
	set(Norway, 0x7C, 'ø')
	set(Norway, 0x7D, 'å')
	set(Norway, 0x7E, 'ü')
	// Denmark II
	set(DenmarkII, 0x40, 'É')
	set(DenmarkII, 0x5B, 'Æ')
	set(DenmarkII, 0x5C, 'Ø')
	set(DenmarkII, 0x5D, 'Å')
	set(DenmarkII, 0x7B, 'æ')
	set(DenmarkII, 0x7C, 'ø')
	set(DenmarkII, 0x7D, 'å')
	// Spain II
	set(SpainII, 0x5B, 'ñ')
	set(SpainII, 0x7B, '¿')
	// Latin America
	set(LatinAmerica, 0x23, 'Ñ')
	set(LatinAmerica, 0x40, '¡')
	set(LatinAmerica, 0x5B, 'ñ')
	set(LatinAmerica, 0x5D, 'Ç')
	set(LatinAmerica, 0x7B, '¿')
	set(LatinAmerica, 0x7D, 'ç')
	// Korea: no ASCII substitutions beyond USA in this overlay model.
}

// Overlay resolves b through the NRC table for country, returning
// (replacement, true) if the position is substituted, or (0, false) if
// b falls through to the active character table unchanged.
func Overlay(country Country, b byte) (rune, bool) {
	if country < 0 || country >= countryCount {
		return 0, false
	}
	for i, p := range nrcPositions {
		if p == b {
			if r := nrcOverlays[country][i]; r != 0 {
				return r, true
			}
			return 0, false
		}
	}
	return 0, false
}

// ValidCountry reports whether n is a valid ESC R country selector.
func ValidCountry(n int) bool {
	return n >= 0 && n < int(countryCount)
}
