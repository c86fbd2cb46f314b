package lzstring

import "unicode/utf16"

var (
	wideEscape   = []uint16{'%', 'u'}
	narrowEscape = []uint16{'%'}
)

// Undoes %uXXXX and %XX escaping. Malformed escapes are left as they are.
func Unescape(s string) string {
	return string(utf16.Decode(UnescapeUnits(s)))
}

// Undoes %uXXXX and %XX escaping and returns UTF-16 code units.
// Unlike Unescape it keeps unpaired surrogates, which compressed streams
// are full of.
func UnescapeUnits(s string) []uint16 {
	units := utf16.Encode([]rune(s))
	units = replaceEscapes(units, wideEscape, 4)
	return replaceEscapes(units, narrowEscape, 2)
}

// Replaces every prefix followed by exactly n hex digits with the unit
// they spell, scanning left to right without overlap.
func replaceEscapes(units, prefix []uint16, n int) []uint16 {
	out := make([]uint16, 0, len(units))
	for i := 0; i < len(units); {
		if v, ok := parseEscape(units[i:], prefix, n); ok {
			out = append(out, v)
			i += len(prefix) + n
			continue
		}
		out = append(out, units[i])
		i++
	}
	return out
}

func parseEscape(units, prefix []uint16, n int) (uint16, bool) {
	if len(units) < len(prefix)+n {
		return 0, false
	}
	for i, p := range prefix {
		if units[i] != p {
			return 0, false
		}
	}

	var v uint16
	for _, u := range units[len(prefix) : len(prefix)+n] {
		d, ok := hexValue(u)
		if !ok {
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}

func hexValue(u uint16) (uint16, bool) {
	switch {
	case u >= '0' && u <= '9':
		return u - '0', true
	case u >= 'a' && u <= 'f':
		return u - 'a' + 10, true
	case u >= 'A' && u <= 'F':
		return u - 'A' + 10, true
	default:
		return 0, false
	}
}
