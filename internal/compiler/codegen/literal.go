package codegen

import (
	"math"
	"strconv"
	"strings"
)

// FloatLiteral renders v as the shortest decimal that round-trips, always
// with a fraction or exponent so that appending "f" yields a float literal.
// Magnitudes below 1e-4 or at or above 1e16 use exponent form.
func FloatLiteral(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
