package phpgen

import (
	"math"
	"strconv"
	"strings"
)

// shortestExpThreshold is the decimal exponent from which floats in
// shortest form switch to exponential notation, as PHP's var_export does.
const shortestExpThreshold = 15

// formatFloat renders f the way PHP's var_export does under the configured
// precision.
func (g *Generator) formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}

	prec, threshold := -1, shortestExpThreshold
	if g.cfg.Precision > 0 {
		prec, threshold = g.cfg.Precision-1, g.cfg.Precision
	}

	s := strconv.FormatFloat(f, 'e', prec, bitSize)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)
	digits := strings.TrimRight(strings.Replace(mant, ".", "", 1), "0")

	var out string
	switch {
	case digits == "":
		out = "0"
	case exp < -4 || exp >= threshold:
		frac := digits[1:]
		if frac == "" {
			frac = "0"
		}
		sign := "+"
		if exp < 0 {
			sign, exp = "-", -exp
		}
		out = digits[:1] + "." + frac + "E" + sign + strconv.Itoa(exp)
	case exp < 0:
		out = "0." + strings.Repeat("0", -exp-1) + digits
	case len(digits) <= exp+1:
		out = digits + strings.Repeat("0", exp+1-len(digits))
	default:
		out = digits[:exp+1] + "." + digits[exp+1:]
	}
	if neg {
		out = "-" + out
	}
	return out
}
