package gofilter

import "math"

// ============================================================
// Normalization — display heuristic
// ============================================================

// Normalize re-centres the offsets around n by ceil((max-min)/2) and scales
// coefficients by the lcm of their inverses (and of the coefficients above
// one) when at least two coefficients are below one in magnitude. It only
// changes how the transfer function is written, not the filter. Unrelated
// fractions can still leave non-integer coefficients.
func Normalize(terms []Term) []Term {
	if len(terms) == 0 {
		return nil
	}
	minOffset, maxOffset := terms[0].Offset, terms[0].Offset
	for _, t := range terms[1:] {
		if t.Offset < minOffset {
			minOffset = t.Offset
		}
		if t.Offset > maxOffset {
			maxOffset = t.Offset
		}
	}
	shift := int(math.Ceil(float64(maxOffset-minOffset) / 2))

	var inverse, whole []float64
	for _, t := range terms {
		if inv := 1 / math.Abs(t.Coefficient); inv > 1 {
			inverse = append(inverse, inv)
		}
	}
	for _, t := range terms {
		if a := math.Abs(t.Coefficient); a > 1 {
			whole = append(whole, a)
		}
	}
	scale := 1.0
	if len(inverse) >= 2 {
		all := append(inverse, whole...)
		scale = all[0]
		for _, v := range all[1:] {
			scale = lcm(scale, v)
		}
	}

	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = Term{Kind: t.Kind, Coefficient: t.Coefficient * scale, Offset: t.Offset + shift}
	}
	return out
}

// gcd is Euclid's algorithm on floats; a NaN remainder ends it like zero.
func gcd(a, b float64) float64 {
	for b != 0 && !math.IsNaN(b) {
		a, b = b, math.Mod(a, b)
	}
	return a
}

func lcm(a, b float64) float64 { return a * b / gcd(a, b) }
