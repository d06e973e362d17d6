package gofilter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Frequency response
// ============================================================

// Sample is H evaluated at z = (cos θ, sin θ). Phase uses the Polar
// convention, so it is measured from the imaginary axis.
type Sample struct {
	Theta     float64 `json:"theta"`
	Magnitude float64 `json:"magnitude"`
	Phase     float64 `json:"phase"`
}

// MarshalJSON writes non-finite values as null; encoding/json rejects them.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"theta":     jsonFloat(s.Theta),
		"magnitude": jsonFloat(s.Magnitude),
		"phase":     jsonFloat(s.Phase),
	})
}

func jsonFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// Split separates numerator (x) terms from denominator (y) terms.
func Split(terms []Term) (num, den []Term) {
	for _, t := range terms {
		if t.Kind == X {
			num = append(num, t)
		} else {
			den = append(den, t)
		}
	}
	return num, den
}

// Evaluate returns H(z) = Σ a·z^offset over x terms divided by the same sum
// over y terms. An empty numerator sums to zero.
func Evaluate(terms []Term, z Complex) Complex {
	num, den := Split(terms)
	return polyAt(num, z).Div(polyAt(den, z))
}

func polyAt(terms []Term, z Complex) Complex {
	acc := C(0, 0)
	for _, t := range terms {
		acc = acc.Add(C(t.Coefficient, 0).Mul(z.PowInt(t.Offset)))
	}
	return acc
}

// Response samples H at n evenly spaced angles θ = i/n·π, i in [0, n).
func Response(terms []Term, n int) ([]Sample, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	for _, t := range terms {
		if t.Offset > MaxExponent || t.Offset < -MaxExponent {
			return nil, newError(KindUnsupportedExponent, "offset %d exceeds %d", t.Offset, MaxExponent)
		}
	}
	out := make([]Sample, n)
	for i := range out {
		theta := float64(i) / float64(n) * math.Pi
		r, phi := Evaluate(terms, C(math.Cos(theta), math.Sin(theta))).Polar()
		out[i] = Sample{Theta: theta, Magnitude: r, Phase: phi}
	}
	return out, nil
}

// ============================================================
// Display
// ============================================================

// FormatPolynomial writes terms as a polynomial in z with the highest
// offset first, e.g. "4z - 2".
func FormatPolynomial(terms []Term) string { return formatPoly(terms, false) }

func formatPoly(terms []Term, latex bool) string {
	sorted := append([]Term(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	var sb strings.Builder
	for i, t := range sorted {
		switch {
		case i == 0 && t.Coefficient < 0:
			sb.WriteString("-")
		case i > 0 && t.Coefficient < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		a := math.Abs(t.Coefficient)
		if a != 1 {
			sb.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		} else if t.Offset == 0 {
			sb.WriteString("1")
		}
		if t.Offset != 0 {
			sb.WriteString("z")
			switch {
			case t.Offset == 1:
			case latex:
				sb.WriteString("^{" + strconv.Itoa(t.Offset) + "}")
			default:
				sb.WriteString("^" + strconv.Itoa(t.Offset))
			}
		}
	}
	return sb.String()
}

// TransferFunction renders H(z) as "H(z) = (num) / (den)". An empty
// numerator is written as 1.
func TransferFunction(terms []Term) string {
	num, den := Split(terms)
	n := "1"
	if len(num) > 0 {
		n = FormatPolynomial(num)
	}
	return fmt.Sprintf("H(z) = (%s) / (%s)", n, FormatPolynomial(den))
}

// TransferFunctionLaTeX is TransferFunction as a LaTeX fraction.
func TransferFunctionLaTeX(terms []Term) string {
	num, den := Split(terms)
	n := "1"
	if len(num) > 0 {
		n = formatPoly(num, true)
	}
	return fmt.Sprintf("H(z) = \\frac{%s}{%s}", n, formatPoly(den, true))
}
