package gofilter

import (
	"fmt"
	"math"
)

// ============================================================
// Complex — immutable complex value
// ============================================================

// Complex is a plain (re, im) pair. It is used instead of complex128 because
// division, the polar angle and integer powers must follow the exact
// formulas below; the math/cmplx versions round differently.
type Complex struct{ Re, Im float64 }

// MaxExponent bounds |k| in Pow; larger exponents are UnsupportedExponent.
const MaxExponent = 1 << 16

// C builds re + im·i.
func C(re, im float64) Complex { return Complex{Re: re, Im: im} }

func (a Complex) Add(b Complex) Complex { return Complex{a.Re + b.Re, a.Im + b.Im} }
func (a Complex) Sub(b Complex) Complex { return Complex{a.Re - b.Re, a.Im - b.Im} }
func (a Complex) Mul(b Complex) Complex {
	return Complex{a.Re*b.Re - a.Im*b.Im, a.Re*b.Im + a.Im*b.Re}
}

// Div divides without checking b; a zero divisor yields NaN or Inf parts.
func (a Complex) Div(b Complex) Complex {
	d := b.Re*b.Re + b.Im*b.Im
	return Complex{(a.Re*b.Re + a.Im*b.Im) / d, (a.Im*b.Re - a.Re*b.Im) / d}
}

// Polar returns the radius and the angle atan2(re, im). The angle is measured
// from the imaginary axis; phase plots rely on that convention.
func (a Complex) Polar() (radius, angle float64) {
	return math.Sqrt(a.Re*a.Re + a.Im*a.Im), math.Atan2(a.Re, a.Im)
}

func (a Complex) Abs() float64 { r, _ := a.Polar(); return r }

// Exp returns e^a.
func (a Complex) Exp() Complex {
	m := math.Exp(a.Re)
	return Complex{m * math.Cos(a.Im), m * math.Sin(a.Im)}
}

// Ln is the principal logarithm under the Polar angle convention.
func (a Complex) Ln() Complex {
	r, theta := a.Polar()
	return Complex{math.Log(r), theta}
}

// Pow raises a to an exponent with zero imaginary part and an integral real
// part. Results are accumulated one multiplication (or division) at a time.
func (a Complex) Pow(b Complex) (Complex, error) {
	if b.Im != 0 || math.IsInf(b.Re, 0) || b.Re != math.Trunc(b.Re) {
		return Complex{}, newError(KindUnsupportedExponent, "only real integer exponents supported, got %s", b)
	}
	if math.Abs(b.Re) > MaxExponent {
		return Complex{}, newError(KindUnsupportedExponent, "exponent %g exceeds %d", b.Re, MaxExponent)
	}
	return a.PowInt(int(b.Re)), nil
}

// PowInt is Pow for an exponent already known to be an integer. It does not
// check MaxExponent; callers bound k.
func (a Complex) PowInt(k int) Complex {
	switch {
	case k == 0:
		return Complex{1, 0}
	case k == 1:
		return a
	case k < 0:
		ret := Complex{1, 0}
		for i := 0; i < -k; i++ {
			ret = ret.Div(a)
		}
		return ret
	}
	ret := a
	for i := 1; i < k; i++ {
		ret = ret.Mul(a)
	}
	return ret
}

// Sin returns the complex sine.
func (a Complex) Sin() Complex {
	return Complex{math.Sin(a.Re) * math.Cosh(a.Im), math.Cos(a.Re) * math.Sinh(a.Im)}
}

// Cos returns the complex cosine.
func (a Complex) Cos() Complex {
	return Complex{math.Cos(a.Re) * math.Cosh(a.Im), -math.Sin(a.Re) * math.Sinh(a.Im)}
}

// Tan returns the complex tangent via the double-angle form.
func (a Complex) Tan() Complex {
	return Complex{math.Sin(2 * a.Re), math.Sinh(2 * a.Im)}.
		Div(Complex{math.Cos(2*a.Re) + math.Cosh(2*a.Im), 0})
}

// IsFinite reports whether neither part is NaN or infinite.
func (a Complex) IsFinite() bool {
	return !math.IsNaN(a.Re) && !math.IsNaN(a.Im) && !math.IsInf(a.Re, 0) && !math.IsInf(a.Im, 0)
}

func (a Complex) String() string {
	if a.Im < 0 || (a.Im == 0 && math.Signbit(a.Im)) {
		return fmt.Sprintf("(%g - %gi)", a.Re, -a.Im)
	}
	return fmt.Sprintf("(%g + %gi)", a.Re, a.Im)
}
