package gofilter_test

import (
	"errors"
	"math"
	"testing"

	gofilter "github.com/njchilds90/gofilter"
)

const eps = 1e-12

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// ============================================================
// Arithmetic
// ============================================================

func TestComplex_Mul(t *testing.T) {
	got := gofilter.C(1, 2).Mul(gofilter.C(3, -1))
	if got != gofilter.C(5, 5) {
		t.Errorf("want (5 + 5i), got %s", got)
	}
}

func TestComplex_Div(t *testing.T) {
	got := gofilter.C(5, 5).Div(gofilter.C(3, -1))
	if !near(got.Re, 1) || !near(got.Im, 2) {
		t.Errorf("want (1 + 2i), got %s", got)
	}
}

func TestComplex_DivByZero(t *testing.T) {
	got := gofilter.C(1, 0).Div(gofilter.C(0, 0))
	if got.IsFinite() {
		t.Errorf("dividing by zero should not be finite, got %s", got)
	}
}

func TestComplex_String(t *testing.T) {
	if s := gofilter.C(1.5, -2).String(); s != "(1.5 - 2i)" {
		t.Errorf("want (1.5 - 2i), got %s", s)
	}
	if s := gofilter.C(0, 1).String(); s != "(0 + 1i)" {
		t.Errorf("want (0 + 1i), got %s", s)
	}
}

// ============================================================
// Polar convention
// ============================================================

func TestComplex_Polar_AngleFromImaginaryAxis(t *testing.T) {
	r, theta := gofilter.C(0, 1).Polar()
	if r != 1 || theta != 0 {
		t.Errorf("i: want (1, 0), got (%g, %g)", r, theta)
	}
	r, theta = gofilter.C(1, 0).Polar()
	if r != 1 || !near(theta, math.Pi/2) {
		t.Errorf("1: want (1, pi/2), got (%g, %g)", r, theta)
	}
}

func TestComplex_Abs(t *testing.T) {
	if a := gofilter.C(3, 4).Abs(); a != 5 {
		t.Errorf("want 5, got %g", a)
	}
}

// ============================================================
// Pow
// ============================================================

func TestComplex_Pow_SequentialMul(t *testing.T) {
	z := gofilter.C(1.5, -0.5)
	want := z
	for k := 1; k <= 6; k++ {
		got, err := z.Pow(gofilter.C(float64(k), 0))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("k=%d: want %s, got %s", k, want, got)
		}
		want = want.Mul(z)
	}
}

func TestComplex_Pow_SequentialDiv(t *testing.T) {
	z := gofilter.C(0.3, 0.7)
	want := gofilter.C(1, 0)
	for k := -1; k >= -5; k-- {
		want = want.Div(z)
		if got := z.PowInt(k); got != want {
			t.Errorf("k=%d: want %s, got %s", k, want, got)
		}
	}
}

func TestComplex_Pow_Zero(t *testing.T) {
	for _, z := range []gofilter.Complex{gofilter.C(0, 0), gofilter.C(-3, 2), gofilter.C(1e10, 0)} {
		got, err := z.Pow(gofilter.C(0, 0))
		if err != nil {
			t.Fatal(err)
		}
		if got != gofilter.C(1, 0) {
			t.Errorf("%s^0: want (1 + 0i), got %s", z, got)
		}
	}
}

func TestComplex_Pow_Unsupported(t *testing.T) {
	z := gofilter.C(2, 0)
	for _, b := range []gofilter.Complex{
		gofilter.C(0.5, 0),
		gofilter.C(2, 1),
		gofilter.C(math.Inf(1), 0),
		gofilter.C(math.NaN(), 0),
		gofilter.C(1e12, 0),
		gofilter.C(-gofilter.MaxExponent - 1, 0),
	} {
		if _, err := z.Pow(b); !errors.Is(err, gofilter.ErrUnsupportedExponent) {
			t.Errorf("exponent %s: want UnsupportedExponent, got %v", b, err)
		}
	}
}

func TestComplex_Pow_AtLimit(t *testing.T) {
	got, err := gofilter.C(1, 0).Pow(gofilter.C(gofilter.MaxExponent, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got != gofilter.C(1, 0) {
		t.Errorf("want (1 + 0i), got %s", got)
	}
}

// ============================================================
// Transcendental
// ============================================================

func TestComplex_ExpLn(t *testing.T) {
	got := gofilter.C(0, math.Pi).Exp()
	if !near(got.Re, -1) || !near(got.Im, 0) {
		t.Errorf("exp(i pi): want (-1 + 0i), got %s", got)
	}
	ln := gofilter.C(math.E, 0).Ln()
	if !near(ln.Re, 1) {
		t.Errorf("ln(e): want real part 1, got %s", ln)
	}
}

func TestComplex_SinCosTan(t *testing.T) {
	z := gofilter.C(0.4, 0.3)
	s, c := z.Sin(), z.Cos()
	one := s.Mul(s).Add(c.Mul(c))
	if !near(one.Re, 1) || !near(one.Im, 0) {
		t.Errorf("sin^2 + cos^2: want 1, got %s", one)
	}
	tan, ratio := z.Tan(), s.Div(c)
	if !near(tan.Re, ratio.Re) || !near(tan.Im, ratio.Im) {
		t.Errorf("tan: want %s, got %s", ratio, tan)
	}
}
