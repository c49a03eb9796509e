package afed_test

import (
	"math"
	"testing"

	"github.com/TannerReese/afed"
)

func TestScalarArith(t *testing.T) {
	cases := []struct {
		name string
		got  afed.Scalar
		want afed.Scalar
	}{
		{"add-rational", afed.Int(2).Add(afed.Int(3)), afed.Int(5)},
		{"add-mixed", afed.Int(2).Add(afed.Float(0.5)), afed.Float(2.5)},
		{"sub-rational", afed.Int(7).Sub(afed.Int(9)), afed.Int(-2)},
		{"mul-ratio", afed.Ratio(1, 2).Mul(afed.Ratio(2, 3)), afed.Ratio(1, 3)},
		{"div-ratio", afed.Ratio(1, 2).Div(afed.Ratio(1, 4)), afed.Int(2)},
		{"floordiv", afed.Int(7).FloorDiv(afed.Int(2)), afed.Int(3)},
		{"floordiv-neg", afed.Int(-7).FloorDiv(afed.Int(2)), afed.Int(-4)},
		{"mod", afed.Int(7).Mod(afed.Int(3)), afed.Int(1)},
		{"pow-int", afed.Int(2).Pow(afed.Int(10)), afed.Int(1024)},
		{"pow-neg-int", afed.Int(2).Pow(afed.Int(-1)), afed.Ratio(1, 2)},
		{"abs", afed.Int(-5).Abs(), afed.Int(5)},
		{"neg-ratio", afed.Ratio(3, 4).Neg(), afed.Ratio(-3, 4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !c.got.Equal(c.want) {
				t.Errorf("got %s, want %s", c.got, c.want)
			}
		})
	}
}

func TestScalarSimplify(t *testing.T) {
	cases := []struct {
		num  int64
		den  uint64
		want string
	}{
		{4, 8, "1 / 2"},
		{0, 5, "0"},
		{-3, 6, "-1 / 2"},
		{5, 1, "5"},
	}
	for _, c := range cases {
		got := afed.Ratio(c.num, c.den).String()
		if got != c.want {
			t.Errorf("Ratio(%d,%d) = %q, want %q", c.num, c.den, got, c.want)
		}
	}
}

func TestScalarDenZeroInfinity(t *testing.T) {
	inf := afed.Ratio(1, 0)
	if inf.String() != "1 / 0" {
		t.Fatalf("expected sentinel infinity, got %s", inf.String())
	}
	// Infinity times a finite non-zero rational stays infinite.
	prod := inf.Mul(afed.Int(3))
	if prod.Den != 0 {
		t.Errorf("infinity * finite should stay infinite, got %s", prod)
	}
	// Infinity times zero collapses to zero, per simplify's renormalization.
	zeroed := inf.Mul(afed.Int(0))
	if !zeroed.Equal(afed.Int(0)) {
		t.Errorf("infinity * 0 should collapse to 0, got %s", zeroed)
	}
	// Mod by infinity leaves a finite dividend unchanged.
	modded := afed.Int(5).Mod(inf)
	if !modded.Equal(afed.Int(5)) {
		t.Errorf("5 mod infinity should be 5, got %s", modded)
	}
}

func TestParseScalar(t *testing.T) {
	cases := []struct {
		in       string
		wantN    int
		wantKind afed.ScalarKind
	}{
		{"123abc", 3, afed.Rational},
		{"1.5x", 3, afed.Real},
		{"1e10", 4, afed.Real},
		{"abc", 0, afed.Rational},
	}
	for _, c := range cases {
		v, n := afed.ParseScalar(c.in)
		if n != c.wantN {
			t.Errorf("ParseScalar(%q) consumed %d, want %d", c.in, n, c.wantN)
			continue
		}
		if n > 0 && v.Kind != c.wantKind {
			t.Errorf("ParseScalar(%q) kind = %v, want %v", c.in, v.Kind, c.wantKind)
		}
	}
}

func TestScalarString(t *testing.T) {
	if got := afed.Float(math.Pi).String(); got == "" {
		t.Fatal("expected non-empty real formatting")
	}
	if got := afed.Int(42).String(); got != "42" {
		t.Errorf("Int(42).String() = %q, want 42", got)
	}
}
