package afed

import (
	"fmt"
	"math"
	"strconv"
)

// ScalarKind distinguishes the two cases of Scalar.
type ScalarKind uint8

const (
	// Rational holds an exact num/den pair.
	Rational ScalarKind = iota
	// Real holds an IEEE-754 double.
	Real
)

// Scalar is the arithmetic value of the engine: a tagged union of an
// exact rational and a floating point real, per the promotion rules in
// component A. The zero Scalar is the Rational 0/1.
//
// Invariants for Rational: when Num==0, Den==1; Den==0 encodes a
// signed infinity with Num in {-1, +1}; otherwise gcd(|Num|, Den) == 1.
type Scalar struct {
	Kind ScalarKind
	Num  int64
	Den  uint64
	Val  float64
}

// Int returns the Rational scalar n/1.
func Int(n int64) Scalar { return Scalar{Kind: Rational, Num: n, Den: 1} }

// Ratio returns the normalized Rational scalar num/den.
func Ratio(num int64, den uint64) Scalar {
	s := Scalar{Kind: Rational, Num: num, Den: den}
	s.simplify()
	return s
}

// Float returns the Real scalar with the given value.
func Float(v float64) Scalar { return Scalar{Kind: Real, Val: v} }

func (s *Scalar) simplify() {
	if s.Kind != Rational {
		return
	}
	if s.Num == 0 {
		s.Den = 1
		return
	}
	if s.Den == 0 {
		if s.Num < 0 {
			s.Num = -1
		} else {
			s.Num = 1
		}
		return
	}

	var a, b uint64 = absi64(s.Num), s.Den
	if a > b {
		a, b = b, a
	}
	for a > 0 {
		a, b = b%a, a
	}
	s.Num /= int64(b)
	s.Den /= b
}

func absi64(n int64) uint64 {
	if n < 0 {
		return uint64(-n)
	}
	return uint64(n)
}

// toReal converts a Scalar to its float64 approximation, used whenever a
// binary op promotes to Real.
func (s Scalar) toReal() float64 {
	if s.Kind == Real {
		return s.Val
	}
	if s.Den == 0 {
		if s.Num < 0 {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return float64(s.Num) / float64(s.Den)
}

// ParseScalar parses a leading numeric literal from str, trying integer
// then decimal real and keeping whichever consumes more input, per
// component A's contract. It returns the parsed value and the number of
// bytes consumed; n==0 means no literal was found at the start of str.
func ParseScalar(str string) (val Scalar, n int) {
	_, iEnd := scanInt(str)
	fEnd := scanFloat(str)

	var iv int64
	var iok bool
	if iEnd > 0 {
		if v, err := strconv.ParseInt(str[:iEnd], 10, 64); err == nil {
			iv, iok = v, true
		}
	}
	var fv float64
	var fok bool
	if fEnd > 0 {
		if v, err := strconv.ParseFloat(str[:fEnd], 64); err == nil {
			fv, fok = v, true
		}
	}

	switch {
	case iok && fok:
		if fv == float64(iv) && iEnd >= fEnd {
			return Int(iv), iEnd
		}
		return Float(fv), fEnd
	case iok:
		return Int(iv), iEnd
	case fok:
		return Float(fv), fEnd
	default:
		return Scalar{}, 0
	}
}

// scanInt scans a run of decimal digits with an optional leading sign,
// returning the parsed prefix length. It does not itself parse the
// value; strconv does that once we know the extent of the match.
func scanInt(str string) (matched bool, n int) {
	i := 0
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	start := i
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}
	if i == start {
		return false, 0
	}
	return true, i
}

// scanFloat scans the longest prefix of str that strconv.ParseFloat can
// parse as a decimal (no hex floats, no inf/nan words: those are not
// part of the literal grammar in component F).
func scanFloat(str string) int {
	i := 0
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
		digitsBefore++
	}
	digitsAfter := 0
	if i < len(str) && str[i] == '.' {
		j := i + 1
		for j < len(str) && str[j] >= '0' && str[j] <= '9' {
			j++
			digitsAfter++
		}
		if digitsAfter > 0 {
			i = j
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return 0
	}
	mantEnd := i
	// Optional exponent.
	if i < len(str) && (str[i] == 'e' || str[i] == 'E') {
		j := i + 1
		if j < len(str) && (str[j] == '+' || str[j] == '-') {
			j++
		}
		k := j
		for k < len(str) && str[k] >= '0' && str[k] <= '9' {
			k++
		}
		if k > j {
			return k
		}
	}
	return mantEnd
}

// String prints the scalar per component A: rationals as "n" when
// Den==1, "n / d" otherwise (including the "1 / 0" infinity form), reals
// with %g-like default formatting.
func (s Scalar) String() string {
	switch s.Kind {
	case Real:
		return strconv.FormatFloat(s.Val, 'g', -1, 64)
	default:
		if s.Den == 1 {
			return strconv.FormatInt(s.Num, 10)
		}
		return fmt.Sprintf("%d / %d", s.Num, s.Den)
	}
}

// Equal implements the scalar equality relation used for constant pool
// deduplication and the algebraic law tests: same kind and equal
// value. Reals compare with ==, except that any two NaNs are equal.
func (s Scalar) Equal(o Scalar) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == Real {
		return s.Val == o.Val || (math.IsNaN(s.Val) && math.IsNaN(o.Val))
	}
	return s.Num == o.Num && s.Den == o.Den
}

func bothKinds(a, b ScalarKind) int { return int(a)<<1 | int(b) }

var (
	rr = bothKinds(Real, Real)
	rq = bothKinds(Real, Rational)
	qr = bothKinds(Rational, Real)
	qq = bothKinds(Rational, Rational)
)

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	if s.Kind == Real {
		return Float(-s.Val)
	}
	return Ratio(-s.Num, s.Den)
}

// Add returns a+b, per the promotion rule in component A.
func (a Scalar) Add(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(a.Val + b.Val)
	case rq:
		return Float(a.Val + b.toReal())
	case qr:
		return Float(a.toReal() + b.Val)
	default:
		num := a.Num*int64(b.Den) + b.Num*int64(a.Den)
		den := a.Den * b.Den
		return Ratio(num, den)
	}
}

// Sub returns a-b.
func (a Scalar) Sub(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(a.Val - b.Val)
	case rq:
		return Float(a.Val - b.toReal())
	case qr:
		return Float(a.toReal() - b.Val)
	default:
		num := a.Num*int64(b.Den) - b.Num*int64(a.Den)
		den := a.Den * b.Den
		return Ratio(num, den)
	}
}

// Mul returns a*b.
func (a Scalar) Mul(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(a.Val * b.Val)
	case rq:
		return Float(a.Val * b.toReal())
	case qr:
		return Float(a.toReal() * b.Val)
	default:
		return Ratio(a.Num*b.Num, a.Den*b.Den)
	}
}

// Div returns a/b. Rational division by zero yields the sentinel
// infinity, per component A and the resolved den=0 open question.
func (a Scalar) Div(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(a.Val / b.Val)
	case rq:
		return Float(a.Val / b.toReal())
	case qr:
		return Float(a.toReal() / b.Val)
	default:
		num := a.Num * int64(b.Den)
		var den uint64
		if b.Num < 0 {
			num = -num
			den = a.Den * uint64(-b.Num)
		} else {
			den = a.Den * uint64(b.Num)
		}
		return Ratio(num, den)
	}
}

// FloorDiv returns floor(a/b), always as a Rational with Den==1.
func (a Scalar) FloorDiv(b Scalar) Scalar {
	var n int64
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		n = int64(math.Floor(a.Val / b.Val))
	case rq:
		n = int64(math.Floor(a.Val / b.toReal()))
	case qr:
		n = int64(math.Floor(float64(a.Num) / (b.Val * float64(a.Den))))
	default:
		n = int64(math.Floor(float64(a.Num) * float64(b.Den) / float64(a.Den) / float64(b.Num)))
	}
	return Scalar{Kind: Rational, Num: n, Den: 1}
}

// Mod returns a mod b with the sign of b, or fmod(a,b) for reals. A
// modulus of Rational infinity leaves a finite dividend unchanged,
// resolving the den=0 open question for this operator.
func (a Scalar) Mod(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(math.Mod(a.Val, b.Val))
	case rq:
		return Float(math.Mod(a.Val, b.toReal()))
	case qr:
		return Float(math.Mod(a.toReal(), b.Val))
	default:
		if b.Den == 0 {
			return a
		}
		num := a.Num * int64(b.Den)
		mod := b.Num * int64(a.Den)
		if mod != 0 {
			num %= mod
			if num != 0 && (num < 0) != (mod < 0) {
				num += mod
			}
		}
		den := a.Den * b.Den
		return Ratio(num, den)
	}
}

func intPow(base Scalar, pow int64) Scalar {
	numStep, denStep := base.Num, base.Den
	var numPow int64 = 1
	var denPow uint64 = 1

	neg := pow < 0
	if neg {
		pow = -pow
		if base.Num < 0 {
			numStep = -int64(base.Den)
			denStep = absi64(base.Num)
		} else {
			numStep = int64(base.Den)
			denStep = uint64(base.Num)
		}
	}

	for pow > 0 {
		if pow&1 != 0 {
			numPow *= numStep
			denPow *= denStep
		}
		numStep *= numStep
		denStep *= denStep
		pow >>= 1
	}
	return Ratio(numPow, denPow)
}

// Pow returns a^b. An integer rational exponent stays Rational via fast
// exponentiation (including negative exponents); anything else demotes
// to Real.
func (a Scalar) Pow(b Scalar) Scalar {
	switch bothKinds(a.Kind, b.Kind) {
	case rr:
		return Float(math.Pow(a.Val, b.Val))
	case rq:
		return Float(math.Pow(a.Val, b.toReal()))
	case qr:
		return Float(math.Pow(a.toReal(), b.Val))
	default:
		if b.Den == 1 {
			return intPow(a, b.Num)
		}
		return Float(math.Pow(a.toReal(), b.toReal()))
	}
}

// Abs returns |s|.
func (s Scalar) Abs() Scalar {
	if s.Kind == Real {
		return Float(math.Abs(s.Val))
	}
	if s.Num < 0 {
		return Ratio(-s.Num, s.Den)
	}
	return s
}

// Floor returns floor(s) as a Rational with Den==1.
func (s Scalar) Floor() Scalar {
	if s.Kind == Real {
		return Scalar{Kind: Rational, Num: int64(math.Floor(s.Val)), Den: 1}
	}
	return Scalar{Kind: Rational, Num: int64(math.Floor(s.toReal())), Den: 1}
}

// Ceil returns ceil(s) as a Rational with Den==1.
func (s Scalar) Ceil() Scalar {
	if s.Kind == Real {
		return Scalar{Kind: Rational, Num: int64(math.Ceil(s.Val)), Den: 1}
	}
	return Scalar{Kind: Rational, Num: int64(math.Ceil(s.toReal())), Den: 1}
}

// Sqrt, Log, Ln, Sin, Cos, Tan always demote to Real: no rational is
// closed under these operations in general.
func (s Scalar) Sqrt() Scalar { return Float(math.Sqrt(s.toReal())) }

func (a Scalar) Log(base Scalar) Scalar {
	return Float(math.Log(a.toReal()) / math.Log(base.toReal()))
}

func (s Scalar) Ln() Scalar  { return Float(math.Log(s.toReal())) }
func (s Scalar) Sin() Scalar { return Float(math.Sin(s.toReal())) }
func (s Scalar) Cos() Scalar { return Float(math.Cos(s.toReal())) }
func (s Scalar) Tan() Scalar { return Float(math.Tan(s.toReal())) }

// PiScalar and EScalar back the zero-arity builtins "pi" and "e".
func PiScalar() Scalar { return Float(3.14159265358979323846) }
func EScalar() Scalar  { return Float(2.71828182845904523536) }
