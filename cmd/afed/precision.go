package main

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/TannerReese/afed"
	"github.com/zephyrtronium/bigfloat"
)

// precisionPrec is the working precision, in bits, for the
// arbitrary-precision side of the cross-check: comfortably beyond
// float64's 53-bit mantissa.
const precisionPrec = 256

// precisionCase is one entry in the -p/--precision-check battery: a
// builtin name, the float64 result the engine's registry produces, and
// the inputs needed to recompute it at high precision.
type precisionCase struct {
	name    string
	args    []float64
	fast    func(args []float64) float64
	precise func(args []*big.Float) *big.Float
}

// precisionBattery lists representative evaluations of every afed
// builtin bigfloat can recompute independently: sqrt, ln, log, and pow
// with a non-integer exponent. sin/cos/tan are excluded because
// bigfloat exposes no trigonometric primitive to check against, the
// same boundary the teacher's own funcs.go documents by leaving those
// table entries nil.
var precisionBattery = []precisionCase{
	{"sqrt", []float64{2}, func(a []float64) float64 { return afed.Float(a[0]).Sqrt().Val },
		func(a []*big.Float) *big.Float { return new(big.Float).SetPrec(precisionPrec).Sqrt(a[0]) }},
	{"sqrt", []float64{1234.5}, func(a []float64) float64 { return afed.Float(a[0]).Sqrt().Val },
		func(a []*big.Float) *big.Float { return new(big.Float).SetPrec(precisionPrec).Sqrt(a[0]) }},
	{"ln", []float64{2}, func(a []float64) float64 { return afed.Float(a[0]).Ln().Val },
		func(a []*big.Float) *big.Float { return bigfloat.Log(new(big.Float).SetPrec(precisionPrec), a[0]) }},
	{"ln", []float64{0.001}, func(a []float64) float64 { return afed.Float(a[0]).Ln().Val },
		func(a []*big.Float) *big.Float { return bigfloat.Log(new(big.Float).SetPrec(precisionPrec), a[0]) }},
	{"log", []float64{8, 2}, func(a []float64) float64 { return afed.Float(a[0]).Log(afed.Float(a[1])).Val },
		func(a []*big.Float) *big.Float {
			num := bigfloat.Log(new(big.Float).SetPrec(precisionPrec), a[0])
			den := bigfloat.Log(new(big.Float).SetPrec(precisionPrec), a[1])
			return new(big.Float).SetPrec(precisionPrec).Quo(num, den)
		}},
	{"^", []float64{2, 0.5}, func(a []float64) float64 { return afed.Float(a[0]).Pow(afed.Float(a[1])).Val },
		func(a []*big.Float) *big.Float { return bigfloat.Pow(new(big.Float).SetPrec(precisionPrec), a[0], a[1]) }},
	{"^", []float64{3, 1.0 / 3.0}, func(a []float64) float64 { return afed.Float(a[0]).Pow(afed.Float(a[1])).Val },
		func(a []*big.Float) *big.Float { return bigfloat.Pow(new(big.Float).SetPrec(precisionPrec), a[0], a[1]) }},
}

// checkPrecision runs the precision battery and logs any case where
// the engine's float64 result diverges from the arbitrary-precision
// one by more than a relative tolerance of 1e-12.
func checkPrecision(w io.Writer) {
	if w == nil {
		return
	}
	const tolerance = 1e-12
	for _, c := range precisionBattery {
		bigArgs := make([]*big.Float, len(c.args))
		for i, a := range c.args {
			bigArgs[i] = new(big.Float).SetPrec(precisionPrec).SetFloat64(a)
		}
		fast := c.fast(c.args)
		precise, _ := c.precise(bigArgs).Float64()

		diff := math.Abs(fast - precise)
		scale := math.Max(math.Abs(precise), 1)
		if diff/scale > tolerance {
			fmt.Fprintf(w, "precision-check: %s%v: float64=%.17g arbitrary-precision=%.17g\n", c.name, c.args, fast, precise)
		}
	}
}
