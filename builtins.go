package afed

// Assoc is the associativity of a binary operator.
type Assoc uint8

const (
	// LeftAssoc groups a~b~c as (a~b)~c.
	LeftAssoc Assoc = iota
	// RightAssoc groups a~b~c as a~(b~c).
	RightAssoc
)

// ArithFunc computes a builtin operator or function's result. Per
// component A, the builtins in this registry never return an error:
// division by a rational zero and similar degeneracies are expressed as
// sentinel infinities or NaN reals. The error return exists for
// component C's try_eval contract, which must be able to place a code
// block in the failed-literal state when some future or user-supplied
// ArithFunc does fail.
type ArithFunc func(args []Scalar) (Scalar, error)

// Operator is a symbolic unary or binary builtin, e.g. "+" or "^".
type Operator struct {
	Symbol string
	Prec   int
	Assoc  Assoc
	Unary  bool
	Fn     ArithFunc
}

// priority encodes an operator's displacement priority for the
// Shunting Yard, per component D: (prec<<1)|(1 if left-associative).
func (o *Operator) priority() int {
	p := o.Prec << 1
	if o.Assoc == LeftAssoc {
		p |= 1
	}
	return p
}

// Named is an alphanumeric builtin function or constant. A Named with
// Arity==0 is a constant: its Fn ignores its (empty) argument slice.
type Named struct {
	Name  string
	Arity int
	Fn    ArithFunc
}

// builtinOperators is the canonical operator table, ordered and valued
// exactly as the source's builtin_opers.
var builtinOperators = []*Operator{
	{Symbol: "-", Prec: 100, Assoc: LeftAssoc, Unary: true, Fn: unary(Scalar.Neg)},
	{Symbol: "+", Prec: 64, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.Add)},
	{Symbol: "-", Prec: 64, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.Sub)},
	{Symbol: "*", Prec: 96, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.Mul)},
	{Symbol: "/", Prec: 96, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.Div)},
	{Symbol: "//", Prec: 96, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.FloorDiv)},
	{Symbol: "%", Prec: 96, Assoc: LeftAssoc, Unary: false, Fn: binary(Scalar.Mod)},
	{Symbol: "^", Prec: 112, Assoc: RightAssoc, Unary: false, Fn: binary(Scalar.Pow)},
}

// builtinNamed is the canonical named-function and named-constant table,
// ordered and valued exactly as the source's builtins.
var builtinNamed = []*Named{
	{Name: "abs", Arity: 1, Fn: unary(Scalar.Abs)},
	{Name: "floor", Arity: 1, Fn: unary(Scalar.Floor)},
	{Name: "ceil", Arity: 1, Fn: unary(Scalar.Ceil)},
	{Name: "sqrt", Arity: 1, Fn: unary(Scalar.Sqrt)},
	{Name: "log", Arity: 2, Fn: binary(Scalar.Log)},
	{Name: "ln", Arity: 1, Fn: unary(Scalar.Ln)},
	{Name: "sin", Arity: 1, Fn: unary(Scalar.Sin)},
	{Name: "cos", Arity: 1, Fn: unary(Scalar.Cos)},
	{Name: "tan", Arity: 1, Fn: unary(Scalar.Tan)},
	{Name: "pi", Arity: 0, Fn: func(a []Scalar) (Scalar, error) { return PiScalar(), nil }},
	{Name: "e", Arity: 0, Fn: func(a []Scalar) (Scalar, error) { return EScalar(), nil }},
}

// unary and binary lift plain Scalar methods into ArithFuncs.
func unary(f func(Scalar) Scalar) ArithFunc {
	return func(a []Scalar) (Scalar, error) { return f(a[0]), nil }
}

func binary(f func(Scalar, Scalar) Scalar) ArithFunc {
	return func(a []Scalar) (Scalar, error) { return f(a[0], a[1]), nil }
}

var (
	unaryTree   ptree
	binaryTree  ptree
	namedByName map[string]*Named
)

// Building both operator tries once at init, rather than lazily on
// first parse as the source does, is a deliberate deviation recorded in
// the design notes: the lazy-static pattern is a C concession that
// buys nothing in a language with ordered package initialization.
func init() {
	for _, op := range builtinOperators {
		if op.Unary {
			unaryTree.put(op.Symbol, op)
		} else {
			binaryTree.put(op.Symbol, op)
		}
	}
	namedByName = make(map[string]*Named, len(builtinNamed))
	for _, nm := range builtinNamed {
		namedByName[nm.Name] = nm
	}
}

// lookupOperator finds the longest-prefix operator match for str in the
// unary or binary table depending on isUnary.
func lookupOperator(str string, isUnary bool) (op *Operator, n int) {
	tree := &binaryTree
	if isUnary {
		tree = &unaryTree
	}
	target, n := tree.get(str)
	if target == nil {
		return nil, 0
	}
	return target.(*Operator), n
}

// lookupNamed finds a named builtin function or constant by exact name.
func lookupNamed(name string) (*Named, bool) {
	nm, ok := namedByName[name]
	return nm, ok
}
