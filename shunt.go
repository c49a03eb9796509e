package afed

// tokClass is the "last-token class" tracked by the Shunting Yard state,
// per component D.
type tokClass uint8

const (
	tokParenth tokClass = iota
	tokComma
	tokFixity
	tokFuncBuiltin
	tokFuncUserCode
	tokValue
)

// yardKind tags an entry on the Shunting Yard's operator stack.
type yardKind uint8

const (
	yardParenth yardKind = iota
	yardComma
	yardFixity
	yardFuncBuiltin
	yardFuncUserCode
)

type yardEntry struct {
	kind     yardKind
	priority int
	arity    int
	unary    bool
	fn       ArithFunc
	block    *CodeBlock
}

// Shunt is the per-expression transient Shunting Yard state of
// component D: an operator stack that displaces onto a target Code
// Block as operators of decreasing priority are pushed, plus the class
// of the last token seen, used to reject malformed sequences like two
// adjacent values or an unbound function reference.
//
// The value stack itself is simply the target Code Block: operators
// apply directly to it rather than to a separate structure, matching
// the source's choice to use the Code Block as its own value stack.
type Shunt struct {
	block   *CodeBlock
	ops     []yardEntry
	last    tokClass
	tryEval bool
}

// NewShunt returns a Shunt state that appends into block. Starting in
// the Parenthesis token class costs nothing and allows a leading unary
// operator or opening parenthesis without special-casing the first
// token. tryEval controls whether every emitted call is offered to
// block's constant-folding peephole (component C's try_eval); passing
// false disables parse-time folding entirely; per Namespace's
// eval_on_parse setting.
func NewShunt(block *CodeBlock, tryEval bool) *Shunt {
	return &Shunt{block: block, last: tokParenth, tryEval: tryEval}
}

// LastWasValue reports whether the most recently accepted token was a
// value (including a completed call or parenthesized group).
func (y *Shunt) LastWasValue() bool { return y.last == tokValue }

// displaceFixity pops and applies Fixity operators with priority
// strictly greater than thresh, in the order the source describes:
// higher-priority operators closer to the top of the stack apply
// first. It stops at the first non-Fixity entry or one whose priority
// does not exceed thresh.
func (y *Shunt) displaceFixity(pos, thresh int) error {
	for len(y.ops) > 0 {
		top := y.ops[len(y.ops)-1]
		if top.kind != yardFixity || top.priority <= thresh {
			break
		}
		if !y.block.CallFunc(top.arity, top.fn, y.tryEval) {
			return newMissingValuesError(pos)
		}
		y.ops = y.ops[:len(y.ops)-1]
	}
	return nil
}

// OpenParenth handles a literal "(" token not attached to a preceding
// function or user-code reference.
func (y *Shunt) OpenParenth(pos int) error {
	if y.last == tokValue {
		// A value immediately followed by "(" has no joining operator.
		return newMissingOpersError(pos)
	}
	y.ops = append(y.ops, yardEntry{kind: yardParenth, priority: -1})
	y.last = tokParenth
	return nil
}

// CloseParenth handles a ")" token: it displaces pending operators,
// counts the arity implied by any commas since the matching "(", and,
// if a function sits below that "(", emits its call.
func (y *Shunt) CloseParenth(pos int) error {
	if y.last != tokValue {
		return newMissingValuesError(pos)
	}
	if err := y.displaceFixity(pos, -1); err != nil {
		return err
	}

	arity := 1
	i := len(y.ops) - 1
	for ; i >= 0 && y.ops[i].kind == yardComma; i-- {
		arity++
	}
	if i < 0 || y.ops[i].kind != yardParenth {
		y.ops = y.ops[:i+1]
		return newParenthMismatchError(pos)
	}
	i--

	if i >= 0 {
		switch y.ops[i].kind {
		case yardFuncUserCode:
			callee := y.ops[i].block
			callee.SetArity(arity)
			if arity != callee.GetArity() {
				y.ops = y.ops[:i]
				return newArityMismatchError(pos, "", callee.GetArity(), arity)
			}
			if !y.block.CallCode(callee) {
				y.ops = y.ops[:i]
				return newMissingValuesError(pos)
			}
			arity = 1
			i--
		case yardFuncBuiltin:
			want := y.ops[i].arity
			if arity != want {
				y.ops = y.ops[:i]
				return newArityMismatchError(pos, "", want, arity)
			}
			if !y.block.CallFunc(want, y.ops[i].fn, y.tryEval) {
				y.ops = y.ops[:i]
				return newMissingValuesError(pos)
			}
			arity = 1
			i--
		}
	}

	if arity > 1 {
		y.ops = y.ops[:i+1]
		return newBadCommaError(pos)
	}

	y.last = tokValue
	y.ops = y.ops[:i+1]
	return nil
}

// PutComma handles a "," token.
func (y *Shunt) PutComma(pos int) error {
	if y.last != tokValue {
		return newMissingValuesError(pos)
	}
	if err := y.displaceFixity(pos, -1); err != nil {
		return err
	}
	y.ops = append(y.ops, yardEntry{kind: yardComma, priority: -1})
	y.last = tokComma
	return nil
}

// Clear displaces any remaining Fixity operators at the end of parsing
// and fails if anything besides a fully resolved expression remains.
func (y *Shunt) Clear(pos int) error {
	if err := y.displaceFixity(pos, -1); err != nil {
		return err
	}
	if len(y.ops) == 0 {
		return nil
	}
	switch y.ops[len(y.ops)-1].kind {
	case yardParenth:
		return newParenthMismatchError(pos)
	case yardComma:
		return newBadCommaError(pos)
	default:
		return newFuncNoCallError(pos, "")
	}
}

// PutUnary pushes a prefix operator.
func (y *Shunt) PutUnary(pos int, fn ArithFunc, prec int, symbol string) error {
	if y.last == tokValue {
		return newMissingOpersError(pos)
	}
	if y.last == tokFuncBuiltin || y.last == tokFuncUserCode {
		return newFuncNoCallError(pos, symbol)
	}
	if len(y.ops) > 0 {
		top := y.ops[len(y.ops)-1]
		if top.kind == yardFixity && top.arity == 2 && top.priority&1 != 0 && top.priority > prec<<1 {
			return newLowPrecUnaryError(pos, symbol)
		}
	}
	y.ops = append(y.ops, yardEntry{kind: yardFixity, priority: prec<<1 | 1, arity: 1, unary: true, fn: fn})
	y.last = tokFixity
	return nil
}

// PutBinary pushes an infix operator, first displacing anything of
// higher-or-equal binding priority.
func (y *Shunt) PutBinary(pos int, fn ArithFunc, prec int, leftAssoc bool) error {
	if y.last != tokValue {
		return newMissingValuesError(pos)
	}
	if err := y.displaceFixity(pos, prec<<1); err != nil {
		return err
	}
	priority := prec << 1
	if leftAssoc {
		priority |= 1
	}
	y.ops = append(y.ops, yardEntry{kind: yardFixity, priority: priority, arity: 2, fn: fn})
	y.last = tokFixity
	return nil
}

func (y *Shunt) checkValueLike(pos int, name string) error {
	if y.last == tokFuncBuiltin || y.last == tokFuncUserCode {
		return newFuncNoCallError(pos, name)
	}
	if y.last == tokValue {
		return newMissingOpersError(pos)
	}
	return nil
}

// FuncCall pushes a reference to a builtin function awaiting its
// argument list.
func (y *Shunt) FuncCall(pos int, name string, arity int, fn ArithFunc) error {
	if err := y.checkValueLike(pos, name); err != nil {
		return err
	}
	y.ops = append(y.ops, yardEntry{kind: yardFuncBuiltin, priority: -1, arity: arity, fn: fn})
	y.last = tokFuncBuiltin
	return nil
}

// CodeCall pushes a reference to a user-defined function (a Code Block
// with nonzero arity) awaiting its argument list.
func (y *Shunt) CodeCall(pos int, name string, callee *CodeBlock) error {
	if err := y.checkValueLike(pos, name); err != nil {
		return err
	}
	if callee.GetArity() == 0 {
		return newArityMismatchError(pos, name, 0, -1)
	}
	y.ops = append(y.ops, yardEntry{kind: yardFuncUserCode, priority: -1, block: callee})
	y.last = tokFuncUserCode
	return nil
}

// LoadConst loads a literal value directly into the target block.
func (y *Shunt) LoadConst(pos int, v Scalar) error {
	if err := y.checkValueLike(pos, ""); err != nil {
		return err
	}
	y.block.LoadConst(v)
	y.last = tokValue
	return nil
}

// LoadArg loads argument i directly into the target block.
func (y *Shunt) LoadArg(pos int, i int) error {
	if err := y.checkValueLike(pos, ""); err != nil {
		return err
	}
	y.block.LoadArg(i)
	y.last = tokValue
	return nil
}

// LoadVar loads a reference to another (zero-arity) Code Block as a
// value, fixing its arity to zero if it was still unset.
func (y *Shunt) LoadVar(pos int, name string, callee *CodeBlock) error {
	if err := y.checkValueLike(pos, name); err != nil {
		return err
	}
	callee.SetArity(0)
	if callee.GetArity() != 0 {
		return newFuncNoCallError(pos, name)
	}
	if !y.block.CallCode(callee) {
		return newMissingValuesError(pos)
	}
	y.last = tokValue
	return nil
}
