package afed

import "strings"

// parseExpr drives the lexer's rune-scanning primitives through the
// Shunting Yard state y := NewShunt(block, tryEval), producing
// instructions in block, per component F's tokenization order:
//
//  1. "(", ")", "," are structural tokens handled directly.
//  2. Otherwise, try the longest-prefix symbolic operator match against
//     the unary or binary trie, chosen by whether the last token was a
//     value.
//  3. Otherwise, a digit or '.' starts a numeric literal.
//  4. Otherwise, an identifier-start rune begins a word, resolved in
//     order against argEnv, the builtin registry, and finally ns as a
//     namespace variable (forward-declaring it if unknown, and
//     detecting an immediately following "(" to distinguish a call from
//     a bare value reference).
//  5. Anything else ends the expression; the caller decides whether
//     leftover text is an error.
//
// depth tracks parenthesis nesting so whitespace including newlines is
// only skipped inside an open group; at depth zero a newline ends the
// expression exactly as running out of input would.
func parseExpr(l *lexer, ns *Namespace, block *CodeBlock, argEnv map[string]int, tryEval bool) error {
	y := NewShunt(block, tryEval)
	depth := 0

	for {
		l.skipAllSpace(depth)
		pos := l.pos
		r, err := l.peekRune()
		if err != nil {
			break
		}

		switch r {
		case '(':
			l.readRune()
			if err := y.OpenParenth(pos); err != nil {
				return err
			}
			depth++
			continue
		case ')':
			l.readRune()
			if err := y.CloseParenth(pos); err != nil {
				return err
			}
			if depth > 0 {
				depth--
			}
			continue
		case ',':
			l.readRune()
			if err := y.PutComma(pos); err != nil {
				return err
			}
			continue
		}

		if op, n := lookupOperator(l.restBuf(2), !y.LastWasValue()); n > 0 {
			for i := 0; i < n; i++ {
				l.readRune()
			}
			var perr error
			if op.Unary {
				perr = y.PutUnary(pos, op.Fn, op.Prec, op.Symbol)
			} else {
				perr = y.PutBinary(pos, op.Fn, op.Prec, op.Assoc == LeftAssoc)
			}
			if perr != nil {
				return perr
			}
			continue
		}

		if isDigit(r) || r == '.' {
			val, ok := l.scanNumber()
			if !ok {
				return newExtraContentError(pos)
			}
			if err := y.LoadConst(pos, val); err != nil {
				return err
			}
			continue
		}

		if isIdentStart(r) {
			word := l.scanWord()
			if err := parseWord(l, ns, y, argEnv, depth, pos, word); err != nil {
				return err
			}
			continue
		}

		break
	}

	return y.Clear(l.pos)
}

// parseWord resolves an identifier already scanned from the input
// against, in order: the enclosing definition's argument names, the
// builtin registry, and finally the namespace, per component F rule 4.
func parseWord(l *lexer, ns *Namespace, y *Shunt, argEnv map[string]int, depth, pos int, word string) error {
	if argEnv != nil {
		if i, ok := argEnv[word]; ok {
			return y.LoadArg(pos, i)
		}
	}

	if nm, ok := lookupNamed(word); ok {
		if nm.Arity == 0 {
			val, _ := nm.Fn(nil)
			return y.LoadConst(pos, val)
		}
		return y.FuncCall(pos, word, nm.Arity, nm.Fn)
	}

	v := ns.Put(word)
	l.skipAllSpace(depth)
	if r, err := l.peekRune(); err == nil && r == '(' {
		return y.CodeCall(pos, word, v.Block)
	}
	return y.LoadVar(pos, word, v.Block)
}

// ParseInto parses expr into block using ns for variable resolution (or
// no namespace at all, if ns is nil and expr references no
// identifiers), with argNames bound as block's declared parameters. It
// returns the number of bytes consumed.
//
// This is the entry point component F documents as usable on its own,
// independent of a Define call: it compiles a single expression into a
// caller-owned block without defining any variable.
func ParseInto(block *CodeBlock, ns *Namespace, expr string, argNames []string, tryEval bool) (int, error) {
	if ns == nil {
		ns = NewNamespace(tryEval)
	}
	argEnv := make(map[string]int, len(argNames))
	for i, a := range argNames {
		argEnv[a] = i
	}
	block.SetArity(len(argNames))
	l := newLexer(strings.NewReader(expr))
	if err := parseExpr(l, ns, block, argEnv, tryEval); err != nil {
		return l.pos, err
	}
	return l.pos, nil
}
