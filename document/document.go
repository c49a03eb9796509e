// Package document implements the line-oriented document rewriter that
// sits on top of the afed engine: it scans a text file a line at a
// time, treats every non-blank, non-comment line as a definition fed
// to a Namespace, and replaces the trailing "= ..." print section of
// any line that has one with the defined variable's evaluated value.
//
// This is the external collaborator afed.c wires together with a
// namespace and a file; it is grounded directly on docmt.c and is a
// pure addition on top of the core afed package, which has no
// dependency on it.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/TannerReese/afed"
)

// piece is one unit of the reassembled document: either a literal
// slice of the original text, or a reference to a variable whose
// evaluated value replaces a print section.
type piece struct {
	isSlice bool
	text    string
	v       *afed.Variable
}

// Document holds the pieces produced by Parse and the Namespace they
// were parsed into.
type Document struct {
	text   string
	ns     *afed.Namespace
	pieces []piece

	pos    int
	remd   int
	lineNo int
}

// New returns a Document that will parse text's definitions into ns.
func New(text string, ns *afed.Namespace) *Document {
	return &Document{text: text, ns: ns, lineNo: 1}
}

// Namespace returns the namespace this document parses into.
func (d *Document) Namespace() *afed.Namespace { return d.ns }

func (d *Document) skipBlank() {
	for d.pos < len(d.text) && (d.text[d.pos] == ' ' || d.text[d.pos] == '\t') {
		d.pos++
	}
}

func (d *Document) skipLine() {
	for d.pos < len(d.text) && d.text[d.pos] != '\n' {
		d.pos++
	}
	if d.pos < len(d.text) {
		d.pos++
		d.lineNo++
	}
}

func (d *Document) addSlice() {
	d.pieces = append(d.pieces, piece{isSlice: true, text: d.text[d.remd:d.pos]})
	d.remd = d.pos
}

func (d *Document) addExpr(v *afed.Variable) {
	d.pieces = append(d.pieces, piece{v: v})
	d.remd = d.pos
}

// parseLine parses one line of the document as a definition, per
// docmt.c's parse_line: a blank or comment line is skipped outright;
// otherwise the rest of the line is handed to Namespace.Define, and if
// the character immediately following the definition is '=', the
// remainder of the line becomes a print section that will be replaced
// by the defined variable's value on output.
func (d *Document) parseLine() error {
	d.skipBlank()
	if d.pos >= len(d.text) || d.text[d.pos] == '#' || d.text[d.pos] == '\n' {
		d.skipLine()
		return nil
	}

	rest := d.text[d.pos:]
	consumed, v, err := d.ns.Define(rest)
	d.lineNo += strings.Count(rest[:consumed], "\n")
	d.pos += consumed
	if err != nil {
		return err
	}

	d.skipBlank()
	switch {
	case d.pos < len(d.text) && d.text[d.pos] == '=':
		d.pos++
		d.addSlice()
		for d.pos < len(d.text) && d.text[d.pos] != '\n' && d.text[d.pos] != '#' {
			d.pos++
		}
		d.addExpr(v)
	case d.pos < len(d.text) && d.text[d.pos] != '\n' && d.text[d.pos] != '#':
		return &extraContentAt{d.pos}
	}

	d.skipLine()
	return nil
}

// extraContentAt reports trailing content after a definition at the
// document cursor position, with code afed.ErrExtraContent; it
// satisfies afed.InputError.
type extraContentAt struct{ pos int }

func (e *extraContentAt) Error() string    { return fmt.Sprintf("column %d: unexpected trailing content", e.pos) }
func (e *extraContentAt) Pos() int         { return e.pos }
func (e *extraContentAt) Code() afed.ErrCode { return afed.ErrExtraContent }

// Parse walks the whole document, defining every line's variable. It
// writes one "(Line N) message" diagnostic per failing line to errout
// (if non-nil) and returns the number of lines that failed to parse.
func (d *Document) Parse(errout io.Writer) int {
	errCount := 0
	for d.pos < len(d.text) {
		if err := d.parseLine(); err != nil {
			if errout != nil {
				fmt.Fprintf(errout, "(Line %d) %s\n", d.lineNo, err.Error())
				if re, ok := err.(*afed.RedefError); ok {
					fmt.Fprintf(errout, "    Redefinition of %q\n", re.Name)
				} else if ce, ok := err.(*afed.CircularDependencyError); ok {
					fmt.Fprintf(errout, "    Dependency Chain: %s\n", strings.Join(ce.Chain, " <- "))
				}
			}
			d.skipLine()
			errCount++
		}
	}
	return errCount
}

// Print writes the reassembled document to w: literal slices verbatim,
// and each print section replaced by its variable's value padded with
// a single space on either side, or "ERR <code>" on evaluation
// failure. Evaluation failures are additionally reported to errout (if
// non-nil), using the line number where parsing finished, matching the
// source's own diagnostic placement. It returns the number of
// evaluation failures.
func (d *Document) Print(w, errout io.Writer) int {
	errCount := 0
	for _, pc := range d.pieces {
		if pc.isSlice {
			if w != nil {
				io.WriteString(w, pc.text)
			}
			continue
		}

		val, err := afed.VarValue(pc.v)
		if w != nil {
			io.WriteString(w, " ")
			if err != nil {
				code := afed.ErrNone
				if ie, ok := err.(afed.InputError); ok {
					code = ie.Code()
				}
				fmt.Fprintf(w, "ERR %s", code.String())
			} else {
				io.WriteString(w, val.String())
			}
			io.WriteString(w, " ")
		}
		if err != nil {
			errCount++
			if errout != nil {
				fmt.Fprintf(errout, "(Line %d) %s\n", d.lineNo, err.Error())
			}
		}
	}
	if w != nil {
		io.WriteString(w, d.text[d.remd:])
	}
	return errCount
}
