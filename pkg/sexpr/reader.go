// Package sexpr supplies the token classifier, numeric parser, and a
// minimal S-expression reader yielding trees of ast.Pair and ast.Atom
// nodes. It is kept deliberately small; the interesting work lives in
// package codegen, which only ever sees the finished tree.
package sexpr

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// reader is a byte cursor over raw source text.
type reader struct {
	input string
	pos   int
	line  int
}

// ReadAll parses every top-level form in src and returns them in order.
func ReadAll(src string) ([]ast.Node, error) {
	r := &reader{input: src, pos: 0, line: 1}
	var forms []ast.Node
	for {
		r.skipSpace()
		if r.atEnd() {
			return forms, nil
		}
		n, err := r.readNode()
		if err != nil {
			return nil, err
		}
		forms = append(forms, n)
	}
}

// ReadOne parses the first top-level form in src; any text after it is
// not read.
func ReadOne(src string) (ast.Node, error) {
	r := &reader{input: src, pos: 0, line: 1}
	r.skipSpace()
	if r.atEnd() {
		return nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}
	return r.readNode()
}

func (r *reader) atEnd() bool { return r.pos >= len(r.input) }

func (r *reader) peek() byte { return r.input[r.pos] }

func (r *reader) advance() byte {
	c := r.input[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
	}
	return c
}

func (r *reader) skipSpace() {
	for !r.atEnd() {
		c := r.peek()
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			r.advance()
			continue
		}
		if c == ';' { // line comment
			for !r.atEnd() && r.peek() != '\n' {
				r.advance()
			}
			continue
		}
		break
	}
}

func (r *reader) readNode() (ast.Node, error) {
	r.skipSpace()
	if r.atEnd() {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	if r.peek() == '(' {
		return r.readList()
	}
	if r.peek() == ')' {
		return nil, fmt.Errorf("%w: unexpected ')' at line %d", ErrSyntax, r.line)
	}
	return r.readAtom(), nil
}

func (r *reader) readList() (ast.Node, error) {
	line := r.line
	r.advance() // '('
	var items []ast.Node
	for {
		r.skipSpace()
		if r.atEnd() {
			return nil, fmt.Errorf("%w: unterminated list starting at line %d", ErrSyntax, line)
		}
		if r.peek() == ')' {
			r.advance()
			list := ast.List(items...)
			if p, ok := list.(*ast.Pair); ok {
				p.Line = line
			}
			return list, nil
		}
		item, err := r.readNode()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *reader) readAtom() *ast.Atom {
	line := r.line
	start := r.pos
	for !r.atEnd() && !isDelimiter(r.peek()) {
		r.advance()
	}
	return ast.NewAtom(r.input[start:r.pos], line)
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', ';':
		return true
	default:
		return false
	}
}

// IsNumericAtom reports whether an atom's text is a numeric literal
// rather than a symbol reference.
func IsNumericAtom(text string) bool { return isNumericToken(text) }

// ParseNumber converts a numeric literal token to its 16-bit value.
func ParseNumber(text string) (int64, error) { return toNumber(text) }
