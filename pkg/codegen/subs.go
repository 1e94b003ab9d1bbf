package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// subForm implements (sub NAME S1 S2 ...): NAME must not already be
// declared; it is appended to the symbol table, a label is emitted for
// it, and the statement sequence is generated with cd=RET, the same
// tail-position propagation doForm uses, since a subroutine body is
// exactly a statement sequence whose last statement must return.
//
// A sub declaration does not itself produce a value or transfer control at
// its own site (it is a label plus a body), so unlike every other form it
// ignores the dd/cd the dispatcher would otherwise thread through it.
func (g *Generator) subForm(p *ast.Pair) error {
	items := ast.Items(p.Cdr)
	if len(items) == 0 {
		return fmt.Errorf("%w: sub requires a name", ErrUnsupportedForm)
	}
	name, ok := items[0].(*ast.Atom)
	if !ok {
		return fmt.Errorf("%w: sub name must be a symbol", ErrUnsupportedForm)
	}
	if err := g.Sym.Declare(name.Text); err != nil {
		return fmt.Errorf("%w: %q", ErrRedeclaration, name.Text)
	}
	g.Emit.Label(name.Text)

	body := items[1:]
	if len(body) == 0 {
		return g.realizeCD(Ret())
	}
	for _, stmt := range body[:len(body)-1] {
		if err := g.Form(stmt, DD_HL, Next()); err != nil {
			return err
		}
	}
	return g.Form(body[len(body)-1], DD_HL, Ret())
}

// callForm implements the "otherwise" branch of the form dispatcher: head
// must name a declared nullary subroutine; a non-empty cdr means the
// caller supplied arguments, which this language does not support. Like
// the library-routine calls in mulDiv, a cd of RET becomes a tail JP
// instead of CALL+RET; a user subroutine has no defined return value, so
// a non-tail call realizes cd directly with nothing moved into dd.
func (g *Generator) callForm(name string, args []ast.Node, dd DataDest, cd *ControlDest) error {
	if !g.Sym.Has(name) {
		return fmt.Errorf("%w: %q", ErrUndeclaredSymbol, name)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: %q does not take parameters", ErrUnsupportedArg, name)
	}
	if cd.Kind == CDRet {
		g.Emit.Instr("JP", name)
		return nil
	}
	g.Emit.Instr("CALL", name)
	return g.realizeCD(cd)
}
