package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// declareInt16 implements (int16 NAME ...): each name must not already be
// declared; it is appended to the symbol table and a zero-initialized
// word is emitted for it. Like sub, a declaration is not itself an
// expression: it produces no value and transfers no control at its own
// site, so dd/cd are accepted only for dispatch-interface symmetry and
// are otherwise ignored.
func (g *Generator) declareInt16(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: int16 requires at least one name", ErrUnsupportedForm)
	}
	for _, n := range args {
		a, ok := n.(*ast.Atom)
		if !ok {
			return fmt.Errorf("%w: int16 names must be symbols", ErrUnsupportedForm)
		}
		if err := g.Sym.Declare(a.Text); err != nil {
			return fmt.Errorf("%w: %q", ErrRedeclaration, a.Text)
		}
		g.Emit.Label(a.Text)
		g.Emit.Instr("DEFW", "0")
	}
	return nil
}

// assign implements (set VAR EXPR): EXPR is generated into HL, stored to
// VAR's memory cell, then moved into the caller's dd before cd is
// realized, so `set` can itself be used as a value-producing form (e.g.
// as the last statement of a `do`). The target is not checked against the
// symbol table; only reads, address-of, and calls require a declaration.
func (g *Generator) assign(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: set takes a variable and an expression", ErrUnsupportedForm)
	}
	varName, ok := args[0].(*ast.Atom)
	if !ok {
		return fmt.Errorf("%w: set's first argument must be a symbol", ErrUnsupportedForm)
	}

	if err := g.Form(args[1], DD_HL, Next()); err != nil {
		return err
	}
	g.Emit.Instr("LD", fmt.Sprintf("(%s),HL", varName.Text))
	if err := g.moveReg(DD_HL, dd); err != nil {
		return err
	}
	return g.realizeCD(cd)
}

// addressOf implements (@ NAME): NAME must be declared; its address (the
// label itself, used as an immediate) loads into dd. A byte destination
// gets the address's low byte, the same truncation a numeric immediate
// gets.
func (g *Generator) addressOf(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: @ requires an operand", ErrEmptyOperator)
	}
	name, ok := args[0].(*ast.Atom)
	if !ok {
		return fmt.Errorf("%w: @ operand must be a symbol", ErrUnsupportedForm)
	}
	if !g.Sym.Has(name.Text) {
		return fmt.Errorf("%w: %q", ErrUndeclaredSymbol, name.Text)
	}
	switch dd {
	case DD_A, DD_B, DD_BC, DD_DE, DD_HL:
		g.Emit.Instr("LD", fmt.Sprintf("%s,%s", dd, name.Text))
	default:
		return fmt.Errorf("%w: cannot load an address into %s", ErrUnsupportedDest, dd)
	}
	return g.realizeCD(cd)
}
