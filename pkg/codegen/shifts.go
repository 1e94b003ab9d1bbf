package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
	"github.com/z80gen/ddcg/pkg/sexpr"
)

// shiftForm implements (>> EXPR COUNT) and (<< EXPR COUNT). EXPR is
// always computed into HL first. A literal count of 0-4 unrolls into that
// many shift/rotate pairs; any other literal (5 or above) is already
// known non-zero at compile time, so it loops without a guard; a
// non-literal count cannot be proven non-zero, so it gets the zero-check
// guard before the loop.
func (g *Generator) shiftForm(args []ast.Node, dd DataDest, cd *ControlDest, left bool) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: shift takes an expression and a count", ErrUnsupportedForm)
	}
	if err := g.Form(args[0], DD_HL, Next()); err != nil {
		return err
	}

	n, isLiteral := literalShiftCount(args[1])
	if isLiteral && n >= 0 && n <= 4 {
		for i := 0; i < n; i++ {
			g.emitShiftStep(left)
		}
		if err := g.moveReg(DD_HL, dd); err != nil {
			return err
		}
		return g.realizeCD(cd)
	}

	if err := g.Form(args[1], DD_B, Next()); err != nil {
		return err
	}
	needsGuard := !isLiteral
	var skip int
	if needsGuard {
		skip = g.newLabel()
		g.Emit.Instr("LD", "A,B")
		g.Emit.Instr("OR", "A,A")
		g.Emit.Instr("JP", "Z,"+labelName(skip))
	}
	loop := g.newLabel()
	g.Emit.Label(labelName(loop))
	g.emitShiftStep(left)
	g.Emit.Instr("DJNZ", labelName(loop))
	if needsGuard {
		g.Emit.Label(labelName(skip))
	}

	if err := g.moveReg(DD_HL, dd); err != nil {
		return err
	}
	return g.realizeCD(cd)
}

func (g *Generator) emitShiftStep(left bool) {
	if left {
		g.Emit.Instr("SLA", "L")
		g.Emit.Instr("RL", "H")
		return
	}
	g.Emit.Instr("SRL", "H")
	g.Emit.Instr("RL", "L")
}

// literalShiftCount reports the value of a numeric-literal count operand.
func literalShiftCount(n ast.Node) (int, bool) {
	a, ok := n.(*ast.Atom)
	if !ok || !sexpr.IsNumericAtom(a.Text) {
		return 0, false
	}
	val, err := sexpr.ParseNumber(a.Text)
	if err != nil {
		return 0, false
	}
	return int(val), true
}
