package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// alu16 maps an arithmetic/bitwise operator to its 16-bit ALU instruction
// pair: the first operates on the low bytes, the second is the
// carry-aware variant applied to the high bytes.
var alu16 = map[string][2]string{
	"+": {"ADD", "ADC"},
	"-": {"SUB", "SBC"},
	"&": {"AND", "AND"},
	"|": {"OR", "OR"},
	"^": {"XOR", "XOR"},
}

// binaryOp implements (op A B) for every binary operator family. A
// compound B is evaluated into HL first and stashed on the stack so A can
// use HL too, while an atomic B goes straight into DE, leaving HL free
// for A.
// After this setup the left operand (A) always ends up in HL and the
// right operand (B) always ends up in DE.
func (g *Generator) binaryOp(op string, args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: (%s ...) takes exactly two operands", ErrUnsupportedForm, op)
	}
	a, b := args[0], args[1]

	if _, isPair := b.(*ast.Pair); isPair {
		if err := g.Form(b, DD_HL, Next()); err != nil {
			return err
		}
		g.push("HL")
		if err := g.Form(a, DD_HL, Next()); err != nil {
			return err
		}
		g.pop("DE")
	} else {
		if err := g.Form(b, DD_DE, Next()); err != nil {
			return err
		}
		if err := g.Form(a, DD_HL, Next()); err != nil {
			return err
		}
	}

	switch op {
	case "*", "/":
		return g.mulDiv(op, dd, cd)
	default:
		if err := g.emitAlu(op, dd); err != nil {
			return err
		}
		return g.realizeCD(cd)
	}
}

// emitAlu emits the instructions for +, -, &, |, ^ given ds1=HL (A),
// ds2=DE (B), storing the result into dd.
func (g *Generator) emitAlu(op string, dd DataDest) error {
	// Add has a one-instruction special case: ds1 is always HL after the
	// operand setup above, so when the caller also wants the result in
	// HL, a plain ADD HL,DE suffices instead of the byte-wise pattern.
	if op == "+" && dd == DD_HL {
		g.Emit.Instr("ADD", "HL,DE")
		return nil
	}

	pair, ok := alu16[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedForm, op)
	}
	return g.emitALU16(pair[0], pair[1], dd)
}

// emitALU16 is the general 16-bit pattern: load A from the low byte of HL, apply
// op1 with the low byte of DE, store into the low byte of dd; then the
// same for the high bytes with op2 (the carry-aware variant). When dd is
// DD_A only the low-byte triplet runs, since the result is a byte.
func (g *Generator) emitALU16(op1, op2 string, dd DataDest) error {
	g.Emit.Instr("LD", "A,L")
	g.Emit.Instr(op1, "A,E")
	if dd == DD_A {
		return nil
	}
	low, ok := lowReg(dd)
	if !ok {
		return fmt.Errorf("%w: cannot store ALU result into %s", ErrUnsupportedDest, dd)
	}
	g.Emit.Instr("LD", low+",A")
	g.Emit.Instr("LD", "A,H")
	g.Emit.Instr(op2, "A,D")
	high, _ := highReg(dd)
	g.Emit.Instr("LD", high+",A")
	return nil
}

// mulDiv delegates to the runtime library routines multiply_HL_DE and
// divide_HL_DE. The routine always returns in HL; a
// non-tail call moves that result into dd, while a tail call (cd == RET)
// is a straight JP, realizing cd as part of the jump.
func (g *Generator) mulDiv(op string, dd DataDest, cd *ControlDest) error {
	var routine string
	switch op {
	case "*":
		routine = "multiply_HL_DE"
	case "/":
		routine = "divide_HL_DE"
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedForm, op)
	}

	if cd.Kind == CDRet {
		g.Emit.Instr("JP", routine)
		return nil
	}
	g.Emit.Instr("CALL", routine)
	if err := g.moveReg(DD_HL, dd); err != nil {
		return err
	}
	return g.realizeCD(cd)
}
