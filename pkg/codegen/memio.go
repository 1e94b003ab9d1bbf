package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// sizeAtom extracts and validates the "byte"/"word" size token that leads
// every peek/poke/input/output form.
func sizeAtom(n ast.Node) (string, error) {
	a, ok := n.(*ast.Atom)
	if !ok {
		return "", fmt.Errorf("%w: size must be the symbol byte or word", ErrUnsupportedSize)
	}
	if a.Text != "byte" && a.Text != "word" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSize, a.Text)
	}
	return a.Text, nil
}

// peekForm implements (peek SIZE ADDR).
func (g *Generator) peekForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: peek takes a size and an address", ErrUnsupportedForm)
	}
	size, err := sizeAtom(args[0])
	if err != nil {
		return err
	}
	if size == "byte" {
		if err := g.peekByte(args[1], dd); err != nil {
			return err
		}
	} else {
		if err := g.peekWord(args[1], dd); err != nil {
			return err
		}
	}
	return g.realizeCD(cd)
}

// peekByte evaluates ADDR into HL and loads through it. When dd is A the
// dst-register move is the no-op case of the general pattern.
func (g *Generator) peekByte(addr ast.Node, dd DataDest) error {
	if err := g.Form(addr, DD_HL, Next()); err != nil {
		return err
	}
	if dd == DD_A {
		g.Emit.Instr("LD", "A,(HL)")
		return nil
	}
	low, ok := lowReg(dd)
	if !ok {
		return fmt.Errorf("%w: cannot peek a byte into %s", ErrUnsupportedDest, dd)
	}
	high, _ := highReg(dd)
	g.Emit.Instr("LD", low+",(HL)")
	g.Emit.Instr("LD", high+",0")
	return nil
}

// peekWord evaluates ADDR into whichever pair dd does not occupy (DE when
// dd is HL, otherwise HL). The Z80 only supports an 8-bit load through
// (DE) into A, never into an arbitrary register, so the DE path bounces
// through A on each half, while the HL path can load any register
// directly. When dd is A, only the low byte loads (explicit truncation).
func (g *Generator) peekWord(addr ast.Node, dd DataDest) error {
	if dd == DD_HL {
		if err := g.Form(addr, DD_DE, Next()); err != nil {
			return err
		}
		g.Emit.Instr("LD", "A,(DE)")
		g.Emit.Instr("LD", "L,A")
		g.Emit.Instr("INC", "DE")
		g.Emit.Instr("LD", "A,(DE)")
		g.Emit.Instr("LD", "H,A")
		return nil
	}

	if err := g.Form(addr, DD_HL, Next()); err != nil {
		return err
	}
	if dd == DD_A {
		g.Emit.Instr("LD", "A,(HL)")
		return nil
	}
	low, ok := lowReg(dd)
	if !ok {
		return fmt.Errorf("%w: cannot peek a word into %s", ErrUnsupportedDest, dd)
	}
	high, _ := highReg(dd)
	g.Emit.Instr("LD", low+",(HL)")
	g.Emit.Instr("INC", "HL")
	g.Emit.Instr("LD", high+",(HL)")
	return nil
}

// pokeForm implements (poke SIZE ADDR DATUM).
func (g *Generator) pokeForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: poke takes a size, an address, and a datum", ErrUnsupportedForm)
	}
	size, err := sizeAtom(args[0])
	if err != nil {
		return err
	}
	if size == "byte" {
		if err := g.pokeByte(args[1], args[2]); err != nil {
			return err
		}
	} else {
		if err := g.pokeWord(args[1], args[2]); err != nil {
			return err
		}
	}
	return g.realizeCD(cd)
}

// pokeByte generates ADDR into HL, then DATUM into A, then stores (HL),A.
func (g *Generator) pokeByte(addr, datum ast.Node) error {
	if err := g.Form(addr, DD_HL, Next()); err != nil {
		return err
	}
	if err := g.Form(datum, DD_A, Next()); err != nil {
		return err
	}
	g.Emit.Instr("LD", "(HL),A")
	return nil
}

// pokeWord mirrors binaryOp's operand trick for its two operands: when
// ADDR is an atom, DATUM goes into DE and ADDR directly
// into HL; when ADDR is compound, DATUM is evaluated into HL first and
// stashed on the stack so ADDR can use HL too. Either way the datum ends
// up in DE and the address in HL, then both bytes store through A.
func (g *Generator) pokeWord(addr, datum ast.Node) error {
	if _, isPair := addr.(*ast.Pair); isPair {
		if err := g.Form(datum, DD_HL, Next()); err != nil {
			return err
		}
		g.push("HL")
		if err := g.Form(addr, DD_HL, Next()); err != nil {
			return err
		}
		g.pop("DE")
	} else {
		if err := g.Form(datum, DD_DE, Next()); err != nil {
			return err
		}
		if err := g.Form(addr, DD_HL, Next()); err != nil {
			return err
		}
	}
	g.Emit.Instr("LD", "A,E")
	g.Emit.Instr("LD", "(HL),A")
	g.Emit.Instr("INC", "HL")
	g.Emit.Instr("LD", "A,D")
	g.Emit.Instr("LD", "(HL),A")
	return nil
}

// inputForm implements (input SIZE PORT): the same structural pattern as
// peek, with BC holding the port address, IN A,(C) in place of
// LD A,(HL), and INC BC between halves of a word transfer.
func (g *Generator) inputForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: input takes a size and a port", ErrUnsupportedForm)
	}
	size, err := sizeAtom(args[0])
	if err != nil {
		return err
	}
	if size == "byte" {
		if err := g.inputByte(args[1], dd); err != nil {
			return err
		}
	} else {
		if err := g.inputWord(args[1], dd); err != nil {
			return err
		}
	}
	return g.realizeCD(cd)
}

// inputByte always reads the port through A first, then moves it into
// dd's low byte and zeroes the high byte. The same A-bounce
// peek/poke/output use, rather than IN r,(C)'s any-register form.
func (g *Generator) inputByte(port ast.Node, dd DataDest) error {
	if err := g.Form(port, DD_BC, Next()); err != nil {
		return err
	}
	g.Emit.Instr("IN", "A,(C)")
	if dd == DD_A {
		return nil
	}
	low, ok := lowReg(dd)
	if !ok {
		return fmt.Errorf("%w: cannot input a byte into %s", ErrUnsupportedDest, dd)
	}
	high, _ := highReg(dd)
	g.Emit.Instr("LD", low+",A")
	g.Emit.Instr("LD", high+",0")
	return nil
}

// inputWord mirrors inputByte for two bytes: each half is read through A,
// then moved into dd's corresponding half, INC BC between the two reads.
// When dd is A, only the low byte loads (explicit truncation, as peekWord
// does for dd=A). When dd is BC itself, the port address under
// construction would be clobbered by writing into C before the second
// read, so the bytes are staged through HL and moved into BC afterward.
func (g *Generator) inputWord(port ast.Node, dd DataDest) error {
	if err := g.Form(port, DD_BC, Next()); err != nil {
		return err
	}
	if dd == DD_A {
		g.Emit.Instr("IN", "A,(C)")
		return nil
	}
	readInto := dd
	if dd == DD_BC {
		readInto = DD_HL
	}
	low, ok := lowReg(readInto)
	if !ok {
		return fmt.Errorf("%w: cannot input a word into %s", ErrUnsupportedDest, dd)
	}
	high, _ := highReg(readInto)
	g.Emit.Instr("IN", "A,(C)")
	g.Emit.Instr("LD", low+",A")
	g.Emit.Instr("INC", "BC")
	g.Emit.Instr("IN", "A,(C)")
	g.Emit.Instr("LD", high+",A")
	if readInto != dd {
		return g.moveReg(readInto, dd)
	}
	return nil
}

// outputForm implements (output SIZE PORT DATUM).
func (g *Generator) outputForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: output takes a size, a port, and a datum", ErrUnsupportedForm)
	}
	size, err := sizeAtom(args[0])
	if err != nil {
		return err
	}
	if size == "byte" {
		if err := g.outputByte(args[1], args[2]); err != nil {
			return err
		}
	} else {
		if err := g.outputWord(args[1], args[2]); err != nil {
			return err
		}
	}
	return g.realizeCD(cd)
}

func (g *Generator) outputByte(port, datum ast.Node) error {
	if err := g.Form(port, DD_BC, Next()); err != nil {
		return err
	}
	if err := g.Form(datum, DD_A, Next()); err != nil {
		return err
	}
	g.Emit.Instr("OUT", "(C),A")
	return nil
}

// outputWord mirrors pokeWord, with BC as the port pointer and the datum
// always routed through DE (never BC, so it can never collide with the
// port address), bouncing each byte through A before OUT (C),A.
func (g *Generator) outputWord(port, datum ast.Node) error {
	if _, isPair := port.(*ast.Pair); isPair {
		if err := g.Form(datum, DD_HL, Next()); err != nil {
			return err
		}
		g.push("HL")
		if err := g.Form(port, DD_BC, Next()); err != nil {
			return err
		}
		g.pop("DE")
	} else {
		if err := g.Form(datum, DD_DE, Next()); err != nil {
			return err
		}
		if err := g.Form(port, DD_BC, Next()); err != nil {
			return err
		}
	}
	g.Emit.Instr("LD", "A,E")
	g.Emit.Instr("OUT", "(C),A")
	g.Emit.Instr("INC", "BC")
	g.Emit.Instr("LD", "A,D")
	g.Emit.Instr("OUT", "(C),A")
	return nil
}
