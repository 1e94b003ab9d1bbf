package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// byteField implements (highbyte EXPR) and (lowbyte EXPR): the operand is
// computed into HL, then the unwanted half is zeroed so the result is a
// 16-bit value with the extracted byte in the low half, and a final
// moveReg places it wherever the caller actually asked for.
func (g *Generator) byteField(args []ast.Node, dd DataDest, cd *ControlDest, high bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: highbyte/lowbyte take exactly one operand", ErrUnsupportedForm)
	}
	if err := g.Form(args[0], DD_HL, Next()); err != nil {
		return err
	}
	if high {
		g.Emit.Instr("LD", "L,H")
		g.Emit.Instr("LD", "H,0")
	} else {
		g.Emit.Instr("LD", "H,0")
	}
	if err := g.moveReg(DD_HL, dd); err != nil {
		return err
	}
	return g.realizeCD(cd)
}
