// Package codegen implements a destination-driven Z80 code generator: a
// recursive walk that threads a DataDest and a ControlDest through every
// AST form, selecting instructions that place each expression's value
// where it must go and transfer control as required, without a separate
// optimization pass.
package codegen

import (
	"fmt"
	"os"

	"github.com/z80gen/ddcg/pkg/ast"
	"github.com/z80gen/ddcg/pkg/emitter"
	"github.com/z80gen/ddcg/pkg/sexpr"
	"github.com/z80gen/ddcg/pkg/symtab"
)

// debug gates verbose tracing to stderr, toggled by the environment
// rather than threading a logger through every call.
var debug = os.Getenv("DDCG_DEBUG") != ""

// Options configures a Generator's non-semantic knobs.
type Options struct {
	// LabelStart is the initial value of the label counter; generated
	// label ids are strictly greater than it. Defaults to LabelSentinel.
	LabelStart int

	// FoldTailReturn lets an `if` whose enclosing control destination is
	// RET fold its false branch into a conditional return instead of an
	// explicit label. On by default.
	FoldTailReturn bool
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{LabelStart: LabelSentinel, FoldTailReturn: true}
}

// Generator holds the three pieces of process-local state code generation
// mutates: the symbol table, the label counter, and the assembly buffer.
// All three are append-only/monotonic; a Generator is used once per
// program and discarded, so identical input yields an identical listing.
type Generator struct {
	Sym          *symtab.Table
	Emit         *emitter.Buffer
	labelCounter int
	opts         Options
}

// New returns a Generator ready to translate top-level forms.
func New(opts Options) *Generator {
	if opts.LabelStart == 0 {
		opts.LabelStart = LabelSentinel
	}
	return &Generator{
		Sym:          symtab.New(),
		Emit:         emitter.New(),
		labelCounter: opts.LabelStart,
		opts:         opts,
	}
}

// newLabel returns a fresh label id, strictly greater than every id
// returned before it and than LabelStart.
func (g *Generator) newLabel() int {
	g.labelCounter++
	return g.labelCounter
}

func labelName(id int) string { return fmt.Sprintf("L%d", id) }

// GenerateProgram runs Form over each top-level form in order. Top-level
// forms are int16, sub, and bare expressions; a bare expression is
// generated with dd=HL, cd=RET, useful only for exercising a single
// expression in isolation.
func (g *Generator) GenerateProgram(forms []ast.Node) error {
	for _, f := range forms {
		if err := g.Form(f, DD_HL, Ret()); err != nil {
			return err
		}
	}
	return nil
}

// Form is cg_form: the entry point for every AST node. On success, the
// value of node resides in dd (or the Z flag reflects it, if dd ==
// DD_ZFLAG), and control has been transferred according to cd.
func (g *Generator) Form(node ast.Node, dd DataDest, cd *ControlDest) error {
	if debug {
		fmt.Fprintf(os.Stderr, "ddcg: cg_form dd=%s cd=%s\n", dd, cd)
	}

	// ZFLAG short-circuit: compute the value into HL, fold it into the
	// Z flag via a two-instruction OR trick, then realize the caller's cd.
	if dd == DD_ZFLAG {
		if err := g.Form(node, DD_HL, Next()); err != nil {
			return err
		}
		g.Emit.Instr("LD", "A,L")
		g.Emit.Instr("OR", "A,H")
		return g.realizeCD(cd)
	}

	switch n := node.(type) {
	case *ast.Pair:
		return g.form(n, dd, cd)
	case *ast.Atom:
		return g.atom(n, dd, cd)
	default:
		return fmt.Errorf("%w: unrecognized node type %T", ErrUnsupportedForm, node)
	}
}

// form dispatches a pair node on its head symbol. A head that is not a
// built-in operator must name a declared nullary subroutine.
func (g *Generator) form(p *ast.Pair, dd DataDest, cd *ControlDest) error {
	head := ast.Head(p)
	args := ast.Items(p.Cdr)

	switch head {
	case "+", "-", "*", "/", "&", "|", "^":
		return g.binaryOp(head, args, dd, cd)
	case "int16":
		return g.declareInt16(args, dd, cd)
	case "set":
		return g.assign(args, dd, cd)
	case "if":
		return g.ifForm(args, dd, cd)
	case "sub":
		return g.subForm(p)
	case "do":
		return g.doForm(args, dd, cd)
	case "@":
		return g.addressOf(args, dd, cd)
	case "peek":
		return g.peekForm(args, dd, cd)
	case "poke":
		return g.pokeForm(args, dd, cd)
	case "input":
		return g.inputForm(args, dd, cd)
	case "output":
		return g.outputForm(args, dd, cd)
	case "highbyte":
		return g.byteField(args, dd, cd, true)
	case "lowbyte":
		return g.byteField(args, dd, cd, false)
	case ">>":
		return g.shiftForm(args, dd, cd, false)
	case "<<":
		return g.shiftForm(args, dd, cd, true)
	case "":
		return fmt.Errorf("%w: pair head is not a symbol", ErrUnsupportedForm)
	default:
		return g.callForm(head, args, dd, cd)
	}
}

// atom handles leaf nodes: a numeric literal loads as an immediate, a
// declared symbol loads from its memory cell, anything else is an
// undeclared-symbol error.
func (g *Generator) atom(a *ast.Atom, dd DataDest, cd *ControlDest) error {
	if sexpr.IsNumericAtom(a.Text) {
		val, err := sexpr.ParseNumber(a.Text)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNumericForm, err)
		}
		if err := g.loadImmediate(val, dd); err != nil {
			return err
		}
		return g.realizeCD(cd)
	}

	if !g.Sym.Has(a.Text) {
		return fmt.Errorf("%w: %q", ErrUndeclaredSymbol, a.Text)
	}
	if err := g.loadVariable(a.Text, dd); err != nil {
		return err
	}
	return g.realizeCD(cd)
}

// loadImmediate loads a literal 16-bit value into dd. Destinations
// outside the immediate-load path are an error.
func (g *Generator) loadImmediate(val int64, dd DataDest) error {
	switch dd {
	case DD_A:
		g.Emit.Instr("LD", fmt.Sprintf("A,%d", val&0xFF))
	case DD_BC, DD_DE, DD_HL:
		g.Emit.Instr("LD", fmt.Sprintf("%s,%d", dd, val))
	case DD_B:
		g.Emit.Instr("LD", fmt.Sprintf("B,%d", val&0xFF))
	default:
		return fmt.Errorf("%w: cannot load an immediate into %s", ErrUnsupportedDest, dd)
	}
	return nil
}

// loadVariable loads the value of a declared global into dd. The Z80 has
// no direct load from memory into B, so a B destination (a shift count)
// bounces through A.
func (g *Generator) loadVariable(name string, dd DataDest) error {
	switch dd {
	case DD_A:
		g.Emit.Instr("LD", fmt.Sprintf("A,(%s)", name))
	case DD_B:
		g.Emit.Instr("LD", fmt.Sprintf("A,(%s)", name))
		g.Emit.Instr("LD", "B,A")
	case DD_BC, DD_DE, DD_HL:
		g.Emit.Instr("LD", fmt.Sprintf("%s,(%s)", dd, name))
	default:
		return fmt.Errorf("%w: cannot load a variable into %s", ErrUnsupportedDest, dd)
	}
	return nil
}

// push/pop wrap the Z80 stack operations used by compound-operand
// evaluation; kept as named helpers so every call site reads as a
// balanced pair.
func (g *Generator) push(reg string) { g.Emit.Instr("PUSH", reg) }
func (g *Generator) pop(reg string)  { g.Emit.Instr("POP", reg) }

// moveReg realizes the register-to-register move implied by a data
// destination: if src == dst, nothing is emitted; if dst is A, only the
// low byte moves; otherwise both halves move via the register-pair
// naming.
func (g *Generator) moveReg(src, dst DataDest) error {
	if src == dst {
		return nil
	}
	if dst == DD_A {
		low, ok := lowReg(src)
		if !ok {
			return fmt.Errorf("%w: cannot move %s into A", ErrUnsupportedDest, src)
		}
		g.Emit.Instr("LD", "A,"+low)
		return nil
	}
	srcLow, ok1 := lowReg(src)
	srcHigh, ok2 := highReg(src)
	dstLow, ok3 := lowReg(dst)
	dstHigh, ok4 := highReg(dst)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return fmt.Errorf("%w: cannot move %s into %s", ErrUnsupportedDest, src, dst)
	}
	g.Emit.Instr("LD", dstLow+","+srcLow)
	g.Emit.Instr("LD", dstHigh+","+srcHigh)
	return nil
}

// realizeCD emits the fall-through/return/jump implied by cd.
func (g *Generator) realizeCD(cd *ControlDest) error {
	switch cd.Kind {
	case CDNext:
		return nil
	case CDRet:
		g.Emit.Instr("RET", "")
		return nil
	case CDLabel:
		g.Emit.Instr("JP", labelName(cd.Label))
		return nil
	case CDBranch:
		return g.realizeBranch(cd.True, cd.False)
	default:
		return fmt.Errorf("%w: unrecognized control destination", ErrUnsupportedForm)
	}
}

// realizeBranch implements the BRANCH(true, false) matrix over the Z flag:
// Z set (value was zero) goes to false, Z clear goes to true.
func (g *Generator) realizeBranch(t, f *ControlDest) error {
	switch {
	case t.Kind == CDNext && f.Kind == CDNext:
		return nil
	case t.Kind == CDNext && f.Kind == CDRet:
		g.Emit.Instr("RET", "Z")
		return nil
	case t.Kind == CDNext && f.Kind == CDLabel:
		g.Emit.Instr("JP", "Z,"+labelName(f.Label))
		return nil
	case t.Kind == CDRet && f.Kind == CDNext:
		g.Emit.Instr("RET", "NZ")
		return nil
	case t.Kind == CDRet && f.Kind == CDRet:
		g.Emit.Instr("RET", "")
		return nil
	case t.Kind == CDRet && f.Kind == CDLabel:
		g.Emit.Instr("RET", "NZ")
		g.Emit.Instr("JP", labelName(f.Label))
		return nil
	case t.Kind == CDLabel && f.Kind == CDNext:
		g.Emit.Instr("JP", "NZ,"+labelName(t.Label))
		return nil
	case t.Kind == CDLabel && f.Kind == CDRet:
		g.Emit.Instr("JP", "NZ,"+labelName(t.Label))
		g.Emit.Instr("RET", "")
		return nil
	case t.Kind == CDLabel && f.Kind == CDLabel:
		g.Emit.Instr("JP", "NZ,"+labelName(t.Label))
		g.Emit.Instr("JP", labelName(f.Label))
		return nil
	default:
		return fmt.Errorf("%w: BRANCH sub-destinations must be NEXT, RET, or LABEL", ErrUnsupportedForm)
	}
}
