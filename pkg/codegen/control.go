package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// ifForm implements (if PRED CONSEQ) and (if PRED CONSEQ ALT).
//
// The general shape allocates a label for the false branch (and, for the
// three-arm form, a second label where both arms converge), generates the
// predicate with dd=ZFLAG so its BRANCH destination emits the skip jump,
// then generates each arm in turn.
//
// When there is no ALT and the enclosing cd is RET, the false arm's only
// content would be "fall to Lfalse: and return", so that tail folds into
// a single conditional return (RET Z) and the label is never allocated.
func (g *Generator) ifForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: if takes a predicate, a consequent, and an optional alternate", ErrUnsupportedForm)
	}
	pred, conseq := args[0], args[1]
	hasAlt := len(args) == 3

	if !hasAlt && cd.Kind == CDRet && g.opts.FoldTailReturn {
		if err := g.Form(pred, DD_ZFLAG, Branch(Next(), Ret())); err != nil {
			return err
		}
		return g.Form(conseq, dd, cd)
	}

	lfalse := g.newLabel()
	if err := g.Form(pred, DD_ZFLAG, Branch(Next(), Label(lfalse))); err != nil {
		return err
	}

	if hasAlt {
		lend := g.newLabel()
		if err := g.Form(conseq, dd, Label(lend)); err != nil {
			return err
		}
		g.Emit.Label(labelName(lfalse))
		if err := g.Form(args[2], dd, Next()); err != nil {
			return err
		}
		g.Emit.Label(labelName(lend))
		return g.realizeCD(cd)
	}

	if err := g.Form(conseq, dd, cd); err != nil {
		return err
	}
	g.Emit.Label(labelName(lfalse))
	return g.realizeCD(cd)
}

// doForm implements (do S1 S2 ...): every statement but the
// last is generated into (dd=HL, cd=NEXT) as a throwaway value; the last
// inherits the enclosing (dd, cd), which is what lets the final statement
// of a subroutine body pick up its RET directly instead of falling off
// the end and needing one emitted separately.
func (g *Generator) doForm(args []ast.Node, dd DataDest, cd *ControlDest) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: do requires at least one statement", ErrUnsupportedForm)
	}
	for _, stmt := range args[:len(args)-1] {
		if err := g.Form(stmt, DD_HL, Next()); err != nil {
			return err
		}
	}
	return g.Form(args[len(args)-1], dd, cd)
}
