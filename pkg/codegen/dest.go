package codegen

import "fmt"

// DataDest identifies where the value of an expression must reside when
// code generation for that expression completes.
type DataDest int

const (
	DD_A     DataDest = iota // 8-bit accumulator
	DD_B                     // 8-bit count register, used for shift counts
	DD_BC                    // 16-bit pair
	DD_DE                    // 16-bit pair
	DD_HL                    // 16-bit pair
	DD_TMP                   // top-of-intermediate-stack; reserved, not exercised
	DD_ZFLAG                 // value not materialized; Z flag reflects zero-ness
)

func (d DataDest) String() string {
	switch d {
	case DD_A:
		return "A"
	case DD_B:
		return "B"
	case DD_BC:
		return "BC"
	case DD_DE:
		return "DE"
	case DD_HL:
		return "HL"
	case DD_TMP:
		return "TMP"
	case DD_ZFLAG:
		return "ZFLAG"
	default:
		return fmt.Sprintf("DD(%d)", int(d))
	}
}

// lowReg and highReg name the 8-bit halves of a 16-bit data destination.
// Only BC, DE, and HL are valid register-pair destinations.
func lowReg(dd DataDest) (string, bool) {
	switch dd {
	case DD_BC:
		return "C", true
	case DD_DE:
		return "E", true
	case DD_HL:
		return "L", true
	default:
		return "", false
	}
}

func highReg(dd DataDest) (string, bool) {
	switch dd {
	case DD_BC:
		return "B", true
	case DD_DE:
		return "D", true
	case DD_HL:
		return "H", true
	default:
		return "", false
	}
}

// CDKind tags the shape of a control destination.
type CDKind int

const (
	CDNext CDKind = iota
	CDRet
	CDLabel
	CDBranch
)

// LabelSentinel is the value the label counter starts at; every generated
// label id is strictly greater than it.
const LabelSentinel = 100

// ControlDest describes what control transfer must happen after an
// expression finishes producing its value. True/False are only valid when
// Kind == CDBranch, and are themselves restricted to {CDNext, CDRet,
// CDLabel}.
type ControlDest struct {
	Kind  CDKind
	Label int
	True  *ControlDest
	False *ControlDest
}

// Next is the fall-through control destination.
func Next() *ControlDest { return &ControlDest{Kind: CDNext} }

// Ret emits a return from the current subroutine.
func Ret() *ControlDest { return &ControlDest{Kind: CDRet} }

// Label jumps unconditionally to local label id.
func Label(id int) *ControlDest { return &ControlDest{Kind: CDLabel, Label: id} }

// Branch is a two-way control destination keyed on the Z flag: when Z is
// clear (value was nonzero) control goes to t; when Z is set control goes
// to f. t and f must each be CDNext, CDRet, or CDLabel.
func Branch(t, f *ControlDest) *ControlDest {
	return &ControlDest{Kind: CDBranch, True: t, False: f}
}

func (c *ControlDest) String() string {
	if c == nil {
		return "<nil>"
	}
	switch c.Kind {
	case CDNext:
		return "NEXT"
	case CDRet:
		return "RET"
	case CDLabel:
		return fmt.Sprintf("LABEL(%d)", c.Label)
	case CDBranch:
		return fmt.Sprintf("BRANCH(%s,%s)", c.True, c.False)
	default:
		return "?"
	}
}
