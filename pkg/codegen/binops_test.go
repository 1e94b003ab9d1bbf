package codegen

import (
	"strings"
	"testing"
)

func TestAddIntoHLUsesSingleInstruction(t *testing.T) {
	g := gen()
	form := list(atom("+"), atom("1"), atom("2"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	lines := g.Emit.Lines()
	last := fields(lines[len(lines)-1])
	if last[0] != "ADD" || last[1] != "HL,DE" {
		t.Fatalf("got %q, want ADD HL,DE", lines[len(lines)-1])
	}
}

func TestAddIntoAUsesByteWisePattern(t *testing.T) {
	g := gen()
	form := list(atom("+"), atom("1"), atom("2"))
	if err := g.Form(form, DD_A, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "ADD") || !strings.Contains(joined, "A,E") {
		t.Fatalf("expected the byte-wise ADD A,E pattern, got:\n%s", joined)
	}
	if strings.Contains(joined, "HL,DE") {
		t.Fatalf("DD_A destination must not use the 16-bit ADD HL,DE shortcut:\n%s", joined)
	}
}

func TestCompoundRightOperandUsesStack(t *testing.T) {
	g := gen()
	// (+ 1 (+ 2 3)): B is compound, so it must be pushed/popped.
	form := list(atom("+"), atom("1"), list(atom("+"), atom("2"), atom("3")))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "PUSH") || !strings.Contains(joined, "POP") {
		t.Fatalf("expected a PUSH/POP pair for the compound right operand, got:\n%s", joined)
	}
	if strings.Count(joined, "PUSH") != strings.Count(joined, "POP") {
		t.Fatalf("PUSH/POP must balance, got:\n%s", joined)
	}
}

func TestAtomicRightOperandSkipsStack(t *testing.T) {
	g := gen()
	form := list(atom("+"), atom("1"), atom("2"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if strings.Contains(joined, "PUSH") || strings.Contains(joined, "POP") {
		t.Fatalf("two atomic operands must not touch the stack, got:\n%s", joined)
	}
}

func TestSubtractUsesSBCForHighByte(t *testing.T) {
	g := gen()
	form := list(atom("-"), atom("1"), atom("2"))
	if err := g.Form(form, DD_BC, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "SUB") || !strings.Contains(joined, "SBC") {
		t.Fatalf("expected SUB for the low byte and SBC for the high byte, got:\n%s", joined)
	}
}

func TestBitwiseOpsReuseSameMnemonicBothHalves(t *testing.T) {
	for op, mnemonic := range map[string]string{"&": "AND", "|": "OR", "^": "XOR"} {
		g := gen()
		form := list(atom(op), atom("1"), atom("2"))
		if err := g.Form(form, DD_BC, Next()); err != nil {
			t.Fatalf("Form(%s): %v", op, err)
		}
		joined := strings.Join(g.Emit.Lines(), "\n")
		if strings.Count(joined, mnemonic) < 2 {
			t.Fatalf("op %s: expected %s applied to both halves, got:\n%s", op, mnemonic, joined)
		}
	}
}

func TestMultiplyTailCallIsJP(t *testing.T) {
	g := gen()
	form := list(atom("*"), atom("1"), atom("2"))
	if err := g.Form(form, DD_HL, Ret()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	lines := g.Emit.Lines()
	last := fields(lines[len(lines)-1])
	if last[0] != "JP" || last[1] != "multiply_HL_DE" {
		t.Fatalf("got %q, want a tail JP to multiply_HL_DE", lines[len(lines)-1])
	}
}

func TestDivideNonTailCallsAndMoves(t *testing.T) {
	g := gen()
	form := list(atom("/"), atom("1"), atom("2"))
	if err := g.Form(form, DD_BC, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "CALL") || !strings.Contains(joined, "divide_HL_DE") {
		t.Fatalf("expected CALL divide_HL_DE, got:\n%s", joined)
	}
	if !strings.Contains(joined, "LD") || !strings.Contains(joined, "C,L") {
		t.Fatalf("expected the HL->BC move after the call, got:\n%s", joined)
	}
}

func TestWrongArityIsUnsupportedForm(t *testing.T) {
	g := gen()
	form := list(atom("+"), atom("1"))
	if err := g.Form(form, DD_HL, Next()); err == nil {
		t.Fatal("expected an error for a binary op with one operand")
	}
}
