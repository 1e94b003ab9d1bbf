package codegen

import (
	"errors"
	"strings"
	"testing"
)

func TestPeekByteDefaultsHighByteToZero(t *testing.T) {
	g := gen()
	form := list(atom("peek"), atom("byte"), atom("100"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "L,(HL)") || !strings.Contains(joined, "H,0") {
		t.Fatalf("expected the low byte loaded and the high byte zeroed, got:\n%s", joined)
	}
}

func TestPeekByteIntoASkipsZeroing(t *testing.T) {
	g := gen()
	form := list(atom("peek"), atom("byte"), atom("100"))
	if err := g.Form(form, DD_A, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if strings.Contains(joined, ",0") {
		t.Fatalf("a byte peek into A has no high half to zero, got:\n%s", joined)
	}
}

func TestPeekWordIntoHLBouncesThroughDE(t *testing.T) {
	g := gen()
	form := list(atom("peek"), atom("word"), atom("100"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "(DE)") {
		t.Fatalf("a word peek into HL must address memory through DE, got:\n%s", joined)
	}
	if strings.Contains(joined, "(HL)") {
		t.Fatalf("the pointer must not collide with the HL destination, got:\n%s", joined)
	}
}

func TestPeekWordIntoBCLoadsDirectlyThroughHL(t *testing.T) {
	g := gen()
	form := list(atom("peek"), atom("word"), atom("100"))
	if err := g.Form(form, DD_BC, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "C,(HL)") || !strings.Contains(joined, "B,(HL)") {
		t.Fatalf("a word peek into BC should load both halves directly through HL, got:\n%s", joined)
	}
}

func TestPokeByteStoresThroughA(t *testing.T) {
	g := gen()
	form := list(atom("poke"), atom("byte"), atom("100"), atom("7"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "(HL),A") {
		t.Fatalf("expected a store through (HL),A, got:\n%s", joined)
	}
}

func TestPokeWordWithCompoundAddressUsesStack(t *testing.T) {
	g := gen()
	form := list(atom("poke"), atom("word"), list(atom("+"), atom("1"), atom("2")), atom("7"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "PUSH") || !strings.Contains(joined, "POP") {
		t.Fatalf("a compound address operand should stash the datum on the stack, got:\n%s", joined)
	}
}

func TestInputWordIntoBCRoutesThroughHL(t *testing.T) {
	g := gen()
	form := list(atom("input"), atom("word"), atom("100"))
	if err := g.Form(form, DD_BC, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "IN") || !strings.Contains(joined, "(C)") {
		t.Fatalf("expected IN r,(C), got:\n%s", joined)
	}
	if !strings.Contains(joined, "C,L") || !strings.Contains(joined, "B,H") {
		t.Fatalf("expected a move from the HL scratch pair into BC, got:\n%s", joined)
	}
}

func TestInputWordBouncesThroughA(t *testing.T) {
	g := gen()
	form := list(atom("input"), atom("word"), atom("100"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if strings.Count(joined, "A,(C)") != 2 {
		t.Fatalf("expected two IN A,(C) reads, got:\n%s", joined)
	}
	if strings.Contains(joined, "L,(C)") || strings.Contains(joined, "H,(C)") {
		t.Fatalf("expected no direct-register IN, reads must bounce through A, got:\n%s", joined)
	}
	if !strings.Contains(joined, "L,A") || !strings.Contains(joined, "H,A") {
		t.Fatalf("expected each half moved from A into HL, got:\n%s", joined)
	}
	if !strings.Contains(joined, "INC") {
		t.Fatalf("expected INC BC between the two port reads, got:\n%s", joined)
	}
}

func TestOutputWordRoutesDatumThroughDE(t *testing.T) {
	g := gen()
	form := list(atom("output"), atom("word"), atom("100"), atom("7"))
	if err := g.Form(form, DD_HL, Next()); err != nil {
		t.Fatalf("Form: %v", err)
	}
	joined := strings.Join(g.Emit.Lines(), "\n")
	if !strings.Contains(joined, "A,E") || !strings.Contains(joined, "A,D") {
		t.Fatalf("expected the datum bounced through A from D/E, got:\n%s", joined)
	}
	if strings.Count(joined, "OUT") != 2 {
		t.Fatalf("expected two OUT (C),A instructions, got:\n%s", joined)
	}
}

func TestUnsupportedSizeTokenIsAnError(t *testing.T) {
	g := gen()
	form := list(atom("peek"), atom("nibble"), atom("100"))
	if err := g.Form(form, DD_HL, Next()); !errors.Is(err, ErrUnsupportedSize) {
		t.Fatalf("err = %v, want ErrUnsupportedSize", err)
	}
}
