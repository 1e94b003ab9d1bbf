package codegen

import (
	"strings"
	"testing"

	"github.com/z80gen/ddcg/pkg/ast"
)

func TestZ80BackendIsRegistered(t *testing.T) {
	names := ListBackends()
	found := false
	for _, n := range names {
		if n == "z80" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListBackends() = %v, want \"z80\" registered", names)
	}
}

func TestZ80BackendMetadata(t *testing.T) {
	backend := GetBackend("z80", &BackendOptions{})
	if backend == nil {
		t.Fatal("GetBackend(\"z80\", ...) = nil, want a backend")
	}
	if backend.Name() != "z80" {
		t.Fatalf("Name() = %q, want \"z80\"", backend.Name())
	}
	if backend.GetFileExtension() != ".asm" {
		t.Fatalf("GetFileExtension() = %q, want \".asm\"", backend.GetFileExtension())
	}
	if !backend.SupportsFeature(FeatureHardwareMultiply) {
		t.Fatal("z80 backend should support hardware_multiply_routine (mulDiv delegates to multiply_HL_DE)")
	}
	if backend.SupportsFeature("self_modifying_code") {
		t.Fatal("z80 backend should not claim an unsupported feature")
	}
}

func TestZ80BackendGenerateMatchesDirectGenerator(t *testing.T) {
	forms := []ast.Node{list(atom("int16"), atom("X"))}

	backend := GetBackend("z80", &BackendOptions{})
	listing, err := backend.Generate(forms)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	g := gen()
	if err := g.GenerateProgram(forms); err != nil {
		t.Fatalf("GenerateProgram: %v", err)
	}
	if listing != g.Emit.String() {
		t.Fatalf("backend listing diverges from direct generator:\nbackend:\n%s\ndirect:\n%s", listing, g.Emit.String())
	}
	if !strings.Contains(listing, "X:") || !strings.Contains(listing, "DEFW") {
		t.Fatalf("expected the int16 declaration in the listing, got:\n%s", listing)
	}
}

func TestZ80BackendLabelStartOverride(t *testing.T) {
	forms := []ast.Node{list(atom("sub"), atom("foo"),
		list(atom("if"), atom("1"), atom("2"), atom("3")))}

	backend := GetBackend("z80", &BackendOptions{LabelStart: 500})
	listing, err := backend.Generate(forms)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(listing, "L501") {
		t.Fatalf("expected a label above the overridden LabelStart, got:\n%s", listing)
	}
}

func TestGetBackendUnknownNameReturnsNil(t *testing.T) {
	if b := GetBackend("6502", nil); b != nil {
		t.Fatalf("GetBackend for an unregistered name = %v, want nil", b)
	}
}
