package codegen

import (
	"fmt"

	"github.com/z80gen/ddcg/pkg/ast"
)

// Backend is the extension point for registering more than one
// code-generation target. This module registers exactly one, under
// "z80", but the interface is what a second target would implement
// against, not a documentation placeholder.
type Backend interface {
	// Name returns the backend's target identifier, e.g. "z80".
	Name() string

	// Generate runs code generation over a parsed program's top-level
	// forms and returns the finished assembly listing.
	Generate(forms []ast.Node) (string, error)

	// GetFileExtension returns the conventional file extension for this
	// backend's output.
	GetFileExtension() string

	// SupportsFeature reports whether this backend implements the named
	// optional feature (see the Feature* constants).
	SupportsFeature(feature string) bool
}

// BackendOptions configures a backend instance. The register set is
// fixed by the destination discipline, so there are no allocation or
// instruction-selection toggles. Of the generator's Options
// (generator.go) only LabelStart is exposed; FoldTailReturn keeps its
// default.
type BackendOptions struct {
	// LabelStart overrides the label counter's starting value. Zero
	// means "use the generator's default" (LabelSentinel).
	LabelStart int
}

// Only the features this generator's instruction selection actually
// exercises are declared.
const (
	Feature16BitPointers    = "16bit_pointers"
	FeatureIndirectCalls    = "indirect_calls"
	FeatureBitManipulation  = "bit_manipulation"
	FeatureHardwareMultiply = "hardware_multiply_routine"
	FeatureHardwareDivide   = "hardware_divide_routine"
)

// BackendFactory builds a Backend from options.
type BackendFactory func(options *BackendOptions) Backend

var backends = make(map[string]BackendFactory)

// RegisterBackend makes a backend factory available under name.
func RegisterBackend(name string, factory BackendFactory) {
	backends[name] = factory
}

// GetBackend looks up a registered backend by name and constructs it, or
// returns nil if no backend is registered under that name.
func GetBackend(name string, options *BackendOptions) Backend {
	if factory, ok := backends[name]; ok {
		return factory(options)
	}
	return nil
}

// ListBackends returns the names of all registered backends.
func ListBackends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

func init() {
	RegisterBackend("z80", func(options *BackendOptions) Backend {
		return &z80Backend{opts: options}
	})
}

// z80Backend is this module's sole registered backend. It builds a fresh
// Generator per Generate call and renders the finished listing to text.
type z80Backend struct {
	opts *BackendOptions
}

func (b *z80Backend) Name() string { return "z80" }

func (b *z80Backend) GetFileExtension() string { return ".asm" }

func (b *z80Backend) SupportsFeature(feature string) bool {
	switch feature {
	case Feature16BitPointers, FeatureIndirectCalls, FeatureBitManipulation,
		FeatureHardwareMultiply, FeatureHardwareDivide:
		return true
	default:
		return false
	}
}

func (b *z80Backend) Generate(forms []ast.Node) (string, error) {
	genOpts := DefaultOptions()
	if b.opts != nil && b.opts.LabelStart != 0 {
		genOpts.LabelStart = b.opts.LabelStart
	}
	g := New(genOpts)
	if err := g.GenerateProgram(forms); err != nil {
		return "", fmt.Errorf("z80 backend: %w", err)
	}
	return g.Emit.String(), nil
}
