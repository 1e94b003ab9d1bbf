// Package symtab tracks declared global names. It makes no distinction
// between a variable and a subroutine at declaration time; the reference
// context at the use site (call position vs. value position) disambiguates.
package symtab

import "fmt"

// Table is an append-only set of declared names, insertion order preserved.
type Table struct {
	names   []string
	present map[string]bool
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{present: make(map[string]bool)}
}

// Declare adds name to the table. It returns an error if name is already
// declared; redeclaration is never silently accepted.
func (t *Table) Declare(name string) error {
	if t.present[name] {
		return fmt.Errorf("%w: %q", ErrRedeclared, name)
	}
	t.present[name] = true
	t.names = append(t.names, name)
	return nil
}

// Has reports whether name has been declared.
func (t *Table) Has(name string) bool {
	return t.present[name]
}

// Names returns declared names in declaration order. The slice is owned by
// the caller; the table's internal order is never mutated through it.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
