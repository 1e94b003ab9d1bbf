// Package emitter buffers the generated assembly listing. Emission is
// append-only; lines are buffered into a slice rather than written
// straight to an io.Writer, so properties of the listing (label/jump
// matching, PUSH/POP balance, determinism) can be checked in memory
// before anything is serialized.
package emitter

import (
	"fmt"
	"io"
	"strings"
)

// Buffer accumulates the two kinds of listing lines: labels and
// instructions. It is append-only and never reordered.
type Buffer struct {
	lines []string
}

// New returns an empty listing buffer.
func New() *Buffer {
	return &Buffer{}
}

// Label appends a "NAME:" line at column 0.
func (b *Buffer) Label(name string) {
	b.lines = append(b.lines, name+":")
}

// Instr appends an instruction line: four spaces, the mnemonic
// left-justified in six columns, a single space, then the operand. An
// empty operand renders as the empty string.
func (b *Buffer) Instr(mnemonic, operand string) {
	if operand == "" {
		b.lines = append(b.lines, fmt.Sprintf("    %-6s ", mnemonic))
		return
	}
	b.lines = append(b.lines, fmt.Sprintf("    %-6s %s", mnemonic, operand))
}

// Lines returns the buffered listing. The slice is owned by the caller.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// String renders the listing as newline-joined text, one trailing newline.
func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// WriteTo writes the listing to w, satisfying io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
