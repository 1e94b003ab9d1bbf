package sexpr

import "errors"

// ErrNumericForm is returned when ParseNumber is asked to parse an empty
// or malformed numeric token.
var ErrNumericForm = errors.New("invalid numeric literal")

// ErrSyntax is returned for malformed S-expression syntax (unbalanced
// parens, unexpected end of input). Reader-level, distinct from the
// generator's own error taxonomy.
var ErrSyntax = errors.New("syntax error")
