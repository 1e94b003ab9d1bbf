package symtab

import "errors"

// ErrRedeclared is returned by Declare when a name is already present.
var ErrRedeclared = errors.New("symbol already declared")
