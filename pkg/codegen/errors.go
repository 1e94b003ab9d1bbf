package codegen

import "errors"

// Every generation failure is fatal at the point of detection; there is
// no partial-listing output on failure, no local recovery.
var (
	ErrUnsupportedForm  = errors.New("unsupported form")
	ErrUndeclaredSymbol = errors.New("symbol not declared")
	ErrRedeclaration    = errors.New("symbol already declared")
	ErrUnsupportedArg   = errors.New("unsupported argument")
	ErrUnsupportedSize  = errors.New("unsupported size")
	ErrUnsupportedDest  = errors.New("unsupported destination")
	ErrEmptyOperator    = errors.New("empty operator")
	ErrNumericForm      = errors.New("invalid numeric literal")
)
