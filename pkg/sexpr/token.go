package sexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// isNumericToken reports whether text is a numeric literal by inspecting
// only its first character(s), per the token classification rules: a
// leading decimal digit is a number, a leading '-' followed by a decimal
// digit is a negative number, anything else is a symbol reference.
func isNumericToken(text string) bool {
	if text == "" {
		return false
	}
	if isDecimalDigit(text[0]) {
		return true
	}
	if text[0] == '-' && len(text) > 1 && isDecimalDigit(text[1]) {
		return true
	}
	return false
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// toNumber parses a numeric literal token into its 16-bit value. It
// recognizes hex (0x/0X), octal (0o/0O or a bare leading zero), binary
// (0b/0B), and decimal forms, with an optional leading '-' negating the
// parsed magnitude. Overflow beyond 16 bits is the caller's
// responsibility: the value wraps rather than being diagnosed.
//
// Only the prefix conventions are recognized. An assembler-style suffix
// form ("0FFh", "17o") starts with a digit, so isNumericToken classifies
// it as numeric, and toNumber then rejects it with ErrNumericForm.
func toNumber(text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty numeric token", ErrNumericForm)
	}

	neg := false
	if text[0] == '-' {
		neg = true
		text = text[1:]
	}
	if text == "" {
		return 0, fmt.Errorf("%w: empty numeric token", ErrNumericForm)
	}

	var mag int64
	var err error
	switch {
	case hasFoldPrefix(text, "0x"):
		mag, err = strconv.ParseInt(text[2:], 16, 64)
	case hasFoldPrefix(text, "0o"):
		mag, err = strconv.ParseInt(text[2:], 8, 64)
	case hasFoldPrefix(text, "0b"):
		mag, err = strconv.ParseInt(text[2:], 2, 64)
	case text[0] == '0' && len(text) > 1:
		mag, err = strconv.ParseInt(text[1:], 8, 64)
	default:
		mag, err = strconv.ParseInt(text, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrNumericForm, text, err)
	}

	if neg {
		mag = -mag
	}
	return mag & 0xFFFF, nil
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
