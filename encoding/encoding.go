package encoding

import (
	"github.com/hexbee-net/errors"
)

const (
	errOutOfRange     = errors.Error("field number out of range")
	errInvalidDigit   = errors.Error("invalid decimal digit")
	errEmptyNumber    = errors.Error("empty decimal number")
	errUnknownCharset = errors.Error("unknown charset")
	errNumberTooLarge = errors.Error("decimal number too large")
)

// maxDecimalDigits keeps parsed numbers within int32 on every platform.
const maxDecimalDigits = 9

// Charset identifies the code page length prefixes are written in.
type Charset int

const (
	// ASCII expects the digits '0'..'9' (0x30..0x39).
	ASCII Charset = iota
	// EBCDIC expects the digits 0xF0..0xF9 (cp500, cp037, cp1047).
	EBCDIC
)

func (c Charset) String() string {
	switch c {
	case ASCII:
		return "ascii"
	case EBCDIC:
		return "ebcdic"
	default:
		return "unknown"
	}
}

// ParseCharset returns the Charset matching name (case sensitive, as produced by String).
func ParseCharset(name string) (Charset, error) {
	switch name {
	case "ascii", "latin-1", "latin1":
		return ASCII, nil
	case "ebcdic", "cp500", "cp037", "cp1047":
		return EBCDIC, nil
	default:
		return ASCII, errors.WithFields(
			errors.WithStack(errUnknownCharset),
			errors.Fields{
				"charset": name,
			})
	}
}

func (c Charset) zero() (byte, bool) {
	switch c {
	case ASCII:
		return '0', true
	case EBCDIC:
		return 0xF0, true
	default:
		return 0, false
	}
}
