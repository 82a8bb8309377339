package encoding

import (
	"github.com/hexbee-net/errors"
)

// ParseLength decodes a non-negative decimal length written with the digits of cs.
// Signs, spaces and any other byte are rejected.
func ParseLength(b []byte, cs Charset) (int, error) {
	zero, ok := cs.zero()
	if !ok {
		return 0, errors.WithFields(
			errors.WithStack(errUnknownCharset),
			errors.Fields{
				"charset": int(cs),
			})
	}

	if len(b) == 0 {
		return 0, errors.WithStack(errEmptyNumber)
	}

	if len(b) > maxDecimalDigits {
		return 0, errors.WithFields(
			errors.WithStack(errNumberTooLarge),
			errors.Fields{
				"digits": len(b),
			})
	}

	n := 0

	for i, c := range b {
		if c < zero || c > zero+9 {
			return 0, errors.WithFields(
				errors.WithStack(errInvalidDigit),
				errors.Fields{
					"position": i,
					"byte":     c,
					"charset":  cs.String(),
				})
		}

		n = n*10 + int(c-zero)
	}

	return n, nil
}

// FormatLength writes n as a zero padded decimal of width digits in cs.
// It is the inverse of ParseLength and is meant for fixtures and tooling.
func FormatLength(n, width int, cs Charset) ([]byte, error) {
	zero, ok := cs.zero()
	if !ok {
		return nil, errors.WithStack(errUnknownCharset)
	}

	if n < 0 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidDigit),
			errors.Fields{
				"value": n,
			})
	}

	buf := make([]byte, width)

	for i := width - 1; i >= 0; i-- {
		buf[i] = zero + byte(n%10)
		n /= 10
	}

	if n != 0 {
		return nil, errors.WithFields(
			errors.WithStack(errNumberTooLarge),
			errors.Fields{
				"width": width,
			})
	}

	return buf, nil
}
