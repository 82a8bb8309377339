package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/encoding"
	"github.com/hexbee-net/ipm/schema"
)

const (
	// ErrInvalidLengthPrefix is returned when the length digits of a variable element are short or not decimal.
	ErrInvalidLengthPrefix = errors.Error("invalid length prefix")
	// ErrLengthMismatch is returned when fewer bytes remain than a variable element declares.
	ErrLengthMismatch = errors.Error("length mismatch")
)

// Source is the byte source elements are read from.
type Source interface {
	// ReadExactly returns n bytes or fails.
	ReadExactly(n int) ([]byte, error)
	// ReadAtMost returns up to n bytes, fewer only at the end of the data.
	ReadAtMost(n int) ([]byte, error)
}

// Policy selects how element reads handle missing bytes.
type Policy int

const (
	// Strict fails on any element that cannot be read completely.
	Strict Policy = iota
	// Permissive treats a missing length prefix as an absent element and
	// returns short payloads as they are.
	Permissive
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return "unknown"
	}
}

// FieldReader reads one data element. Its Kind selects the decoding.
type FieldReader struct {
	Field  int
	Kind   schema.Kind
	Length int
}

// Read decodes the element at the cursor of src.
// A nil result without error means the element is absent (Permissive only).
func (f FieldReader) Read(src Source, p Policy, cs encoding.Charset) ([]byte, error) {
	switch f.Kind {
	case schema.Fixed:
		return f.readFixed(src, p)
	case schema.LLVar, schema.LLLVar:
		return f.readVariable(src, p, cs)
	default:
		return nil, errors.WithFields(
			errors.WithStack(schema.ErrInvalidFieldSpec),
			errors.Fields{
				"field": f.Field,
				"kind":  int(f.Kind),
			})
	}
}

func (f FieldReader) readFixed(src Source, p Policy) ([]byte, error) {
	if p == Permissive {
		buf, err := src.ReadAtMost(f.Length)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"field": f.Field})
		}

		return buf, nil
	}

	buf, err := src.ReadExactly(f.Length)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"field": f.Field})
	}

	return buf, nil
}

func (f FieldReader) readVariable(src Source, p Policy, cs encoding.Charset) ([]byte, error) {
	width := f.Kind.PrefixLength()

	prefix, err := src.ReadAtMost(width)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"field": f.Field})
	}

	if len(prefix) == 0 && p == Permissive {
		return nil, nil
	}

	if len(prefix) < width {
		return nil, errors.WithFields(
			errors.WithStack(ErrInvalidLengthPrefix),
			errors.Fields{
				"field":    f.Field,
				"expected": width,
				"actual":   len(prefix),
			})
	}

	length, err := encoding.ParseLength(prefix, cs)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrInvalidLengthPrefix),
			errors.Fields{
				"field":  f.Field,
				"prefix": string(prefix),
				"reason": err.Error(),
			})
	}

	payload, err := src.ReadAtMost(length)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"field": f.Field})
	}

	if len(payload) < length && p == Strict {
		return nil, errors.WithFields(
			errors.WithStack(ErrLengthMismatch),
			errors.Fields{
				"field":    f.Field,
				"declared": length,
				"actual":   len(payload),
			})
	}

	return payload, nil
}
