package schema

import (
	"sort"
	"strings"

	"github.com/hexbee-net/errors"
)

// ErrInvalidFieldSpec is returned when a field configuration cannot describe a message layout.
const ErrInvalidFieldSpec = errors.Error("invalid field spec")

// MaxFieldNumber is the highest field number a configuration may describe.
const MaxFieldNumber = 128

// Kind is the encoding of a data element.
type Kind int

const (
	// Fixed elements have a configured length.
	Fixed Kind = iota + 1
	// LLVar elements are preceded by a two digit length.
	LLVar
	// LLLVar elements are preceded by a three digit length.
	LLLVar
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "FIXED"
	case LLVar:
		return "LLVAR"
	case LLLVar:
		return "LLLVAR"
	default:
		return "UNKNOWN"
	}
}

// PrefixLength returns the number of length digits preceding an element of kind k.
func (k Kind) PrefixLength() int {
	switch k {
	case LLVar:
		return 2
	case LLLVar:
		return 3
	default:
		return 0
	}
}

// ParseKind returns the Kind named s. Names are case insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIXED":
		return Fixed, nil
	case "LLVAR":
		return LLVar, nil
	case "LLLVAR":
		return LLLVar, nil
	default:
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidFieldSpec),
			errors.Fields{
				"field_type": s,
			})
	}
}

// FieldSpec describes how one data element is laid out.
type FieldSpec struct {
	Kind Kind
	// Length is the size of a Fixed element. It is ignored for other kinds.
	Length int
	// Name is informational and only used in diagnostics.
	Name string
}

// FixedField returns the spec of a fixed element of length n.
func FixedField(n int) FieldSpec {
	return FieldSpec{Kind: Fixed, Length: n}
}

// LLVarField returns the spec of an element with a two digit length prefix.
func LLVarField() FieldSpec {
	return FieldSpec{Kind: LLVar}
}

// LLLVarField returns the spec of an element with a three digit length prefix.
func LLLVarField() FieldSpec {
	return FieldSpec{Kind: LLLVar}
}

// Validate checks that the spec describes a readable element.
func (s FieldSpec) Validate() error {
	switch s.Kind {
	case Fixed:
		if s.Length <= 0 {
			return errors.WithFields(
				errors.WithStack(ErrInvalidFieldSpec),
				errors.Fields{
					"field_type":   s.Kind.String(),
					"field_length": s.Length,
				})
		}
	case LLVar, LLLVar:
	default:
		return errors.WithFields(
			errors.WithStack(ErrInvalidFieldSpec),
			errors.Fields{
				"kind": int(s.Kind),
			})
	}

	return nil
}

// Config maps field numbers to their layout. Field numbers missing from the
// configuration are skipped by the decoder.
type Config map[int]FieldSpec

// Validate checks every entry of c. An empty configuration is invalid.
func (c Config) Validate() error {
	if len(c) == 0 {
		return errors.WithStack(ErrInvalidFieldSpec)
	}

	for _, n := range c.Fields() {
		if n < 1 || n > MaxFieldNumber {
			return errors.WithFields(
				errors.WithStack(ErrInvalidFieldSpec),
				errors.Fields{
					"field": n,
				})
		}

		if err := c[n].Validate(); err != nil {
			return errors.WithFields(err, errors.Fields{
				"field": n,
			})
		}
	}

	return nil
}

// MaxField returns the highest configured field number.
func (c Config) MaxField() int {
	max := 0

	for n := range c {
		if n > max {
			max = n
		}
	}

	return max
}

// Fields returns the configured field numbers in ascending order.
func (c Config) Fields() []int {
	fields := make([]int, 0, len(c))

	for n := range c {
		fields = append(fields, n)
	}

	sort.Ints(fields)

	return fields
}
