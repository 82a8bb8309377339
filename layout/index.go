package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/encoding"
	"github.com/hexbee-net/ipm/schema"
)

// Option configures an Index.
type Option func(*Index)

// WithPolicy sets the policy used for every element read. The default is Strict.
func WithPolicy(p Policy) Option {
	return func(i *Index) {
		i.policy = p
	}
}

// WithCharset sets the code page of length prefixes. The default is ASCII.
func WithCharset(cs encoding.Charset) Option {
	return func(i *Index) {
		i.charset = cs
	}
}

// Index holds the reader of every configured field, indexed by field number.
type Index struct {
	readers []FieldReader
	policy  Policy
	charset encoding.Charset
}

// NewIndex builds the readers described by cfg. It fails with
// schema.ErrInvalidFieldSpec before anything is read if cfg is not usable.
func NewIndex(cfg schema.Config, opts ...Option) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to build field index")
	}

	idx := &Index{
		readers: make([]FieldReader, cfg.MaxField()+1),
		policy:  Strict,
		charset: encoding.ASCII,
	}

	for n, spec := range cfg {
		idx.readers[n] = FieldReader{
			Field:  n,
			Kind:   spec.Kind,
			Length: spec.Length,
		}
	}

	for _, opt := range opts {
		opt(idx)
	}

	return idx, nil
}

// Width returns the number of element slots of a decoded message:
// the highest configured field number plus one.
func (i *Index) Width() int {
	return len(i.readers)
}

// Policy returns the policy elements are read with.
func (i *Index) Policy() Policy {
	return i.policy
}

// Charset returns the code page of length prefixes.
func (i *Index) Charset() encoding.Charset {
	return i.charset
}

// Reader returns the reader of field n, if n is configured.
func (i *Index) Reader(n int) (FieldReader, bool) {
	if n < 1 || n >= len(i.readers) || i.readers[n].Kind == 0 {
		return FieldReader{}, false
	}

	return i.readers[n], true
}

// Decode reads the elements of fields, which must be in ascending order.
// Fields that are not configured are skipped without reading.
// The result has Width slots; absent elements are nil.
func (i *Index) Decode(src Source, fields []int) ([][]byte, error) {
	elements := make([][]byte, len(i.readers))

	for _, n := range fields {
		r, ok := i.Reader(n)
		if !ok {
			continue
		}

		v, err := r.Read(src, i.policy, i.charset)
		if err != nil {
			return nil, err
		}

		elements[n] = v
	}

	return elements, nil
}
