package layout

import (
	"bytes"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/encoding"
	"github.com/hexbee-net/ipm/schema"
	"github.com/hexbee-net/ipm/stream"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func source(data string) *stream.Bounded {
	return stream.NewBounded(bytes.NewReader([]byte(data)))
}

func TestFieldReader(t *testing.T) {
	t.Run("Fixed", TestFieldReader_Fixed)
	t.Run("Fixed_Short", TestFieldReader_Fixed_Short)
	t.Run("LLVar", TestFieldReader_LLVar)
	t.Run("LLLVar", TestFieldReader_LLLVar)
	t.Run("EmptyPayload", TestFieldReader_EmptyPayload)
	t.Run("ShortPrefix", TestFieldReader_ShortPrefix)
	t.Run("InvalidPrefix", TestFieldReader_InvalidPrefix)
	t.Run("LengthMismatch", TestFieldReader_LengthMismatch)
	t.Run("EBCDIC", TestFieldReader_EBCDIC)
	t.Run("Permissive", TestFieldReader_Permissive)
	t.Run("UnknownKind", TestFieldReader_UnknownKind)
}

func TestFieldReader_Fixed(t *testing.T) {
	t.Parallel()

	src := source("0123456789")
	r := FieldReader{Field: 3, Kind: schema.Fixed, Length: 6}

	v, err := r.Read(src, Strict, encoding.ASCII)
	require.NoError(t, err)

	assert.Equal(t, []byte("012345"), v)
	assert.Equal(t, int64(6), src.Offset())
}

func TestFieldReader_Fixed_Short(t *testing.T) {
	t.Parallel()

	r := FieldReader{Field: 4, Kind: schema.Fixed, Length: 12}

	_, err := r.Read(source("00000"), Strict, encoding.ASCII)

	assert.EqualError(t, errors.Cause(err), stream.ErrEndOfStream.Error())
	assert.Equal(t, 4, errors.GetFields(err)["field"])
}

func TestFieldReader_LLVar(t *testing.T) {
	t.Parallel()

	src := source("05hello world")
	r := FieldReader{Field: 2, Kind: schema.LLVar}

	v, err := r.Read(src, Strict, encoding.ASCII)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), v)
	assert.Equal(t, int64(7), src.Offset())
}

func TestFieldReader_LLLVar(t *testing.T) {
	t.Parallel()

	src := source("005hello")
	r := FieldReader{Field: 48, Kind: schema.LLLVar}

	v, err := r.Read(src, Strict, encoding.ASCII)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello"), v)
	assert.Equal(t, int64(8), src.Offset())
}

func TestFieldReader_EmptyPayload(t *testing.T) {
	t.Parallel()

	r := FieldReader{Field: 2, Kind: schema.LLVar}

	v, err := r.Read(source("00rest"), Strict, encoding.ASCII)
	require.NoError(t, err)

	assert.NotNil(t, v)
	assert.Len(t, v, 0)
}

func TestFieldReader_ShortPrefix(t *testing.T) {
	t.Parallel()

	for _, p := range []Policy{Strict, Permissive} {
		r := FieldReader{Field: 2, Kind: schema.LLVar}

		v, err := r.Read(source("1"), p, encoding.ASCII)

		assert.Nil(t, v, p.String())
		assert.EqualError(t, errors.Cause(err), ErrInvalidLengthPrefix.Error(), p.String())
		assert.Equal(t, 1, errors.GetFields(err)["actual"], p.String())
	}

	_, err := FieldReader{Field: 2, Kind: schema.LLVar}.Read(source(""), Strict, encoding.ASCII)
	assert.EqualError(t, errors.Cause(err), ErrInvalidLengthPrefix.Error())
}

func TestFieldReader_InvalidPrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]FieldReader{
		"1h":    {Field: 2, Kind: schema.LLVar},
		"01h":   {Field: 3, Kind: schema.LLLVar},
		"-1xy":  {Field: 2, Kind: schema.LLVar},
		" 5abc": {Field: 2, Kind: schema.LLVar},
	}

	for in, r := range tests {
		_, err := r.Read(source(in), Strict, encoding.ASCII)

		assert.EqualError(t, errors.Cause(err), ErrInvalidLengthPrefix.Error(), in)
		assert.Equal(t, r.Field, errors.GetFields(err)["field"], in)
	}
}

func TestFieldReader_LengthMismatch(t *testing.T) {
	t.Parallel()

	r := FieldReader{Field: 2, Kind: schema.LLVar}

	_, err := r.Read(source("10short"), Strict, encoding.ASCII)

	assert.EqualError(t, errors.Cause(err), ErrLengthMismatch.Error())

	fields := errors.GetFields(err)
	assert.Equal(t, 10, fields["declared"])
	assert.Equal(t, 5, fields["actual"])
}

func TestFieldReader_EBCDIC(t *testing.T) {
	t.Parallel()

	data := []byte{0xF0, 0xF3, 0xC1, 0xC2, 0xC3}
	r := FieldReader{Field: 2, Kind: schema.LLVar}

	v, err := r.Read(stream.NewBounded(bytes.NewReader(data)), Strict, encoding.EBCDIC)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC1, 0xC2, 0xC3}, v)

	_, err = r.Read(source("03abc"), Strict, encoding.EBCDIC)
	assert.EqualError(t, errors.Cause(err), ErrInvalidLengthPrefix.Error())
}

func TestFieldReader_Permissive(t *testing.T) {
	t.Parallel()

	r := FieldReader{Field: 2, Kind: schema.LLVar}

	v, err := r.Read(source(""), Permissive, encoding.ASCII)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = r.Read(source("10short"), Permissive, encoding.ASCII)
	require.NoError(t, err)
	assert.Equal(t, []byte("short"), v)

	f := FieldReader{Field: 4, Kind: schema.Fixed, Length: 12}

	v, err = f.Read(source("0000"), Permissive, encoding.ASCII)
	require.NoError(t, err)
	assert.Equal(t, []byte("0000"), v)
}

func TestFieldReader_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := FieldReader{Field: 9}.Read(source("abc"), Strict, encoding.ASCII)

	assert.EqualError(t, errors.Cause(err), schema.ErrInvalidFieldSpec.Error())
}
