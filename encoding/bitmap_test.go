package encoding

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestBitmap(t *testing.T) {
	t.Run("NewBitmap", TestBitmap_NewBitmap)
	t.Run("NewBitmap_OutOfRange", TestBitmap_NewBitmap_OutOfRange)
	t.Run("IsSet", TestBitmap_IsSet)
	t.Run("Decode_Empty", TestBitmap_Decode_Empty)
	t.Run("Decode_Full", TestBitmap_Decode_Full)
	t.Run("Decode_MSBFirst", TestBitmap_Decode_MSBFirst)
	t.Run("RoundTrip", TestBitmap_RoundTrip)
}

func TestBitmap_NewBitmap(t *testing.T) {
	t.Parallel()

	b, err := NewBitmap(1, 8, 9, 128)
	require.NoError(t, err)

	assert.Equal(t, byte(0x81), b[0])
	assert.Equal(t, byte(0x80), b[1])
	assert.Equal(t, byte(0x01), b[15])
}

func TestBitmap_NewBitmap_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := NewBitmap(0)
	assert.EqualError(t, errors.Cause(err), errOutOfRange.Error())

	_, err = NewBitmap(129)
	assert.EqualError(t, errors.Cause(err), errOutOfRange.Error())
	assert.Equal(t, 129, errors.GetFields(err)["field"])
}

func TestBitmap_IsSet(t *testing.T) {
	t.Parallel()

	b, err := NewBitmap(2, 64, 65)
	require.NoError(t, err)

	assert.True(t, b.IsSet(2))
	assert.True(t, b.IsSet(64))
	assert.True(t, b.IsSet(65))
	assert.False(t, b.IsSet(1))
	assert.False(t, b.IsSet(3))
	assert.False(t, b.IsSet(0))
	assert.False(t, b.IsSet(129))
}

func TestBitmap_Decode_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DecodeBitmap(Bitmap{}))
}

func TestBitmap_Decode_Full(t *testing.T) {
	t.Parallel()

	var b Bitmap
	for i := range b {
		b[i] = 0xFF
	}

	fields := DecodeBitmap(b)

	require.Len(t, fields, MaxFieldNumber)
	for i, n := range fields {
		assert.Equal(t, i+1, n)
	}
}

func TestBitmap_Decode_MSBFirst(t *testing.T) {
	t.Parallel()

	b := Bitmap{0xF0, 0x10, 0x05, 0x42, 0x84, 0x61, 0x80, 0x02, 0x02, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00}

	assert.Equal(t,
		[]int{1, 2, 3, 4, 12, 22, 24, 26, 31, 33, 38, 42, 43, 48, 49, 63, 71, 94},
		DecodeBitmap(b))
}

func TestBitmap_RoundTrip(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		set := map[int]struct{}{}
		for j := rnd.Intn(MaxFieldNumber + 1); j > 0; j-- {
			set[rnd.Intn(MaxFieldNumber)+1] = struct{}{}
		}

		want := make([]int, 0, len(set))
		for n := range set {
			want = append(want, n)
		}
		sort.Ints(want)

		b, err := NewBitmap(want...)
		require.NoError(t, err)

		assert.Equal(t, want, DecodeBitmap(b))
		assert.Equal(t, want, b.Fields())
	}
}
