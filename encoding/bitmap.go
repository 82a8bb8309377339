package encoding

import (
	"github.com/hexbee-net/errors"
)

const (
	// BitmapSize is the size in bytes of the presence bitmap that follows the MTI.
	BitmapSize = 16
	// MaxFieldNumber is the highest data element number a bitmap can address.
	MaxFieldNumber = BitmapSize * 8
)

// Bitmap is a flat 128-bit presence vector. Bit 7 (MSB) of byte 0 is field 1.
// Field 1 is an ordinary field here; it does not announce a chained bitmap.
type Bitmap [BitmapSize]byte

// NewBitmap returns a Bitmap with exactly the given fields set.
func NewBitmap(fields ...int) (Bitmap, error) {
	var b Bitmap

	for _, n := range fields {
		if n < 1 || n > MaxFieldNumber {
			return Bitmap{}, errors.WithFields(
				errors.WithStack(errOutOfRange),
				errors.Fields{
					"field": n,
				})
		}

		b[(n-1)/8] |= 1 << (7 - uint((n-1)%8))
	}

	return b, nil
}

// IsSet reports whether field n is marked present.
func (b Bitmap) IsSet(n int) bool {
	if n < 1 || n > MaxFieldNumber {
		return false
	}

	return b[(n-1)/8]&(1<<(7-uint((n-1)%8))) != 0
}

// Fields returns the set field numbers in ascending order.
func (b Bitmap) Fields() []int {
	return DecodeBitmap(b)
}

// DecodeBitmap returns the numbers of the fields set in b, in ascending order.
func DecodeBitmap(b Bitmap) []int {
	fields := make([]int, 0, MaxFieldNumber)

	for i, v := range b {
		if v == 0 {
			continue
		}

		for j := 0; j < 8; j++ {
			if v&(0x80>>uint(j)) != 0 {
				fields = append(fields, i*8+j+1)
			}
		}
	}

	return fields
}
