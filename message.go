package ipm

import (
	"github.com/hexbee-net/ipm/encoding"
)

// MTISize is the size of the message type indicator.
const MTISize = 4

// Message is one decoded message.
type Message struct {
	MTI    [MTISize]byte
	Bitmap encoding.Bitmap
	// Elements is indexed by field number. Its length is the highest configured
	// field number plus one. A nil entry is an absent element.
	Elements [][]byte
	// Offset is the position of the message in the logical stream, framing included.
	Offset int64
}

// Element returns the value of field n and whether it is present.
func (m *Message) Element(n int) ([]byte, bool) {
	if n < 0 || n >= len(m.Elements) || m.Elements[n] == nil {
		return nil, false
	}

	return m.Elements[n], true
}

// Fields returns the numbers of the present elements in ascending order.
func (m *Message) Fields() []int {
	fields := make([]int, 0, len(m.Elements))

	for n, v := range m.Elements {
		if v != nil {
			fields = append(fields, n)
		}
	}

	return fields
}
