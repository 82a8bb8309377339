//go:build gofuzz
// +build gofuzz

package encoding

func FuzzParseLength(data []byte) int {
	n, err := ParseLength(data, ASCII)
	if err != nil {
		return 0
	}

	if n < 0 {
		panic("negative length")
	}

	return 1
}
