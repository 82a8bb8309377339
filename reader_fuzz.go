//go:build gofuzz
// +build gofuzz

package ipm

import (
	"bytes"

	"github.com/hexbee-net/ipm/schema"
)

var fuzzConfig = schema.Config{
	2:  schema.LLVarField(),
	3:  schema.FixedField(6),
	4:  schema.FixedField(12),
	12: schema.FixedField(12),
	48: schema.LLLVarField(),
	71: schema.FixedField(8),
}

func FuzzReader(data []byte) int {
	r, err := NewReader(bytes.NewReader(data), fuzzConfig)
	if err != nil {
		return 0
	}

	if _, err := r.ReadAll(); err != nil {
		return 0
	}

	return 1
}

func FuzzReaderRDW(data []byte) int {
	r, err := NewReader(bytes.NewReader(data), fuzzConfig, WithRDW(), WithRecordLengthCheck())
	if err != nil {
		return 0
	}

	if _, err := r.ReadAll(); err != nil {
		return 0
	}

	return 1
}
