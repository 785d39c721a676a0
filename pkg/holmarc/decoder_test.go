// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"math"
	"testing"
)

func fieldApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDecodeField_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		b1, b2   byte
		b3       byte
		expected float64
	}{
		{name: "22.2 mT positive", b1: 0x00, b2: 0xDE, b3: 0x00, expected: 22.2},
		{name: "22.2 mT negative", b1: 0x00, b2: 0xDE, b3: 0x01, expected: -22.2},
		{name: "zero field", b1: 0x00, b2: 0x00, b3: 0x00, expected: 0.0},
		{name: "high magnitude", b1: 0x05, b2: 0x13, b3: 0x00, expected: 129.9},
		{name: "high magnitude negative", b1: 0x05, b2: 0x13, b3: 0x01, expected: -129.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DecodeField(tt.b1, tt.b2, tt.b3)
			if !fieldApproxEqual(r.FieldMilliTesla, tt.expected) {
				t.Errorf("DecodeField(0x%02X, 0x%02X, 0x%02X) = %v mT, want %v mT",
					tt.b1, tt.b2, tt.b3, r.FieldMilliTesla, tt.expected)
			}
			if r.Raw != [3]byte{tt.b1, tt.b2, tt.b3} {
				t.Errorf("raw bytes not preserved: got %v", r.Raw)
			}
		})
	}
}

func TestDecodeField_SignFlipLaw(t *testing.T) {
	// Decoding the same magnitude with both flag values must yield exact
	// negations of each other.
	for magnitude := 0; magnitude <= 0xFFFF; magnitude += 997 {
		b1 := byte(magnitude >> 8)
		b2 := byte(magnitude & 0xFF)
		pos := DecodeField(b1, b2, 0x00)
		neg := DecodeField(b1, b2, 0x01)
		if !fieldApproxEqual(pos.FieldMilliTesla, -neg.FieldMilliTesla) {
			t.Errorf("magnitude %d: %v != -(%v)", magnitude, pos.FieldMilliTesla, neg.FieldMilliTesla)
		}
		if pos.FieldMilliTesla < 0 {
			t.Errorf("magnitude %d: flag 0x00 decoded negative", magnitude)
		}
	}
}

func TestDecodeField_UnknownFlagTreatedAsPositive(t *testing.T) {
	// Only 0x01 negates; anything else is non-negative, as observed.
	r := DecodeField(0x00, 0xDE, 0x02)
	if r.FieldMilliTesla < 0 {
		t.Errorf("flag 0x02 decoded negative: %v", r.FieldMilliTesla)
	}
	if r.Negative() {
		t.Error("Negative() should be false for flag 0x02")
	}
}
