// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeCurrent_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		amps     float64
		expected CommandPayload
	}{
		{
			name:     "zero",
			amps:     0.0,
			expected: CommandPayload{0x00, 0x00, 0x00, 0x01},
		},
		{
			name:     "0.1 A",
			amps:     0.1,
			expected: CommandPayload{0x00, 0x20, 0x00, 0x01}, // round(32.41) = 32
		},
		{
			name:     "1.0 A",
			amps:     1.0,
			expected: CommandPayload{0x01, 0x44, 0x00, 0x01}, // round(324.10) = 324
		},
		{
			name:     "-2.0 A",
			amps:     -2.0,
			expected: CommandPayload{0x02, 0x88, 0x00, 0x00}, // round(648.21) = 648
		},
		{
			name:     "-3.9 A matches the captured payload",
			amps:     -3.9,
			expected: CommandPayload{0x04, 0xF0, 0x00, 0x00}, // 1264, the one capture row on the fit line
		},
		{
			name:     "4.0 A",
			amps:     4.0,
			expected: CommandPayload{0x05, 0x10, 0x00, 0x01}, // round(1296.41) = 1296
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := EncodeCurrent(tt.amps)
			if err != nil {
				t.Fatalf("EncodeCurrent(%v) error: %v", tt.amps, err)
			}
			if payload != tt.expected {
				t.Errorf("EncodeCurrent(%v) = %s, want %s",
					tt.amps, FormatBytes(payload.Bytes()), FormatBytes(tt.expected.Bytes()))
			}
		})
	}
}

func TestEncodeCurrent_SignLaw(t *testing.T) {
	// For all amps in the supply's range, the payload sign byte must
	// reflect amps >= 0.
	for amps := -4.0; amps <= 4.0; amps += 0.25 {
		payload, err := EncodeCurrent(amps)
		if err != nil {
			t.Fatalf("EncodeCurrent(%v) error: %v", amps, err)
		}
		wantPositive := amps >= 0
		gotPositive := payload.Sign() == SignPositive
		if gotPositive != wantPositive {
			t.Errorf("EncodeCurrent(%v) sign=0x%02X, want positive=%v", amps, payload.Sign(), wantPositive)
		}
	}
}

func TestEncodeCurrent_MagnitudeSymmetry(t *testing.T) {
	for amps := 0.1; amps <= 4.0; amps += 0.3 {
		pos, err := EncodeCurrent(amps)
		if err != nil {
			t.Fatalf("EncodeCurrent(%v) error: %v", amps, err)
		}
		neg, err := EncodeCurrent(-amps)
		if err != nil {
			t.Fatalf("EncodeCurrent(%v) error: %v", -amps, err)
		}
		if pos.Counts() != neg.Counts() {
			t.Errorf("counts differ for ±%v A: %d vs %d", amps, pos.Counts(), neg.Counts())
		}
	}
}

func TestEncodeCurrent_ReservedByteAlwaysZero(t *testing.T) {
	for amps := -4.0; amps <= 4.0; amps += 0.7 {
		payload, err := EncodeCurrent(amps)
		if err != nil {
			t.Fatalf("EncodeCurrent(%v) error: %v", amps, err)
		}
		if payload[2] != 0x00 {
			t.Errorf("EncodeCurrent(%v) reserved byte = 0x%02X, want 0x00", amps, payload[2])
		}
	}
}

func TestEncodeCurrent_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		amps float64
	}{
		{name: "overflow positive", amps: 250.0},
		{name: "overflow negative", amps: -250.0},
		{name: "NaN", amps: math.NaN()},
		{name: "positive infinity", amps: math.Inf(1)},
		{name: "negative infinity", amps: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeCurrent(tt.amps)
			if err == nil {
				t.Fatalf("EncodeCurrent(%v) expected error, got none", tt.amps)
			}
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Errorf("EncodeCurrent(%v) error = %T, want *RangeError", tt.amps, err)
			}
		})
	}
}

func TestEncodeCurrent_BoundaryFits(t *testing.T) {
	// The largest encodable magnitude sits just under MaxCounts counts.
	amps := float64(MaxCounts) / CountsPerAmp
	payload, err := EncodeCurrent(amps)
	if err != nil {
		t.Fatalf("EncodeCurrent(%v) error: %v", amps, err)
	}
	if payload.Counts() != MaxCounts {
		t.Errorf("boundary counts = %d, want %d", payload.Counts(), MaxCounts)
	}
}
