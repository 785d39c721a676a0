// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "math"

// EncodeCurrent converts a signed current in amps to the supply's 4-byte
// command payload.
//
// The magnitude is round(|amps| * CountsPerAmp), split into big-endian
// bytes. The sign byte is SignPositive for non-negative currents.
//
// Currents whose magnitude does not fit in 16 bits of counts (roughly
// beyond ±202 A, far outside the supply's range) are rejected with a
// RangeError rather than silently wrapping.
func EncodeCurrent(amps float64) (CommandPayload, error) {
	if math.IsNaN(amps) || math.IsInf(amps, 0) {
		return CommandPayload{}, &RangeError{Amps: amps}
	}

	sign := SignPositive
	magnitude := amps
	if amps < 0 {
		sign = SignNegative
		magnitude = -amps
	}

	counts := int(math.Round(magnitude * CountsPerAmp))
	if counts > MaxCounts {
		return CommandPayload{}, &RangeError{Amps: amps, Counts: counts}
	}

	return NewCommandPayload(uint16(counts), sign), nil
}
