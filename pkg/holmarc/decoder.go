// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "time"

// DecodeField converts the three bytes captured during a stop-and-query
// exchange into a signed field reading.
//
// b1 and b2 are the big-endian 16-bit magnitude in tenths of millitesla;
// b3 is the sign flag, where 0x01 means negative. Any other flag value is
// treated as non-negative, matching observed behavior.
func DecodeField(b1, b2, b3 byte) Reading {
	magnitude := uint16(b1)<<8 | uint16(b2)
	field := float64(magnitude) / fieldScale
	if b3 == FlagFieldNegative {
		field = -field
	}
	return Reading{
		FieldMilliTesla: field,
		Raw:             [QueryCaptureCount]byte{b1, b2, b3},
		Timestamp:       time.Now(),
	}
}
