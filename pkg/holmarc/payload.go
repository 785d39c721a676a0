// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "time"

// CommandPayload is the 4-byte value block of a set-current exchange:
// [magnitude high, magnitude low, reserved, sign]. The magnitude is a
// big-endian 16-bit value in device counts; the reserved byte is 0x00 in
// every observed capture.
type CommandPayload [PayloadSize]byte

// NewCommandPayload builds a payload from device counts and a sign flag.
func NewCommandPayload(counts uint16, sign byte) CommandPayload {
	return CommandPayload{byte(counts >> 8), byte(counts & 0xFF), 0x00, sign}
}

// Counts returns the big-endian 16-bit magnitude in device counts.
func (p CommandPayload) Counts() uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

// Sign returns the sign flag byte (SignPositive or SignNegative).
func (p CommandPayload) Sign() byte {
	return p[3]
}

// Negative reports whether the payload encodes a negative current.
func (p CommandPayload) Negative() bool {
	return p[3] == SignNegative
}

// Bytes returns the payload as a slice in wire order.
func (p CommandPayload) Bytes() []byte {
	return []byte{p[0], p[1], p[2], p[3]}
}

// Reading is a decoded field measurement returned by a stop-and-query
// exchange.
type Reading struct {
	FieldMilliTesla float64
	Raw             [QueryCaptureCount]byte
	Timestamp       time.Time
}

// Negative reports whether the supply flagged the field as negative.
func (r Reading) Negative() bool {
	return r.Raw[2] == FlagFieldNegative
}
