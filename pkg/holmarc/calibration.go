// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "math"

// CalibrationPoint is one payload captured from the vendor software at a
// known commanded current.
type CalibrationPoint struct {
	Amps    float64
	Payload CommandPayload
}

// CalibrationTable holds every payload captured from the vendor software.
// The table is not consulted by EncodeCurrent: the arithmetic fit through
// the 0.1 A and 4.0 A anchors supersedes it. It is kept as reference data
// for the calibrate sweep and as regression fixtures.
//
// Note the table is not linear in counts per amp (1.0 A maps to 222
// counts but 4.0 A to 1299), so no single-scale encoder can reproduce
// every row; the residuals are visible in the calibrate output.
var CalibrationTable = []CalibrationPoint{
	{Amps: -4.0, Payload: CommandPayload{0x05, 0x13, 0x00, 0x00}}, // 1299 counts
	{Amps: -3.9, Payload: CommandPayload{0x04, 0xF0, 0x00, 0x00}}, // 1264 counts
	{Amps: -3.8, Payload: CommandPayload{0x04, 0xCD, 0x00, 0x00}}, // 1229 counts
	{Amps: -2.0, Payload: CommandPayload{0x02, 0x29, 0x00, 0x00}}, // 553 counts
	{Amps: -1.0, Payload: CommandPayload{0x00, 0xDE, 0x00, 0x00}}, // 222 counts
	{Amps: -0.1, Payload: CommandPayload{0x00, 0x23, 0x00, 0x00}}, // 35 counts
	{Amps: 1.0, Payload: CommandPayload{0x00, 0xDE, 0x00, 0x01}},  // 222 counts
	{Amps: 4.0, Payload: CommandPayload{0x05, 0x13, 0x00, 0x01}},  // 1299 counts
}

// LookupCalibration returns the captured payload for amps, if one exists.
// Matching tolerates float noise from sweep arithmetic.
func LookupCalibration(amps float64) (CalibrationPoint, bool) {
	for _, p := range CalibrationTable {
		if math.Abs(p.Amps-amps) < 1e-9 {
			return p, true
		}
	}
	return CalibrationPoint{}, false
}
