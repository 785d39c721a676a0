// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"fmt"
	"math"
)

// AnomalyType represents different kinds of payload or reading anomalies.
type AnomalyType int

const (
	AnomalyReservedByte AnomalyType = iota
	AnomalyInvalidSign
	AnomalyCountsOverRange
	AnomalyFieldOverRange
)

// MaxCalibratedCounts is the largest magnitude seen in any capture
// (4.0 A). Payloads beyond it drive the supply outside captured territory.
const MaxCalibratedCounts = calCountsHigh

// MaxPlausibleField is a sanity ceiling in millitesla, well above anything
// the supply produced at its 4.0 A drive limit. Readings beyond it almost
// certainly mean a desynchronized exchange.
const MaxPlausibleField = 500.0

// ValidationError represents a payload or reading validation failure.
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidatePayload checks a command payload against the structure of every
// observed capture. Returns a slice of validation errors (empty if the
// payload is unremarkable).
func ValidatePayload(p CommandPayload) []ValidationError {
	errors := []ValidationError{}

	if p[2] != 0x00 {
		errors = append(errors, ValidationError{
			Type:    AnomalyReservedByte,
			Message: fmt.Sprintf("reserved byte is 0x%02X (always 0x00 in captures)", p[2]),
			Details: map[string]interface{}{"reserved": p[2]},
		})
	}

	if p.Sign() != SignPositive && p.Sign() != SignNegative {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidSign,
			Message: fmt.Sprintf("sign byte is 0x%02X (expected 0x00 or 0x01)", p.Sign()),
			Details: map[string]interface{}{"sign": p.Sign()},
		})
	}

	if counts := p.Counts(); counts > MaxCalibratedCounts {
		errors = append(errors, ValidationError{
			Type:    AnomalyCountsOverRange,
			Message: fmt.Sprintf("magnitude %d counts exceeds calibrated range (max %d)", counts, MaxCalibratedCounts),
			Details: map[string]interface{}{"counts": counts, "max": MaxCalibratedCounts},
		})
	}

	return errors
}

// ValidateReading checks a decoded field reading for implausible values.
func ValidateReading(r Reading) []ValidationError {
	errors := []ValidationError{}

	if r.Raw[2] > 0x01 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidSign,
			Message: fmt.Sprintf("field sign flag is 0x%02X (expected 0x00 or 0x01)", r.Raw[2]),
			Details: map[string]interface{}{"flag": r.Raw[2]},
		})
	}

	if math.Abs(r.FieldMilliTesla) > MaxPlausibleField {
		errors = append(errors, ValidationError{
			Type:    AnomalyFieldOverRange,
			Message: fmt.Sprintf("field %.1f mT out of plausible range (±%.0f mT)", r.FieldMilliTesla, float64(MaxPlausibleField)),
			Details: map[string]interface{}{"field_mt": r.FieldMilliTesla, "max": float64(MaxPlausibleField)},
		})
	}

	return errors
}
