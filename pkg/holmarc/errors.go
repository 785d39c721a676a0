// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "fmt"

// RangeError reports a current that cannot be represented in the supply's
// 16-bit count space.
type RangeError struct {
	Amps   float64
	Counts int
}

func (e *RangeError) Error() string {
	if e.Counts > 0 {
		return fmt.Sprintf("current %.3f A encodes to %d counts (max %d)", e.Amps, e.Counts, MaxCounts)
	}
	return fmt.Sprintf("current %v A is not encodable", e.Amps)
}

// QueryError reports a stop-and-query exchange that failed before all
// three field bytes were captured. Capture is the zero-based index of the
// CAPTURE step that timed out.
type QueryError struct {
	Capture int
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("field query failed at capture %d of %d: %v", e.Capture+1, QueryCaptureCount, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
