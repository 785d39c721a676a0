// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// TraceDir tags the direction of a traced exchange.
type TraceDir int

const (
	TraceTX      TraceDir = iota // byte written to the supply
	TraceRX                      // byte read from the supply
	TraceTimeout                 // read expired without a byte
)

// TraceEvent is one byte-level exchange recorded during a script. Offset
// is measured from the start of the trace.
type TraceEvent struct {
	Offset time.Duration `cbor:"1,keyasint"`
	Dir    TraceDir      `cbor:"2,keyasint"`
	Byte   byte          `cbor:"3,keyasint"`
	Step   string        `cbor:"4,keyasint,omitempty"`
}

// Trace accumulates the byte-level history of one or more scripts. It is
// diagnostic only and not part of the protocol contract. Traces serialize
// to CBOR so captures can be archived and re-examined offline.
type Trace struct {
	Started time.Time    `cbor:"1,keyasint"`
	Events  []TraceEvent `cbor:"2,keyasint"`
}

// NewTrace creates an empty trace starting now.
func NewTrace() *Trace {
	return &Trace{Started: time.Now()}
}

// Record appends one exchange to the trace.
func (t *Trace) Record(dir TraceDir, b byte, step string) {
	t.Events = append(t.Events, TraceEvent{
		Offset: time.Since(t.Started),
		Dir:    dir,
		Byte:   b,
		Step:   step,
	})
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	return len(t.Events)
}

// Duration returns the offset of the last event, or zero for an empty
// trace.
func (t *Trace) Duration() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Offset
}

// Save writes the trace to w as CBOR.
func (t *Trace) Save(w io.Writer) error {
	if err := cbor.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// LoadTrace reads a CBOR trace previously written by Save.
func LoadTrace(r io.Reader) (*Trace, error) {
	var t Trace
	if err := cbor.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &t, nil
}
