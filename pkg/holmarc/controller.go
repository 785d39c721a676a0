// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "time"

// Controller is the caller-facing facade for one electromagnet on one
// exclusively-owned Transport. All operations are synchronous and
// strictly sequential; a script runs to completion or to its first
// unrecoverable timeout, and the controller never retries on its own.
type Controller struct {
	seq *Sequencer
}

// NewController creates a controller driving the supply over t.
func NewController(t Transport) *Controller {
	return &Controller{seq: NewSequencer(t)}
}

// Sequencer returns the underlying sequencer, for attaching a trace or
// statistics tracker.
func (c *Controller) Sequencer() *Sequencer {
	return c.seq
}

// SetCurrent commands the supply to ramp to amps. There is no closed-loop
// confirmation beyond the handshake acks; the only error conditions are
// an unencodable current or a transport write failure.
func (c *Controller) SetCurrent(amps float64) error {
	payload, err := EncodeCurrent(amps)
	if err != nil {
		return err
	}
	_, err = c.seq.Run(StartScript(payload))
	return err
}

// StopAndQueryField stops the drive and returns the resulting field
// reading. If any of the three capture reads times out the exchange is
// reported as a *QueryError and the partial bytes are never decoded.
func (c *Controller) StopAndQueryField() (Reading, error) {
	captured, err := c.seq.Run(StopQueryScript())
	if err != nil {
		return Reading{}, err
	}
	if len(captured) != QueryCaptureCount {
		// Unreachable unless a script with the wrong capture count is run.
		return Reading{}, &QueryError{Capture: len(captured), Err: ErrReadTimeout}
	}
	return DecodeField(captured[0], captured[1], captured[2]), nil
}

// Pulse ramps to amps, holds for the given duration, then stops and
// queries the field. It is a strict composition of SetCurrent and
// StopAndQueryField with no additional protocol steps.
func (c *Controller) Pulse(amps float64, hold time.Duration) (Reading, error) {
	if err := c.SetCurrent(amps); err != nil {
		return Reading{}, err
	}
	time.Sleep(hold)
	return c.StopAndQueryField()
}
