// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import "fmt"

// Sequencer executes handshake scripts over a Transport, one step at a
// time, in strict program order.
//
// Timeout handling follows the captures: ACK and POLL steps treat a read
// timeout as "no useful response, continue anyway", while a CAPTURE
// timeout is fatal to the current script because the remaining bytes of
// the field reading can never arrive.
type Sequencer struct {
	transport    Transport
	maxPollReads int
	trace        *Trace
	stats        *Statistics
}

// NewSequencer creates a sequencer over t with the default poll bound.
func NewSequencer(t Transport) *Sequencer {
	return &Sequencer{
		transport:    t,
		maxPollReads: DefaultMaxPollReads,
	}
}

// SetTrace attaches a byte-level exchange trace. Pass nil to detach.
func (s *Sequencer) SetTrace(tr *Trace) {
	s.trace = tr
}

// SetStatistics attaches a statistics tracker. Pass nil to detach.
func (s *Sequencer) SetStatistics(st *Statistics) {
	s.stats = st
}

// SetMaxPollReads overrides the bound on the POLL drain loop. Values
// below 1 are ignored.
func (s *Sequencer) SetMaxPollReads(n int) {
	if n >= 1 {
		s.maxPollReads = n
	}
}

// Run executes script and returns the bytes collected by CAPTURE steps.
//
// A transport write error or a CAPTURE timeout aborts the remaining
// steps; the bytes captured so far are returned alongside the error. A
// CAPTURE timeout is reported as a *QueryError identifying the failed
// capture.
func (s *Sequencer) Run(script []Step) ([]byte, error) {
	if s.stats != nil {
		s.stats.SequencesRun++
	}

	var captured []byte
	for _, step := range script {
		if s.stats != nil {
			s.stats.StepsExecuted++
		}

		var err error
		switch step.Mode {
		case StepAck:
			err = s.runAck(step)
		case StepPoll:
			err = s.runPoll(step)
		case StepCapture:
			var b byte
			b, err = s.runCapture(step, len(captured))
			if err == nil {
				captured = append(captured, b)
			}
		case StepWrite:
			err = s.send(step.Send, step.Label)
		default:
			err = fmt.Errorf("unknown step mode %d", step.Mode)
		}

		if err != nil {
			if s.stats != nil {
				s.stats.SequencesFailed++
			}
			return captured, err
		}
	}

	return captured, nil
}

// runAck writes the step byte and performs one paced read. The read
// result is discarded regardless of value; only a write failure is an
// error.
func (s *Sequencer) runAck(step Step) error {
	if err := s.send(step.Send, step.Label); err != nil {
		return err
	}
	if _, err := s.recv(step.Label); err != nil {
		if err != ErrReadTimeout {
			return fmt.Errorf("%s: %w", step.Label, err)
		}
		if s.stats != nil {
			s.stats.AckTimeouts++
		}
	}
	return nil
}

// runPoll writes the step byte once, then drains reads until the expected
// byte appears, the transport times out, or maxPollReads is reached.
func (s *Sequencer) runPoll(step Step) error {
	if err := s.send(step.Send, step.Label); err != nil {
		return err
	}
	for i := 0; i < s.maxPollReads; i++ {
		b, err := s.recv(step.Label)
		if err != nil {
			if err != ErrReadTimeout {
				return fmt.Errorf("%s: %w", step.Label, err)
			}
			if s.stats != nil {
				s.stats.PollTimeouts++
			}
			return nil
		}
		if b == step.Expect {
			return nil
		}
		if s.stats != nil {
			s.stats.PollDiscards++
		}
	}
	if s.stats != nil {
		s.stats.PollTimeouts++
	}
	return nil
}

// runCapture reads one byte and echoes it back. index is the zero-based
// position among the script's CAPTURE steps, used for failure reporting.
func (s *Sequencer) runCapture(step Step, index int) (byte, error) {
	b, err := s.recv(step.Label)
	if err != nil {
		if s.stats != nil {
			s.stats.CaptureTimeouts++
		}
		return 0, &QueryError{Capture: index, Err: err}
	}
	if err := s.send(b, step.Label+" echo"); err != nil {
		return 0, &QueryError{Capture: index, Err: err}
	}
	return b, nil
}

func (s *Sequencer) send(b byte, label string) error {
	if err := s.transport.WriteByte(b); err != nil {
		return fmt.Errorf("%s: write 0x%02X: %w", label, b, err)
	}
	if s.trace != nil {
		s.trace.Record(TraceTX, b, label)
	}
	return nil
}

func (s *Sequencer) recv(label string) (byte, error) {
	b, err := s.transport.ReadByte()
	if err != nil {
		if err == ErrReadTimeout && s.trace != nil {
			s.trace.Record(TraceTimeout, 0, label)
		}
		return 0, err
	}
	if s.trace != nil {
		s.trace.Record(TraceRX, b, label)
	}
	return b, nil
}
