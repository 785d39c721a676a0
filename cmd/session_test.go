// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

// silentTransport accepts every write and times out every read, like a
// supply that is wired but not answering.
type silentTransport struct {
	closed bool
}

func (s *silentTransport) WriteByte(b byte) error  { return nil }
func (s *silentTransport) ReadByte() (byte, error) { return 0, holmarc.ErrReadTimeout }
func (s *silentTransport) FlushInput() error       { return nil }
func (s *silentTransport) Close() error            { s.closed = true; return nil }

// newStubSession builds a session over a silent transport with a trace
// attached, the way openSession wires one for --capture.
func newStubSession(st *silentTransport) *session {
	s := &session{
		transport:  st,
		controller: holmarc.NewController(st),
		trace:      holmarc.NewTrace(),
		stats:      holmarc.NewStatistics(),
		info:       "stub",
	}
	s.controller.Sequencer().SetStatistics(s.stats)
	s.controller.Sequencer().SetTrace(s.trace)
	return s
}

func TestSessionClose_SavesCaptureFile(t *testing.T) {
	oldCapture := captureFile
	captureFile = filepath.Join(t.TempDir(), "exchange.cbor")
	defer func() { captureFile = oldCapture }()

	st := &silentTransport{}
	sess := newStubSession(st)
	sess.trace.Record(holmarc.TraceTX, holmarc.CmdReady, "ready check")

	sess.close()

	if !st.closed {
		t.Error("transport was not closed")
	}

	f, err := os.Open(captureFile)
	if err != nil {
		t.Fatalf("capture file was not written: %v", err)
	}
	defer f.Close()

	loaded, err := holmarc.LoadTrace(f)
	if err != nil {
		t.Fatalf("failed to load capture: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("loaded trace has %d events, want 1", loaded.Len())
	}
}

// A failed exchange must still leave its capture on disk when the session
// is closed: the bytes leading up to the failure are exactly what makes
// an unresponsive supply diagnosable.
func TestSessionClose_SavesCaptureAfterFailedExchange(t *testing.T) {
	oldCapture := captureFile
	captureFile = filepath.Join(t.TempDir(), "failed.cbor")
	defer func() { captureFile = oldCapture }()

	st := &silentTransport{}
	sess := newStubSession(st)

	_, err := sess.controller.StopAndQueryField()
	var qerr *holmarc.QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QueryError from a silent supply, got %v", err)
	}

	sess.close()

	f, err := os.Open(captureFile)
	if err != nil {
		t.Fatalf("capture file was not written after failure: %v", err)
	}
	defer f.Close()

	loaded, err := holmarc.LoadTrace(f)
	if err != nil {
		t.Fatalf("failed to load capture: %v", err)
	}
	if loaded.Len() == 0 {
		t.Error("capture of the failed exchange is empty")
	}
}

func TestSessionClose_NoCaptureFileWhenUnset(t *testing.T) {
	oldCapture := captureFile
	captureFile = ""
	defer func() { captureFile = oldCapture }()

	st := &silentTransport{}
	sess := newStubSession(st)
	sess.close()

	if !st.closed {
		t.Error("transport was not closed")
	}
}
