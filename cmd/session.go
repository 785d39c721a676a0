// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

// session bundles the transport, controller and optional diagnostics for
// one command invocation.
type session struct {
	transport  Transport
	controller *holmarc.Controller
	trace      *holmarc.Trace
	stats      *holmarc.Statistics
	info       string
}

// openSession opens the transport selected by the connection flags and
// wires up a controller, attaching a trace when --verbose or --capture
// asks for one.
func openSession() (*session, error) {
	t, info, err := OpenTransport()
	if err != nil {
		return nil, err
	}

	s := &session{
		transport:  t,
		controller: holmarc.NewController(t),
		stats:      holmarc.NewStatistics(),
		info:       info,
	}
	s.controller.Sequencer().SetStatistics(s.stats)

	if verbose || captureFile != "" {
		s.trace = holmarc.NewTrace()
		s.controller.Sequencer().SetTrace(s.trace)
	}

	return s, nil
}

// close flushes diagnostics and releases the transport. Diagnostic
// failures are reported but never mask the command's own result.
func (s *session) close() {
	if s.trace != nil && verbose {
		fmt.Println()
		for _, e := range s.trace.Events {
			fmt.Println(holmarc.FormatTraceEvent(e))
		}
		fmt.Print(s.stats.String())
	}

	if s.trace != nil && captureFile != "" {
		if err := s.saveCapture(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save capture: %v\n", err)
		} else {
			fmt.Printf("Capture saved to %s (%d events)\n", captureFile, s.trace.Len())
		}
	}

	s.transport.Close()
}

func (s *session) saveCapture() error {
	f, err := os.Create(captureFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.trace.Save(f)
}

// printReadingWarnings reports reading anomalies on stderr.
func printReadingWarnings(r holmarc.Reading) {
	for _, v := range holmarc.ValidateReading(r) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", v.Message)
	}
}
