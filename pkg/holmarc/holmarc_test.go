// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"strings"
	"testing"
)

// ============================================================
// Validator Tests
// ============================================================

func TestValidatePayload_Clean(t *testing.T) {
	payload, err := EncodeCurrent(1.0)
	if err != nil {
		t.Fatalf("EncodeCurrent error: %v", err)
	}
	if errs := ValidatePayload(payload); len(errs) != 0 {
		t.Errorf("clean payload flagged: %v", errs)
	}
}

func TestValidatePayload_Anomalies(t *testing.T) {
	tests := []struct {
		name    string
		payload CommandPayload
		want    AnomalyType
	}{
		{
			name:    "nonzero reserved byte",
			payload: CommandPayload{0x00, 0xDE, 0x07, 0x01},
			want:    AnomalyReservedByte,
		},
		{
			name:    "invalid sign byte",
			payload: CommandPayload{0x00, 0xDE, 0x00, 0x02},
			want:    AnomalyInvalidSign,
		},
		{
			name:    "counts beyond calibrated range",
			payload: CommandPayload{0x08, 0x00, 0x00, 0x01},
			want:    AnomalyCountsOverRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePayload(tt.payload)
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, e := range errs {
				if e.Type == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("anomaly type %d not reported in %v", tt.want, errs)
			}
		})
	}
}

func TestValidateReading_Anomalies(t *testing.T) {
	if errs := ValidateReading(DecodeField(0x00, 0xDE, 0x01)); len(errs) != 0 {
		t.Errorf("clean reading flagged: %v", errs)
	}

	if errs := ValidateReading(DecodeField(0x00, 0xDE, 0x07)); len(errs) == 0 {
		t.Error("flag 0x07 not flagged")
	}

	// 0xFFFF counts is 6553.5 mT, far past the plausible ceiling.
	if errs := ValidateReading(DecodeField(0xFF, 0xFF, 0x00)); len(errs) == 0 {
		t.Error("implausible magnitude not flagged")
	}
}

// ============================================================
// Formatter Tests
// ============================================================

func TestFormatPayload(t *testing.T) {
	s := FormatPayload(CommandPayload{0x02, 0x29, 0x00, 0x00})
	if !strings.Contains(s, "553") {
		t.Errorf("formatted payload missing counts: %q", s)
	}
	if !strings.Contains(s, "0x29") {
		t.Errorf("formatted payload missing hex bytes: %q", s)
	}
	if !strings.HasPrefix(s, "-") {
		t.Errorf("negative payload should format with '-': %q", s)
	}
}

func TestFormatReading(t *testing.T) {
	s := FormatReading(DecodeField(0x00, 0xDE, 0x01))
	if !strings.Contains(s, "-22.2 mT") {
		t.Errorf("formatted reading missing field value: %q", s)
	}
	if !strings.Contains(s, "0xDE") {
		t.Errorf("formatted reading missing raw bytes: %q", s)
	}
}

func TestFormatStepMode(t *testing.T) {
	tests := []struct {
		mode StepMode
		want string
	}{
		{StepAck, "ACK"},
		{StepPoll, "POLL"},
		{StepCapture, "CAPTURE"},
		{StepWrite, "WRITE"},
		{StepMode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := FormatStepMode(tt.mode); got != tt.want {
			t.Errorf("FormatStepMode(%d) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestFormatTraceEvent(t *testing.T) {
	e := TraceEvent{Dir: TraceTimeout, Step: "stop command"}
	s := FormatTraceEvent(e)
	if !strings.Contains(s, "timeout") {
		t.Errorf("timeout event should say so: %q", s)
	}
}

// ============================================================
// Statistics Tests
// ============================================================

func TestStatistics_TracksSequencerRuns(t *testing.T) {
	stats := NewStatistics()
	script := StopQueryScript()
	mt := &mockTransport{reads: scriptedReads(script, []byte{0x00, 0xDE, 0x00})}

	seq := NewSequencer(mt)
	seq.SetStatistics(stats)
	if _, err := seq.Run(script); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stats.SequencesRun != 1 {
		t.Errorf("SequencesRun = %d, want 1", stats.SequencesRun)
	}
	if stats.StepsExecuted != 10 {
		t.Errorf("StepsExecuted = %d, want 10", stats.StepsExecuted)
	}
	if stats.SequencesFailed != 0 {
		t.Errorf("SequencesFailed = %d, want 0", stats.SequencesFailed)
	}

	out := stats.String()
	if !strings.Contains(out, "Sequences Run") {
		t.Errorf("summary missing counters: %q", out)
	}

	stats.Reset()
	if stats.SequencesRun != 0 || stats.StepsExecuted != 0 {
		t.Error("Reset did not clear counters")
	}
}
