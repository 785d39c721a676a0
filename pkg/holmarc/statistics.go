// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"fmt"
	"time"
)

// Statistics tracks script execution counters and timeout rates.
type Statistics struct {
	StartTime time.Time

	// Counters
	SequencesRun    uint64
	SequencesFailed uint64
	StepsExecuted   uint64
	AckTimeouts     uint64
	PollDiscards    uint64
	PollTimeouts    uint64
	CaptureTimeouts uint64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	elapsed := time.Since(s.StartTime)

	var failPercent float64
	if s.SequencesRun > 0 {
		failPercent = float64(s.SequencesFailed) * 100.0 / float64(s.SequencesRun)
	}

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Sequences Run:   %8d\n", s.SequencesRun)
	result += fmt.Sprintf("Steps Executed:  %8d\n", s.StepsExecuted)
	if s.SequencesFailed > 0 {
		result += fmt.Sprintf("Failed:          %8d (%.1f%%)\n", s.SequencesFailed, failPercent)
	}
	if s.AckTimeouts > 0 {
		result += fmt.Sprintf("Ack Timeouts:    %8d\n", s.AckTimeouts)
	}
	if s.PollDiscards > 0 {
		result += fmt.Sprintf("Poll Discards:   %8d\n", s.PollDiscards)
	}
	if s.PollTimeouts > 0 {
		result += fmt.Sprintf("Poll Timeouts:   %8d\n", s.PollTimeouts)
	}
	if s.CaptureTimeouts > 0 {
		result += fmt.Sprintf("Capture Failures:%8d\n", s.CaptureTimeouts)
	}
	result += "================================\n"

	return result
}

// Reset resets all counters.
func (s *Statistics) Reset() {
	s.StartTime = time.Now()
	s.SequencesRun = 0
	s.SequencesFailed = 0
	s.StepsExecuted = 0
	s.AckTimeouts = 0
	s.PollDiscards = 0
	s.PollTimeouts = 0
	s.CaptureTimeouts = 0
}
