// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

import (
	"fmt"
	"strings"
)

// FormatPayload formats a command payload into a human-readable string.
func FormatPayload(p CommandPayload) string {
	sign := "+"
	if p.Negative() {
		sign = "-"
	}
	return fmt.Sprintf("%s%d counts %s", sign, p.Counts(), FormatBytes(p.Bytes()))
}

// FormatReading formats a field reading into a human-readable string.
func FormatReading(r Reading) string {
	timestamp := r.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] field=%.1f mT raw=%s", timestamp, r.FieldMilliTesla,
		FormatBytes([]byte{r.Raw[0], r.Raw[1], r.Raw[2]}))
}

// FormatStepMode returns the human-readable name for a step mode.
func FormatStepMode(m StepMode) string {
	switch m {
	case StepAck:
		return "ACK"
	case StepPoll:
		return "POLL"
	case StepCapture:
		return "CAPTURE"
	case StepWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// FormatStep formats one script step.
func FormatStep(s Step) string {
	switch s.Mode {
	case StepPoll:
		return fmt.Sprintf("%-7s 0x%02X expect 0x%02X  %s", FormatStepMode(s.Mode), s.Send, s.Expect, s.Label)
	case StepCapture:
		return fmt.Sprintf("%-7s               %s", FormatStepMode(s.Mode), s.Label)
	default:
		return fmt.Sprintf("%-7s 0x%02X              %s", FormatStepMode(s.Mode), s.Send, s.Label)
	}
}

// FormatTraceEvent formats one traced exchange.
func FormatTraceEvent(e TraceEvent) string {
	offset := fmt.Sprintf("%10.3fs", e.Offset.Seconds())
	switch e.Dir {
	case TraceTX:
		return fmt.Sprintf("[%s] TX 0x%02X  %s", offset, e.Byte, e.Step)
	case TraceRX:
		return fmt.Sprintf("[%s] RX 0x%02X  %s", offset, e.Byte, e.Step)
	case TraceTimeout:
		return fmt.Sprintf("[%s] RX --    %s (timeout)", offset, e.Step)
	default:
		return fmt.Sprintf("[%s] ?? 0x%02X  %s", offset, e.Byte, e.Step)
	}
}

// FormatBytes renders a byte slice as a bracketed hex list.
func FormatBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("0x%02X", b)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
