// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package holmarc

// StepMode selects how the sequencer handles one step of a script.
type StepMode int

const (
	// StepAck writes Send, then performs one read whose result is
	// discarded. The read exists only to pace the exchange; a timeout is
	// tolerated and the script continues.
	StepAck StepMode = iota

	// StepPoll writes Send once, then drains incoming bytes until one
	// equals Expect or the read times out. The write is never retried; on
	// timeout the script simply continues.
	StepPoll

	// StepCapture performs one read with no preceding write and echoes
	// the received byte straight back (the supply requires
	// acknowledgment-by-echo). A timeout here aborts the remainder of the
	// script.
	StepCapture

	// StepWrite writes Send with no read at all. The captures show no
	// response at these positions.
	StepWrite
)

// Step is one unit of a fixed handshake script. Scripts are static,
// ordered tables; the sequencer never reorders, merges or skips steps.
type Step struct {
	Mode   StepMode
	Send   byte
	Expect byte
	Label  string
}

// StartScript returns the 10-step set-current script carrying payload.
// It is a literal replay of the captured exchange.
func StartScript(payload CommandPayload) []Step {
	return []Step{
		{Mode: StepAck, Send: CmdReady, Label: "ready check"},
		{Mode: StepAck, Send: CmdReady, Label: "ready check"},
		{Mode: StepPoll, Send: CmdStart, Expect: RespProceed, Label: "start command"},
		{Mode: StepAck, Send: CmdReady, Label: "ready check"},
		{Mode: StepAck, Send: CmdSetValue, Label: "set-value command"},
		{Mode: StepAck, Send: payload[0], Label: "value magnitude high"},
		{Mode: StepAck, Send: payload[1], Label: "value magnitude low"},
		{Mode: StepAck, Send: payload[2], Label: "value reserved"},
		{Mode: StepAck, Send: payload[3], Label: "value sign"},
		{Mode: StepPoll, Send: CmdEnd, Expect: RespProceed, Label: "end command"},
	}
}

// StopQueryScript returns the 10-step stop-and-query script. The three
// CAPTURE steps collect the field magnitude high byte, magnitude low byte
// and sign flag, in that order.
func StopQueryScript() []Step {
	return []Step{
		{Mode: StepAck, Send: CmdReady, Label: "ready check"},
		{Mode: StepPoll, Send: CmdStop, Expect: RespProceed, Label: "stop command"},
		{Mode: StepWrite, Send: CmdQuery, Label: "query command"},
		{Mode: StepCapture, Label: "field magnitude high"},
		{Mode: StepCapture, Label: "field magnitude low"},
		{Mode: StepCapture, Label: "field sign flag"},
		{Mode: StepAck, Send: CmdQueryAck, Label: "query acknowledge"},
		{Mode: StepWrite, Send: CmdEnd, Label: "zero command"},
		{Mode: StepAck, Send: CmdReady, Label: "ready check"},
		{Mode: StepPoll, Send: CmdFinish, Expect: RespProceed, Label: "end command"},
	}
}
