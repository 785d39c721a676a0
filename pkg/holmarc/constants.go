// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package holmarc drives a Holmarc EM-series electromagnet power supply over
// a serial link using its proprietary byte protocol.
//
// The protocol was reverse-engineered from packet captures of the vendor's
// own software. There is no vendor documentation: every command byte, every
// response-matching rule and the current-to-counts calibration below is
// inferred from captured traffic, and correctness means byte-for-byte
// fidelity to those captures.
package holmarc

// Command bytes sent to the supply. The values come straight from the
// captures and have no derivable meaning; keep them in this one table.
const (
	CmdReady    byte = 0x64 // ready check, paced by a single discarded read
	CmdStart    byte = 0x1E // begin a set-current exchange
	CmdSetValue byte = 0x2C // announces the 4-byte value that follows
	CmdStop     byte = 0x2B // stop the drive
	CmdQuery    byte = 0x0A // request the field reading
	CmdQueryAck byte = 0x4E // acknowledges a completed field query
	CmdEnd      byte = 0x00 // terminates a set-current exchange, also "set to zero"
	CmdFinish   byte = 0x82 // terminates a stop-and-query exchange
)

// RespProceed is the only response byte the supply is ever matched against.
// POLL steps drain incoming bytes until they see it.
const RespProceed byte = 0x12

// Sign flag of a CommandPayload (byte 3): 0x01 means non-negative.
const (
	SignPositive byte = 0x01
	SignNegative byte = 0x00
)

// FlagFieldNegative is the sign flag of a query response (byte 3): 0x01
// means negative. Note the convention is inverted relative to the command
// payload sign. The captures are unambiguous about both directions, so this
// asymmetry is preserved as observed.
const FlagFieldNegative byte = 0x01

// Payload geometry
const (
	PayloadSize = 4
	MaxCounts   = 0xFFFF
)

// Calibration anchors from captured traffic: the vendor software sent
// 35 counts for 0.1 A and 1299 counts for 4.0 A.
const (
	calAmpsLow    = 0.1
	calAmpsHigh   = 4.0
	calCountsLow  = 35
	calCountsHigh = 1299
)

// CountsPerAmp converts amps to device counts. The exact constant
// (1299-35)/(4.0-0.1) must be reproduced to stay bit-compatible with the
// supply.
const CountsPerAmp = float64(calCountsHigh-calCountsLow) / (calAmpsHigh - calAmpsLow)

// fieldScale converts raw query counts to millitesla (device reports
// tenths of mT).
const fieldScale = 10.0

// QueryCaptureCount is the number of CAPTURE steps in the stop-and-query
// script: magnitude high, magnitude low, sign flag.
const QueryCaptureCount = 3

// Serial link parameters used by the vendor software: 19200 baud, 8N1,
// no line termination, 2 second read timeout.
const (
	DefaultBaudRate    = 19200
	DefaultReadTimeout = 2000 // milliseconds
)

// DefaultMaxPollReads bounds the POLL drain loop so a transport with a
// misconfigured read timeout cannot hang a script.
const DefaultMaxPollReads = 256
