// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var (
	// Serial connection flags
	portName  string
	baudRate  int
	timeoutMs int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Config and diagnostics flags
	configPath  string
	verbose     bool
	captureFile string
)

var rootCmd = &cobra.Command{
	Use:   "magnetostat",
	Short: "Holmarc Electromagnet Controller",
	Long: `Magnetostat - A CLI tool for driving a Holmarc EM-series electromagnet
power supply over its proprietary serial byte protocol.

The protocol was reverse-engineered from packet captures of the vendor
software; there is no official documentation. Commands replay the captured
handshake sequences byte for byte.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 19200]
  WebSocket: --url ws://host/path [--username user]  (serial-over-WS bridge)

For WebSocket authentication, the password is read from the
MAGNETOSTAT_PASSWORD environment variable, or prompted interactively if not
set. The --password flag is intentionally not provided to avoid leaking
credentials in shell history.

Defaults for connection flags can be placed in ~/.magnetostat.yaml or a file
named with --config.`,
	Version:           "1.0.0",
	PersistentPreRunE: applyFileConfig,
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", holmarc.DefaultBaudRate, "Baud rate (serial only)")
	rootCmd.PersistentFlags().IntVarP(&timeoutMs, "timeout", "t", holmarc.DefaultReadTimeout, "Per-byte read timeout in milliseconds")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Config and diagnostics flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.magnetostat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print the byte-level exchange log after each command")
	rootCmd.PersistentFlags().StringVar(&captureFile, "capture", "", "Save the byte-level exchange log to a CBOR capture file")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
