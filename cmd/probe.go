// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test the connection with a single stop-and-query exchange",
	Long: `Check that the supply is present and answering by running one
stop-and-query exchange.

This stops the drive as a side effect, so run it before an experiment, not
during one. It is the only exchange in the protocol that produces bytes we
can positively attribute to the supply (the three echoed field bytes).

Exit codes:
  0 - Supply answered the field query
  1 - Query failed (supply silent or desynchronized)
  2 - Connection error

Useful for checking wiring, baud rate, or a serial-over-WebSocket bridge.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Magnetostat - Probe\n")
	fmt.Printf("Connection: %s\n", sess.info)
	fmt.Printf("Running stop-and-query exchange...\n")

	reading, err := sess.controller.StopAndQueryField()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Probe failed: %v\n", err)
		// Close before exiting so a --capture file of the failed
		// exchange still gets written.
		sess.close()
		os.Exit(1)
	}

	fmt.Printf("Supply answered: %s\n", holmarc.FormatReading(reading))
	sess.close()
	return nil
}
