// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var traceCmd = &cobra.Command{
	Use:   "trace <capture-file>",
	Short: "Display a saved capture file in human-readable format",
	Long: `Decode a CBOR capture file written with --capture and print every
byte-level exchange with its offset and handshake step.

Captures are how this protocol was reverse-engineered in the first place;
archiving them alongside experiments makes unexpected supply behavior
diagnosable after the fact.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %v", err)
	}
	defer f.Close()

	trace, err := holmarc.LoadTrace(f)
	if err != nil {
		return err
	}

	fmt.Printf("Magnetostat - Capture Trace\n")
	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("Recorded: %s, %d events over %v\n\n",
		trace.Started.Format("2006-01-02 15:04:05"), trace.Len(), trace.Duration().Round(time.Millisecond))

	for _, e := range trace.Events {
		fmt.Println(holmarc.FormatTraceEvent(e))
	}

	return nil
}
