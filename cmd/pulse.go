// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var pulseCmd = &cobra.Command{
	Use:   "pulse <amps> <seconds>",
	Short: "Pulse the magnet and read the field",
	Long: `Pulse the magnet: ramp to the target current, hold for the given
duration, then stop the drive and read the resulting field.

This is a strict composition of "set" and "stop" with a blocking hold in
between; no extra protocol steps are inserted.`,
	Args: cobra.ExactArgs(2),
	RunE: runPulse,
}

func init() {
	rootCmd.AddCommand(pulseCmd)
}

func runPulse(cmd *cobra.Command, args []string) error {
	amps, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid current %q: %v", args[0], err)
	}
	seconds, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", args[1], err)
	}
	if seconds < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", seconds)
	}
	hold := time.Duration(seconds * float64(time.Second))

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Printf("Magnetostat - Pulse\n")
	fmt.Printf("Connection: %s\n", sess.info)
	fmt.Printf("Pulsing to %.3f A for %v...\n", amps, hold)

	reading, err := sess.controller.Pulse(amps, hold)
	if err != nil {
		return err
	}

	printReadingWarnings(reading)
	fmt.Printf("%s\n", holmarc.FormatReading(reading))
	return nil
}
