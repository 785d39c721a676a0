// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var setCmd = &cobra.Command{
	Use:   "set <amps>",
	Short: "Command a target current",
	Long: `Command the supply to ramp to a target current in amps.

The current is encoded to device counts and sent with the captured 10-step
start sequence. Negative currents reverse the field direction. There is no
closed-loop confirmation: the supply acks the handshake but does not report
the current it actually reached. Use "stop" to stop the drive and read the
resulting field.

Calibrated range is roughly -4.0 to 4.0 A; values outside it encode to
counts never seen in any capture and are flagged with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	amps, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid current %q: %v", args[0], err)
	}

	payload, err := holmarc.EncodeCurrent(amps)
	if err != nil {
		return err
	}
	for _, v := range holmarc.ValidatePayload(payload) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", v.Message)
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Printf("Magnetostat - Set Current\n")
	fmt.Printf("Connection: %s\n", sess.info)
	fmt.Printf("Target: %.3f A encoded as %s\n", amps, holmarc.FormatPayload(payload))

	if err := sess.controller.SetCurrent(amps); err != nil {
		return err
	}

	fmt.Printf("Start sequence complete.\n")
	return nil
}
