// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var (
	calFrom float64
	calTo   float64
	calStep float64
	calHold float64
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Sweep a current range and tabulate field readings",
	Long: `Sweep a range of currents, pulsing the magnet at each point and
recording the measured field.

For each point the table shows the commanded current, the counts produced
by the arithmetic encoder, the counts the vendor software was captured
sending (where a capture exists), and the decoded field. The residual
between encoder and capture columns is the known nonlinearity of the
captured current map; collecting more sweep data is how the map grows.

A query failure at one point is recorded and the sweep continues; a
transport failure aborts the sweep.`,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().Float64Var(&calFrom, "from", -0.4, "Sweep start current in amps")
	calibrateCmd.Flags().Float64Var(&calTo, "to", 0.4, "Sweep end current in amps")
	calibrateCmd.Flags().Float64Var(&calStep, "step", 0.1, "Sweep step in amps")
	calibrateCmd.Flags().Float64Var(&calHold, "hold", 2.0, "Hold time per point in seconds")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	if calStep <= 0 {
		return fmt.Errorf("step must be positive, got %v", calStep)
	}
	if calTo < calFrom {
		return fmt.Errorf("sweep range is empty: from=%v to=%v", calFrom, calTo)
	}
	if calHold < 0 {
		return fmt.Errorf("hold must be non-negative, got %v", calHold)
	}
	hold := time.Duration(calHold * float64(time.Second))

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Printf("Magnetostat - Calibration Sweep\n")
	fmt.Printf("Connection: %s\n", sess.info)
	fmt.Printf("Range: %.3f to %.3f A, step %.3f, hold %v\n\n", calFrom, calTo, calStep, hold)

	fmt.Printf("%10s  %8s  %8s  %12s\n", "amps", "counts", "capture", "field (mT)")

	points := int(math.Floor((calTo-calFrom)/calStep+1e-9)) + 1
	failures := 0
	for i := 0; i < points; i++ {
		amps := calFrom + float64(i)*calStep

		payload, err := holmarc.EncodeCurrent(amps)
		if err != nil {
			return err
		}

		captureCol := "-"
		if p, ok := holmarc.LookupCalibration(amps); ok {
			captureCol = fmt.Sprintf("%d", p.Payload.Counts())
		}

		reading, err := sess.controller.Pulse(amps, hold)
		if err != nil {
			var qerr *holmarc.QueryError
			if errors.As(err, &qerr) {
				failures++
				fmt.Printf("%10.3f  %8d  %8s  %12s\n", amps, payload.Counts(), captureCol, "query failed")
				continue
			}
			return err
		}

		fmt.Printf("%10.3f  %8d  %8s  %12.1f\n", amps, payload.Counts(), captureCol, reading.FieldMilliTesla)
	}

	fmt.Printf("\nSweep complete: %d points, %d query failures.\n", points, failures)
	return nil
}
