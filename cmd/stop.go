// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Thermoquad/magnetostat/pkg/holmarc"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the drive and read the field",
	Long: `Stop the supply's current drive and query the resulting magnetic field.

This replays the captured 10-step stop-and-query sequence. The supply
answers the query with three bytes (field magnitude and sign flag), each of
which must be echoed back before it sends the next. The decoded field is
reported in millitesla.

If any of the three field bytes never arrives, the exchange is reported as
a query failure naming the missing byte; the supply's state after a partial
sequence is unknown and no partial value is decoded.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	fmt.Printf("Magnetostat - Stop and Query\n")
	fmt.Printf("Connection: %s\n", sess.info)

	reading, err := sess.controller.StopAndQueryField()
	if err != nil {
		return err
	}

	printReadingWarnings(reading)
	fmt.Printf("%s\n", holmarc.FormatReading(reading))
	return nil
}
