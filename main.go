// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Magnetostat - Holmarc EM-series electromagnet controller
//
// A CLI tool for driving a Holmarc electromagnet power supply over its
// reverse-engineered serial byte protocol.

package main

import (
	"os"

	"github.com/Thermoquad/magnetostat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
