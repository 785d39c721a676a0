// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig holds connection defaults loaded from a YAML config file.
// Flags given on the command line always win over file values.
type fileConfig struct {
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
	URL       string `yaml:"url"`
	Username  string `yaml:"username"`
}

// defaultConfigPath returns ~/.magnetostat.yaml, or "" when the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".magnetostat.yaml")
}

// applyFileConfig loads the config file (if any) and fills in connection
// flags the user did not set explicitly. A missing default config file is
// not an error; a missing --config file is.
//
// Flags are resolved through cmd.Root() rather than the package-level
// command variable; referencing rootCmd here would create an
// initialization cycle with its PersistentPreRunE field.
func applyFileConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return fmt.Errorf("failed to read config %s: %v", path, err)
		}
		return nil
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %v", path, err)
	}

	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("port") && cfg.Port != "" {
		portName = cfg.Port
	}
	if !flags.Changed("baud") && cfg.Baud != 0 {
		baudRate = cfg.Baud
	}
	if !flags.Changed("timeout") && cfg.TimeoutMs != 0 {
		timeoutMs = cfg.TimeoutMs
	}
	if !flags.Changed("url") && cfg.URL != "" {
		wsURL = cfg.URL
	}
	if !flags.Changed("username") && cfg.Username != "" {
		wsUsername = cfg.Username
	}

	return nil
}
