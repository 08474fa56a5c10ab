/*
 * main.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package main is the eeqbc command, which regenerates the datasets,
// results and figures of the EEQ_BC benchmark from scratch: structure
// generation, charge and energy calculations with external programs,
// table pivoting, statistics, plotting and archiving.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "eeqbc",
	Short: "Reproduce the EEQ_BC charge-model benchmark data",
	Long: `eeqbc rebuilds the supporting-information data of the EEQ_BC
charge-model benchmark. Each stage is a subcommand: scan and mindless
generate input structures, run drives the external programs over them,
tables, stats and plot turn the raw output into the published tables
and figures, store keeps intermediate results queryable, and bundle
packs everything for distribution.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./eeqbc.yaml or ~/.config/eeqbc/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("eeqbc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "eeqbc"))
		}
	}

	viper.SetEnvPrefix("EEQBC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
