/*
 * bundle.go, part of eeqbc.
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grimme-lab/SI-EEQ-BC/bundle"
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Pack or unpack the reproducibility archive",
}

var bundlePackCmd = &cobra.Command{
	Use:   "pack [root] [archive.tar.zst]",
	Short: "Pack the datasets, results and scripts directories",
	Args:  cobra.ExactArgs(2),
	RunE:  runBundlePack,
}

var bundleUnpackCmd = &cobra.Command{
	Use:   "unpack [archive.tar.zst] [root]",
	Short: "Extract a reproducibility archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runBundleUnpack,
}

func init() {
	bundlePackCmd.Flags().StringSlice("dirs", nil, "directories to pack (default: datasets, results, scripts)")
	bundleCmd.AddCommand(bundlePackCmd, bundleUnpackCmd)
	rootCmd.AddCommand(bundleCmd)
}

func runBundlePack(cmd *cobra.Command, args []string) error {
	dirs, _ := cmd.Flags().GetStringSlice("dirs")
	if err := bundle.Pack(args[0], args[1], dirs); err != nil {
		return err
	}
	fmt.Printf("packed %s\n", args[1])
	return nil
}

func runBundleUnpack(cmd *cobra.Command, args []string) error {
	if err := bundle.Unpack(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("unpacked into %s\n", args[1])
	return nil
}
