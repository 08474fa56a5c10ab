/*
 * store.go, part of eeqbc.
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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grimme-lab/SI-EEQ-BC/store"
	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep result rows in a queryable SQLite database",
}

var storeImportCmd = &cobra.Command{
	Use:   "import [results.db] [charges|energies] [long.csv]",
	Short: "Load a long-format CSV into the database",
	Args:  cobra.ExactArgs(3),
	RunE:  runStoreImport,
}

var storeExportCmd = &cobra.Command{
	Use:   "export [results.db] [charges|energies] [long.csv]",
	Short: "Write stored rows back to a long-format CSV",
	Args:  cobra.ExactArgs(3),
	RunE:  runStoreExport,
}

var storeMethodsCmd = &cobra.Command{
	Use:   "methods [results.db]",
	Short: "List the methods present in the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreMethods,
}

func init() {
	storeExportCmd.Flags().String("methods", "", "comma-separated method labels to export")
	storeExportCmd.Flags().String("points", "", "comma-separated scan point ids to export")
	storeCmd.AddCommand(storeImportCmd, storeExportCmd, storeMethodsCmd)
	rootCmd.AddCommand(storeCmd)
}

func openStore(path string) (*store.Store, error) {
	return store.Open(path)
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	s, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()
	var n int
	switch args[1] {
	case "charges":
		n, err = s.ImportCharges(ctx, args[2])
	case "energies":
		n, err = s.ImportEnergies(ctx, args[2])
	default:
		return fmt.Errorf("unknown table %q (want charges or energies)", args[1])
	}
	if err != nil {
		return err
	}
	fmt.Printf("imported %d rows\n", n)
	return nil
}

func exportFilter(cmd *cobra.Command) store.Filter {
	var f store.Filter
	if s, _ := cmd.Flags().GetString("methods"); s != "" {
		f.Methods = splitTrim(s)
	}
	if s, _ := cmd.Flags().GetString("points"); s != "" {
		f.CIDs = splitTrim(s)
	}
	return f
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	s, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()
	f := exportFilter(cmd)
	switch args[1] {
	case "charges":
		rows, err := s.Charges(ctx, f)
		if err != nil {
			return err
		}
		return writeCSV(args[2], func(out *os.File) error {
			return tables.WriteCharges(out, rows)
		})
	case "energies":
		rows, err := s.Energies(ctx, f)
		if err != nil {
			return err
		}
		return writeCSV(args[2], func(out *os.File) error {
			return tables.WriteEnergies(out, rows)
		})
	}
	return fmt.Errorf("unknown table %q (want charges or energies)", args[1])
}

func runStoreMethods(cmd *cobra.Command, args []string) error {
	s, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer s.Close()
	methods, err := s.Methods(context.Background())
	if err != nil {
		return err
	}
	for _, m := range methods {
		fmt.Println(m)
	}
	return nil
}
