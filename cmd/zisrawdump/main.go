// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/saferwall/zisraw"
	"github.com/saferwall/zisraw/diag"
	"github.com/spf13/cobra"
)

var (
	lenient     bool
	maxEntries  int
	levels      bool
	tiles       int
	attachments bool
	anomalies   bool
	all         bool
)

func openFile(filename string) (*zisraw.Container, error) {
	return zisraw.Open(filename, &zisraw.Options{
		Lenient:    lenient,
		MaxEntries: maxEntries,
	})
}

func dump(cmd *cobra.Command, args []string) {
	filename := args[0]

	c, err := openFile(filename)
	if err != nil {
		log.Printf("error while opening file: %s, reason: %s", filename, err)
		return
	}
	defer c.Close()

	diag.DumpSummary(os.Stdout, c)

	wantLevels, _ := cmd.Flags().GetBool("levels")
	wantTiles, _ := cmd.Flags().GetInt("tiles")
	wantAttachments, _ := cmd.Flags().GetBool("attachments")
	wantAnomalies, _ := cmd.Flags().GetBool("anomalies")
	wantAll, _ := cmd.Flags().GetBool("all")

	if wantLevels || wantAll {
		fmt.Println()
		diag.DumpLevels(os.Stdout, c)
	}
	if wantTiles >= 0 && (cmd.Flags().Changed("tiles") || wantAll) {
		fmt.Println()
		if err := diag.DumpTiles(os.Stdout, c, wantTiles, diag.Options{MaxEntries: maxEntries}); err != nil {
			log.Printf("error dumping tiles: %s", err)
		}
	}
	if wantAttachments || wantAll {
		fmt.Println()
		if err := diag.DumpAttachments(os.Stdout, c); err != nil {
			log.Printf("error dumping attachments: %s", err)
		}
	}
	if wantAnomalies || wantAll {
		fmt.Println()
		diag.DumpAnomalies(os.Stdout, c)
	}
}

func probe(cmd *cobra.Command, args []string) {
	filename := args[0]
	ok, err := zisraw.IsZisraw(filename)
	if err != nil {
		log.Printf("error while probing file: %s, reason: %s", filename, err)
		return
	}
	fmt.Printf("is_zisraw: %v\n", ok)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "zisrawdump",
		Short: "A ZISRAW/CZI container file parser",
		Long:  "A ZISRAW/CZI container parser built for whole-slide microscopy tooling by Saferwall",
		Run: func(cmd *cobra.Command, args []string) {
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print("You are using version 0.0.1")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps the file",
		Long:  "Dumps interesting structures of a ZISRAW/CZI container file",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	var probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Checks whether a file is a ZISRAW container",
		Long:  "Reads only the leading segment identifier to check for ZISRAWFILE",
		Args:  cobra.MinimumNArgs(1),
		Run:   probe,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(probeCmd)

	rootCmd.PersistentFlags().BoolVarP(&lenient, "lenient", "", false, "tolerate unrecognized dimension identifiers")
	rootCmd.PersistentFlags().IntVarP(&maxEntries, "max-entries", "", 0, "bound rows of the tiles table (0 = unbounded)")

	dumpCmd.Flags().BoolVarP(&levels, "levels", "", false, "dump pyramid levels")
	dumpCmd.Flags().IntVarP(&tiles, "tiles", "", 0, "dump tiles of the given level index")
	dumpCmd.Flags().BoolVarP(&attachments, "attachments", "", false, "dump attachment records")
	dumpCmd.Flags().BoolVarP(&anomalies, "anomalies", "", false, "dump recorded anomalies")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
