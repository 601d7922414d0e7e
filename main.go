// bioino: interconvert GFF3, FASTA and tabular files.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/bioino/blob/master/LICENSE.txt>.

// bioino interconverts GFF3, FASTA, and tabular (CSV/TSV) files, and
// annotates chromosome positions with GFF features.
//
// Please see https://github.com/exascience/bioino for a documentation
// of the tool, and below for the API documentation.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"github.com/exascience/bioino/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: gff2table, table2fasta, table2gff, gff-format, gff-lookup")
	fmt.Fprint(os.Stderr, "\n", cmd.Gff2TableHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.Table2FastaHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.Table2GffHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.GffFormatHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.GffLookupHelp)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
		log.Error("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	// report EPIPE as an error instead of dying on SIGPIPE
	signal.Ignore(unix.SIGPIPE)

	var err error
	switch os.Args[1] {
	case "gff2table":
		err = cmd.Gff2Table()
	case "table2fasta":
		err = cmd.Table2Fasta()
	case "table2gff":
		err = cmd.Table2Gff()
	case "gff-format":
		err = cmd.GffFormat()
	case "gff-lookup":
		err = cmd.GffLookup()
	case "version", "-version", "--version":
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	case "help", "-help", "--help", "-h", "--h":
		fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
		printHelp()
	default:
		log.Error("Unknown command", "command", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		if cmd.IsBrokenPipe(err) {
			return
		}
		log.Fatal(err)
	}
}
