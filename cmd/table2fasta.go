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

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/exascience/bioino/fasta"
	"github.com/exascience/bioino/tables"
)

// Table2FastaHelp is the help string for this command.
const Table2FastaHelp = "\ntable2fasta parameters:\n" +
	"bioino table2fasta [table-file]\n" +
	"--name col[,col] | -n col[,col]\n" +
	"[--sequence col | -s col]\n" +
	"[--description col[,col] | -d col[,col]]\n" +
	"[--format [TSV | CSV] | -f [TSV | CSV]]\n" +
	"[--worksheet name | -w name]\n" +
	commonHelp

// Table2Fasta implements the bioino table2fasta command.
func Table2Fasta() error {
	var (
		common                  commonFlags
		format, sequence, sheet string
		names, descriptions     stringList
	)

	var flags flag.FlagSet

	common.register(&flags)
	flags.StringVar(&format, "format", "", "table format, by default determined from the file name")
	flags.StringVar(&format, "f", "", "table format, by default determined from the file name")
	flags.StringVar(&sequence, "sequence", "sequence", "column to take the sequence from")
	flags.StringVar(&sequence, "s", "sequence", "column to take the sequence from")
	flags.Var(&names, "name", "columns to take the sequence name from")
	flags.Var(&names, "n", "columns to take the sequence name from")
	flags.Var(&descriptions, "description", "columns to take the sequence description from")
	flags.Var(&descriptions, "d", "columns to take the sequence description from")
	flags.StringVar(&sheet, "worksheet", "Sheet 1", "worksheet of a spreadsheet file")
	flags.StringVar(&sheet, "w", "Sheet 1", "worksheet of a spreadsheet file")

	parseFlags(&flags, &common, Table2FastaHelp)

	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Missing --name parameter.")
		fmt.Fprint(os.Stderr, Table2FastaHelp)
		os.Exit(1)
	}

	if err := setupLogging(&common); err != nil {
		return err
	}

	inFormat, err := tableFormat(format, common.input)
	if err != nil {
		return err
	}

	log.Info("Generating FASTA from table with the following parameters",
		"input", displayName(common.input),
		"output", displayName(common.output),
		"format", inFormat,
		"sequence", sequence,
		"name", names.String(),
		"description", descriptions.String())
	log.Debug("Ignoring worksheet for delimited input", "worksheet", sheet)

	table, err := tables.ReadFile(common.input, inFormat)
	if err != nil {
		return err
	}
	seqs, err := table.ToFasta(sequence, names, descriptions)
	if err != nil {
		return err
	}
	log.Debug("Converted table rows", "count", len(seqs))

	return writeOutput(common.output, func(w io.Writer) error {
		return fasta.WriteSequences(w, seqs)
	})
}
