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
	"io"

	"github.com/charmbracelet/log"

	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/tables"
)

// Table2GffHelp is the help string for this command.
const Table2GffHelp = "\ntable2gff parameters:\n" +
	"bioino table2gff [table-file]\n" +
	"[--format [TSV | CSV] | -f [TSV | CSV]]\n" +
	commonHelp

// Table2Gff implements the bioino table2gff command.
func Table2Gff() error {
	var (
		common commonFlags
		format string
	)

	var flags flag.FlagSet

	common.register(&flags)
	flags.StringVar(&format, "format", "", "table format, by default determined from the file name")
	flags.StringVar(&format, "f", "", "table format, by default determined from the file name")

	parseFlags(&flags, &common, Table2GffHelp)

	if err := setupLogging(&common); err != nil {
		return err
	}

	inFormat, err := tableFormat(format, common.input)
	if err != nil {
		return err
	}

	log.Info("Converting table to GFF with the following parameters",
		"input", displayName(common.input),
		"output", displayName(common.output),
		"format", inFormat)

	table, err := tables.ReadFile(common.input, inFormat)
	if err != nil {
		return err
	}
	lines, err := table.ToGff()
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		lines[0].Metadata = []gff.Metadatum{{Name: "gff-version", Flag: gff.Constrained, Values: []string{"3"}}}
	}

	return writeOutput(common.output, func(w io.Writer) error {
		return gff.Write(w, lines, nil, true)
	})
}
