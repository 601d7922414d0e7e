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

// Gff2TableHelp is the help string for this command.
const Gff2TableHelp = "\ngff2table parameters:\n" +
	"bioino gff2table [gff-file]\n" +
	"[--format [TSV | CSV] | -f [TSV | CSV]]\n" +
	"[--metadata | -m]\n" +
	commonHelp

// Gff2Table implements the bioino gff2table command.
func Gff2Table() error {
	var (
		common   commonFlags
		format   string
		metadata bool
	)

	var flags flag.FlagSet

	common.register(&flags)
	flags.StringVar(&format, "format", "TSV", "table format")
	flags.StringVar(&format, "f", "TSV", "table format")
	flags.BoolVar(&metadata, "metadata", false, "write the GFF header as comment lines")
	flags.BoolVar(&metadata, "m", false, "write the GFF header as comment lines")

	parseFlags(&flags, &common, Gff2TableHelp)

	if err := setupLogging(&common); err != nil {
		return err
	}

	outFormat, err := tables.ParseFormat(format)
	if err != nil {
		return err
	}

	log.Info("Converting GFF to table with the following parameters",
		"input", displayName(common.input),
		"output", displayName(common.output),
		"format", outFormat,
		"metadata", metadata)

	lines, _, err := gff.ReadFile(common.input)
	if err != nil {
		return err
	}
	log.Debug("Read GFF lines", "count", len(lines))

	return writeOutput(common.output, func(w io.Writer) error {
		return tables.WriteGffTable(w, lines, outFormat, metadata)
	})
}
