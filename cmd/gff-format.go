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
)

// GffFormatHelp is the help string for this command.
const GffFormatHelp = "\ngff-format parameters:\n" +
	"bioino gff-format [gff-file]\n" +
	"[--metadata | -m]\n" +
	commonHelp

// GffFormat implements the bioino gff-format command, which rewrites a
// GFF file in canonical tab-separated form.
func GffFormat() error {
	var (
		common   commonFlags
		metadata bool
	)

	var flags flag.FlagSet

	common.register(&flags)
	flags.BoolVar(&metadata, "metadata", false, "keep the GFF header and comment lines")
	flags.BoolVar(&metadata, "m", false, "keep the GFF header and comment lines")

	parseFlags(&flags, &common, GffFormatHelp)

	if err := setupLogging(&common); err != nil {
		return err
	}

	log.Info("Formatting GFF with the following parameters",
		"input", displayName(common.input),
		"output", displayName(common.output),
		"metadata", metadata)

	lines, trailing, err := gff.ReadFile(common.input)
	if err != nil {
		return err
	}
	log.Debug("Read GFF lines", "count", len(lines), "trailing-metadata", len(trailing))

	return writeOutput(common.output, func(w io.Writer) error {
		return gff.Write(w, lines, trailing, metadata)
	})
}
