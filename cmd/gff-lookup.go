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
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"

	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/lookup"
	"github.com/exascience/bioino/tables"
)

// GffLookupHelp is the help string for this command.
const GffLookupHelp = "\ngff-lookup parameters:\n" +
	"bioino gff-lookup [gff-file]\n" +
	"--position pos[,pos] | -p pos[,pos] | --segments\n" +
	"[--seqid name]\n" +
	"[--summary]\n" +
	commonHelp

// GffLookup implements the bioino gff-lookup command, which annotates
// chromosome positions with the features of a GFF file.
func GffLookup() error {
	var (
		common            commonFlags
		seqid             string
		positions         stringList
		segments, summary bool
	)

	var flags flag.FlagSet

	common.register(&flags)
	flags.Var(&positions, "position", "positions to annotate")
	flags.Var(&positions, "p", "positions to annotate")
	flags.StringVar(&seqid, "seqid", "", "only use features of this chromosome")
	flags.BoolVar(&segments, "segments", false, "write all segments of the lookup table")
	flags.BoolVar(&summary, "summary", false, "log a summary of the lookup table")

	parseFlags(&flags, &common, GffLookupHelp)

	if len(positions) == 0 && !segments {
		fmt.Fprintln(os.Stderr, "Missing --position or --segments parameter.")
		fmt.Fprint(os.Stderr, GffLookupHelp)
		os.Exit(1)
	}

	if err := setupLogging(&common); err != nil {
		return err
	}

	queries, err := parsePositions(positions)
	if err != nil {
		return err
	}

	log.Info("Building lookup table with the following parameters",
		"input", displayName(common.input),
		"output", displayName(common.output),
		"seqid", seqid,
		"positions", positions.String(),
		"segments", segments)

	lines, _, err := gff.ReadFile(common.input)
	if err != nil {
		return err
	}
	if seqid != "" {
		lines = selectSeqid(lines, seqid)
	}
	table, err := lookup.Build(lines)
	if err != nil {
		return err
	}

	if summary {
		coverage := table.Coverage()
		log.Info("Lookup table",
			"seqid", table.Seqid(),
			"features", len(table.Features()),
			"blocks", len(table.Blocks()),
			"segments", len(table.Segments()),
			"min", table.Min(),
			"max", table.Max(),
			"covered", coverage.Count(),
			"gaps", coverage.Len()-coverage.Count())
	}

	return writeOutput(common.output, func(w io.Writer) error {
		tw := tsv.NewWriter(w)
		if segments {
			if err := writeSegments(tw, table); err != nil {
				return err
			}
		} else if err := writeAnnotations(tw, table, queries); err != nil {
			return err
		}
		return tw.Flush()
	})
}

func selectSeqid(lines []*gff.Line, seqid string) (selected []*gff.Line) {
	for _, line := range lines {
		if line.Columns.Seqid == seqid {
			selected = append(selected, line)
		}
	}
	return selected
}

func lineID(line *gff.Line) string {
	if line == nil {
		return "."
	}
	return tables.QuoteTSV(line.ID())
}

func writeHeader(tw *tsv.Writer, columns ...string) error {
	for _, column := range columns {
		tw.WriteString(column)
	}
	return tw.EndLine()
}

func writeAnnotations(tw *tsv.Writer, table *lookup.Table, positions []int) error {
	if err := writeHeader(tw, "position", "kind", "feature", "upstream", "downstream", "relation", "offset", "tag"); err != nil {
		return err
	}
	for _, pos := range positions {
		annotation, err := table.Locate(pos)
		if err != nil {
			return errors.Wrapf(err, "on %v", table.Seqid())
		}
		description, _ := annotation.Describe(pos)
		tw.WriteInt64(int64(pos))
		tw.WriteString(annotation.Kind.String())
		tw.WriteString(lineID(annotation.Feature))
		tw.WriteString(lineID(annotation.Upstream))
		tw.WriteString(lineID(annotation.Downstream))
		tw.WriteString(description.Relation.String())
		tw.WriteInt64(int64(description.Offset))
		tw.WriteString(tables.QuoteTSV(description.Tag))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return nil
}

func writeSegments(tw *tsv.Writer, table *lookup.Table) error {
	if err := writeHeader(tw, "seqid", "start", "end", "kind", "feature", "upstream", "downstream"); err != nil {
		return err
	}
	for _, segment := range table.Segments() {
		tw.WriteString(tables.QuoteTSV(table.Seqid()))
		tw.WriteInt64(int64(segment.Start))
		tw.WriteInt64(int64(segment.End))
		tw.WriteString(segment.Kind.String())
		tw.WriteString(lineID(segment.Feature))
		tw.WriteString(lineID(segment.Upstream))
		tw.WriteString(lineID(segment.Downstream))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return nil
}
