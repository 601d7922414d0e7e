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
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/grailbio/base/tsv"
	"golang.org/x/sys/unix"

	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/lookup"
	"github.com/exascience/bioino/tables"
)

func TestStringList(t *testing.T) {
	var l stringList
	_ = l.Set("a,b")
	_ = l.Set(" c ")
	if l.String() != "a,b,c" {
		t.Errorf("unexpected list %v", l)
	}
}

func TestTableFormat(t *testing.T) {
	if format, err := tableFormat("", "x.csv"); err != nil || format != tables.CSV {
		t.Error("format not sniffed")
	}
	if format, err := tableFormat("tsv", "x.csv"); err != nil || format != tables.TSV {
		t.Error("flag does not override file name")
	}
	if format, err := tableFormat("", ""); err != nil || format != tables.TSV {
		t.Error("no TSV default")
	}
	if _, err := tableFormat("", "x.xlsx"); err != tables.ErrUnsupportedFormat {
		t.Errorf("spreadsheet not rejected: %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(&os.PathError{Op: "write", Path: "/dev/stdout", Err: unix.EPIPE}) {
		t.Error("EPIPE not recognized")
	}
	if IsBrokenPipe(os.ErrNotExist) {
		t.Error("unrelated error recognized")
	}
}

const lookupGff = "chr1\ttest\tgene\t1\t10\t.\t+\t.\tID=a\n" +
	"chr1\ttest\tgene\t20\t30\t.\t-\t.\tID=b;Name=geneB\n" +
	"chr2\ttest\tgene\t1\t10\t.\t+\t.\tID=c\n"

func buildTable(t *testing.T) *lookup.Table {
	t.Helper()
	lines, _, err := gff.ReadAll(strings.NewReader(lookupGff))
	if err != nil {
		t.Fatal(err)
	}
	table, err := lookup.Build(selectSeqid(lines, "chr1"))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestWriteAnnotations(t *testing.T) {
	table := buildTable(t)
	var buf bytes.Buffer
	tw := tsv.NewWriter(&buf)
	if err := writeAnnotations(tw, table, []int{5, 15, 25}); err != nil {
		t.Fatal(err)
	}
	if err := tw.Flush(); err != nil {
		t.Fatal(err)
	}
	expected := "position\tkind\tfeature\tupstream\tdownstream\trelation\toffset\ttag\n" +
		"5\tfeature\ta\t.\t.\twithin\t4\ta\n" +
		"15\tboundary\t.\ta\tb\tdownstream\t14\t_down-a\n" +
		"25\tfeature\tb\t.\t.\twithin\t5\tgeneB\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%v", buf.String())
	}
	if err := writeAnnotations(tw, table, []int{31}); err == nil {
		t.Error("out of range position not reported")
	}
}

func TestWriteSegments(t *testing.T) {
	var buf bytes.Buffer
	tw := tsv.NewWriter(&buf)
	if err := writeSegments(tw, buildTable(t)); err != nil {
		t.Fatal(err)
	}
	if err := tw.Flush(); err != nil {
		t.Fatal(err)
	}
	expected := "seqid\tstart\tend\tkind\tfeature\tupstream\tdownstream\n" +
		"chr1\t1\t10\tfeature\ta\t.\t.\n" +
		"chr1\t11\t19\tboundary\t.\ta\tb\n" +
		"chr1\t20\t30\tfeature\tb\t.\t.\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%v", buf.String())
	}
}

func TestLineID(t *testing.T) {
	if id := lineID(nil); id != "." {
		t.Errorf("missing feature written as %q", id)
	}
	line := &gff.Line{Attributes: gff.DecodeAttributes("ID=a\tb")}
	if id := lineID(line); id != "\"a\tb\"" {
		t.Errorf("tab in ID not quoted: %q", id)
	}
}
