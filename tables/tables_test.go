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

package tables

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/exascience/bioino/fasta"
	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/utils"
)

const twoLines = "TEST\ttest\tgene\t1\t100\t.\t+\t+\tID=test001;comment=Test\n" +
	"TEST\ttest\tgene\t121\t120\t.\t+\t-\tID=test001;tag=test_tag\n"

func readGff(t *testing.T, s string) []*gff.Line {
	t.Helper()
	lines, _, err := gff.ReadAll(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestGffToTSV(t *testing.T) {
	lines := readGff(t, "test_seq\ttest_source\tgene\t1\t10\t.\t+\t.\tID=test01;attr1=+\n")
	var buf bytes.Buffer
	if err := WriteGffTable(&buf, lines, TSV, false); err != nil {
		t.Fatal(err)
	}
	expected := "seqid\tsource\tfeature\tstart\tend\tscore\tstrand\tphase\tID\tattr1\n" +
		"test_seq\ttest_source\tgene\t1\t10\t.\t+\t.\ttest01\t+\n"
	if buf.String() != expected {
		t.Errorf("unexpected table:\n%q", buf.String())
	}
}

func TestGffToCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGffTable(&buf, readGff(t, twoLines), CSV, false); err != nil {
		t.Fatal(err)
	}
	expected := "seqid,source,feature,start,end,score,strand,phase,ID,comment,tag\n" +
		"TEST,test,gene,1,100,.,+,+,test001,Test,\n" +
		"TEST,test,gene,121,120,.,+,-,test001,,test_tag\n"
	if buf.String() != expected {
		t.Errorf("unexpected table:\n%v", buf.String())
	}
}

func TestGffTableMetadata(t *testing.T) {
	var buf bytes.Buffer
	lines := readGff(t, "##gff-version 3\n#comment\n"+twoLines)
	if err := WriteGffTable(&buf, lines, TSV, true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "##gff-version 3\n#comment\nseqid\t") {
		t.Errorf("metadata not written first:\n%v", buf.String())
	}
	if err := WriteGffTable(&buf, nil, TSV, true); err != ErrEmptyStream {
		t.Errorf("empty stream not reported: %v", err)
	}
}

func TestGffRoundTrip(t *testing.T) {
	lines := readGff(t, twoLines)
	table, err := FromGff(lines)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := table.Write(&buf, CSV); err != nil {
		t.Fatal(err)
	}
	read, err := ReadTable(&buf, CSV)
	if err != nil {
		t.Fatal(err)
	}
	again, err := read.ToGff()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(lines) {
		t.Fatalf("expected %v lines, got %v", len(lines), len(again))
	}
	for i, line := range lines {
		line.Metadata = nil
		if !line.Equal(again[i]) {
			t.Errorf("line %v differs: %v", i, again[i])
		}
	}
}

func TestTabsInCells(t *testing.T) {
	lines := readGff(t, "chr1\tsrc\tgene\t5\t50\t.\t+\t.\tID=a\tNote=x;Alias=say \"hi\"\n")
	var buf bytes.Buffer
	if err := WriteGffTable(&buf, lines, TSV, false); err != nil {
		t.Fatal(err)
	}
	expected := "seqid\tsource\tfeature\tstart\tend\tscore\tstrand\tphase\tID\tAlias\n" +
		"chr1\tsrc\tgene\t5\t50\t.\t+\t.\t\"a\tNote=x\"\t\"say \"\"hi\"\"\"\n"
	if buf.String() != expected {
		t.Errorf("unexpected table:\n%q", buf.String())
	}
	table, err := ReadTable(&buf, TSV)
	if err != nil {
		t.Fatal(err)
	}
	again, err := table.ToGff()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 1 || !lines[0].Equal(again[0]) {
		t.Errorf("tab-bearing attribute did not survive the table: %v", again)
	}
}

func TestQuoteTSV(t *testing.T) {
	for cell, expected := range map[string]string{
		"plain":   "plain",
		"a\tb":    "\"a\tb\"",
		"a\nb":    "\"a\nb\"",
		`say "x"`: `"say ""x"""`,
	} {
		if quoted := QuoteTSV(cell); quoted != expected {
			t.Errorf("QuoteTSV(%q) = %q, expected %q", cell, quoted, expected)
		}
	}
}

func TestLargeTable(t *testing.T) {
	table := &Table{Header: []string{"name", "count"}}
	for i := 0; i < 20000; i++ {
		var row utils.SmallMap
		row.Set("name", "row "+strconv.Itoa(i))
		row.Set("count", i)
		table.Rows = append(table.Rows, row)
	}
	var buf bytes.Buffer
	if err := table.Write(&buf, TSV); err != nil {
		t.Fatal(err)
	}
	read, err := ReadTable(&buf, TSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(read.Rows) != len(table.Rows) {
		t.Fatalf("expected %v rows, got %v", len(table.Rows), len(read.Rows))
	}
	for i, row := range read.Rows {
		if count, _ := row.Get("count"); count != strconv.Itoa(i) {
			t.Fatalf("row %v out of order: %v", i, count)
		}
	}
}

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader("a,b\n1,\"x, y\"\n2,z\n"), CSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Header) != 2 || len(table.Rows) != 2 {
		t.Fatalf("unexpected table %+v", table)
	}
	if b, _ := table.Rows[0].Get("b"); b != "x, y" {
		t.Errorf("quoted cell read as %q", b)
	}
	if _, err := ReadTable(strings.NewReader("a\tb\n1\n"), TSV); err == nil {
		t.Error("ragged row not reported")
	}
	if _, err := ReadTable(strings.NewReader(""), TSV); err == nil {
		t.Error("missing header not reported")
	}
	if _, err := ReadTable(strings.NewReader("a,a\n1,2\n"), CSV); err == nil {
		t.Error("duplicate column not reported")
	}
}

func TestFormats(t *testing.T) {
	for name, expected := range map[string]Format{"x.csv": CSV, "x.tsv": TSV, "x.txt": TSV, "x.CSV.gz": CSV} {
		if format, err := SniffFormat(name); err != nil || format != expected {
			t.Errorf("%v sniffed as %v, %v", name, format, err)
		}
	}
	if _, err := SniffFormat("x.xlsx"); err != ErrUnsupportedFormat {
		t.Errorf("spreadsheet not rejected: %v", err)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Error("unknown format accepted")
	}
	if format, err := ParseFormat("TSV"); err != nil || format != TSV {
		t.Error("TSV not parsed")
	}
}

func TestToFasta(t *testing.T) {
	var row utils.SmallMap
	row.Set("name", "Seq1")
	row.Set("seq", "AAAAA")
	row.Set("data", "Some-info")
	table := &Table{Header: []string{"name", "seq", "data"}, Rows: []utils.SmallMap{row}}
	seqs, err := table.ToFasta("seq", []string{"name"}, []string{"data"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := fasta.WriteSequences(&buf, seqs); err != nil {
		t.Fatal(err)
	}
	if buf.String() != ">Seq1 data=Some-info\nAAAAA\n" {
		t.Errorf("unexpected FASTA %q", buf.String())
	}
}

func TestToFastaJoins(t *testing.T) {
	table, err := ReadTable(strings.NewReader("seq\ttitle\tinfo (x)\tscore\natcg\tseq 1\tSeq 1\t1\naaaa\tseq2\tSeq1\t2\n"), TSV)
	if err != nil {
		t.Fatal(err)
	}
	seqs, err := table.ToFasta("seq", []string{"title", "info (x)"}, []string{"info_x", "score"})
	if err != nil {
		t.Fatal(err)
	}
	if seqs[0].Name != "seq-1_Seq-1" || seqs[0].Description != "info_x=Seq_1;score=1" || seqs[0].Sequence != "atcg" {
		t.Errorf("unexpected record %+v", seqs[0])
	}
	if seqs[1].Name != "seq2_Seq1" || seqs[1].Description != "info_x=Seq1;score=2" {
		t.Errorf("unexpected record %+v", seqs[1])
	}
	_, err = table.ToFasta("sequence", []string{"title", "nope"}, nil)
	if err == nil || !strings.Contains(err.Error(), "nope") || !strings.Contains(err.Error(), "sequence") {
		t.Errorf("missing columns not reported: %v", err)
	}
}
