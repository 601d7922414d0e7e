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

// Package tables reads and writes delimited tables, and converts
// between tables, GFF lines, and FASTA records.
package tables

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"

	"github.com/exascience/bioino/internal"
	"github.com/exascience/bioino/utils"
)

// Format is a delimited text format.
type Format int

// Supported formats.
const (
	TSV Format = iota
	CSV
)

func (format Format) String() string {
	switch format {
	case TSV:
		return "TSV"
	case CSV:
		return "CSV"
	default:
		return fmt.Sprintf("Format(%d)", int(format))
	}
}

// Comma returns the field delimiter of the format.
func (format Format) Comma() rune {
	if format == CSV {
		return ','
	}
	return '\t'
}

// ErrUnsupportedFormat is returned for spreadsheet formats.
var ErrUnsupportedFormat = errors.New("spreadsheet formats are not supported, export the sheet as CSV or TSV")

// ParseFormat parses a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "tsv", "tab", "txt":
		return TSV, nil
	case "csv":
		return CSV, nil
	case "xlsx", "xls":
		return 0, ErrUnsupportedFormat
	default:
		return 0, errors.Errorf("unknown table format %v", name)
	}
}

// SniffFormat determines the format from a file name extension. A
// .gz suffix is ignored.
func SniffFormat(filename string) (Format, error) {
	ext := filepath.Ext(strings.TrimSuffix(filename, ".gz"))
	if ext == "" {
		return 0, errors.Errorf("cannot determine the table format of %v", filename)
	}
	return ParseFormat(ext[1:])
}

// A Table is a header row and rows of cells keyed by header names.
// Cell values are strings or integers. Rows may lack keys, which
// are written as empty cells.
type Table struct {
	Header []string
	Rows   []utils.SmallMap
}

// ReadTable reads a table with a header row. All rows must have as
// many cells as the header.
func ReadTable(r io.Reader, format Format) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = format.Comma()
	reader.LazyQuotes = true
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty table, missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "while reading table header")
	}
	for i, name := range header {
		for _, other := range header[:i] {
			if name == other {
				return nil, errors.Errorf("duplicate column %v in table header", name)
			}
		}
	}
	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "while reading table")
		}
		row := make(utils.SmallMap, len(header))
		for i, name := range header {
			row[i] = utils.SmallMapEntry{Key: name, Value: record[i]}
		}
		table.Rows = append(table.Rows, row)
	}
}

// ReadFile opens and reads a table file. See utils.Open for the
// handling of names.
func ReadFile(name string, format Format) (*Table, error) {
	input, err := utils.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = input.Close()
	}()
	table, err := ReadTable(input, format)
	if err != nil {
		return nil, errors.Wrapf(err, "while reading %v", name)
	}
	return table, nil
}

// CellString renders a cell value.
func CellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// QuoteTSV quotes a TSV cell that contains a tab, a line break or a
// double quote, so that ReadTable reads it back as a single cell.
// Other cells are returned unchanged.
func QuoteTSV(cell string) string {
	if !strings.ContainsAny(cell, "\t\n\r\"") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

type rowFormatter func(buf *bytes.Buffer, header []string, rows []utils.SmallMap) error

func formatTSV(buf *bytes.Buffer, header []string, rows []utils.SmallMap) error {
	tw := tsv.NewWriter(buf)
	for _, row := range rows {
		for _, name := range header {
			value, _ := row.Get(name)
			switch v := value.(type) {
			case int:
				tw.WriteInt64(int64(v))
			case int64:
				tw.WriteInt64(v)
			default:
				tw.WriteString(QuoteTSV(CellString(v)))
			}
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func formatCSV(buf *bytes.Buffer, header []string, rows []utils.SmallMap) error {
	cw := csv.NewWriter(buf)
	record := make([]string, len(header))
	for _, row := range rows {
		for i, name := range header {
			value, _ := row.Get(name)
			record[i] = CellString(value)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (format Format) formatter() rowFormatter {
	if format == CSV {
		return formatCSV
	}
	return formatTSV
}

func headerRow(header []string) utils.SmallMap {
	row := make(utils.SmallMap, len(header))
	for i, name := range header {
		row[i] = utils.SmallMapEntry{Key: name, Value: name}
	}
	return row
}

const (
	minBatchSize = 256
	maxBatchSize = 8192
)

// Write writes the header row and all rows to w. Rows are formatted
// in parallel batches and written in order.
func (table *Table) Write(w io.Writer, format Format) error {
	formatRows := format.formatter()
	var buf bytes.Buffer
	if err := formatRows(&buf, table.Header, []utils.SmallMap{headerRow(table.Header)}); err != nil {
		return errors.Wrap(err, "while formatting table header")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "while writing table header")
	}
	var p pipeline.Pipeline
	p.Source(table.Rows)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			buf := bytes.NewBuffer(internal.ReserveByteBuffer())
			if err := formatRows(buf, table.Header, data.([]utils.SmallMap)); err != nil {
				p.SetErr(errors.Wrap(err, "while formatting table rows"))
			}
			return buf.Bytes()
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			buf := data.([]byte)
			if _, err := w.Write(buf); err != nil {
				p.SetErr(errors.Wrap(err, "while writing table rows"))
			}
			internal.ReleaseByteBuffer(buf)
			return nil
		})),
	)
	return internal.RunPipeline(&p)
}
