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
	"io"

	"github.com/pkg/errors"

	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/utils"
)

// ErrEmptyStream is returned when there are no GFF lines to write.
var ErrEmptyStream = errors.New("GFF stream is empty")

// FromGff converts GFF lines to a table. The header consists of the
// GFF columns followed by all attribute keys in order of first
// appearance.
func FromGff(lines []*gff.Line) (*Table, error) {
	header := append([]string(nil), gff.ColumnNames...)
	seen := make(map[utils.Symbol]bool)
	table := &Table{Rows: make([]utils.SmallMap, 0, len(lines))}
	for i, line := range lines {
		row, err := line.AsMap()
		if err != nil {
			return nil, errors.Wrapf(err, "GFF line %v", i+1)
		}
		for _, key := range line.Attributes.Keys() {
			if symbol := utils.Intern(key); !seen[symbol] {
				seen[symbol] = true
				header = append(header, key)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	table.Header = header
	return table, nil
}

// WriteGffTable writes GFF lines as a table. With includeMetadata, the
// header metadata of the GFF stream is written first, as GFF header
// lines.
func WriteGffTable(w io.Writer, lines []*gff.Line, format Format, includeMetadata bool) error {
	if len(lines) == 0 {
		return ErrEmptyStream
	}
	table, err := FromGff(lines)
	if err != nil {
		return err
	}
	if includeMetadata {
		var out []byte
		for _, m := range lines[0].Metadata {
			out = m.Format(out)
		}
		if _, err := w.Write(out); err != nil {
			return errors.Wrap(err, "while writing GFF metadata")
		}
	}
	return table.Write(w, format)
}

// ToGff converts the rows of a table to GFF lines. The table must have
// all GFF columns. Other columns become attributes; empty cells are
// left out.
func (table *Table) ToGff() ([]*gff.Line, error) {
	lines := make([]*gff.Line, 0, len(table.Rows))
	for i, row := range table.Rows {
		d := make(utils.SmallMap, 0, len(row))
		for _, entry := range row {
			if !gff.IsColumnName(entry.Key) && CellString(entry.Value) == "" {
				continue
			}
			d = append(d, entry)
		}
		line, err := gff.FromMap(d)
		if err != nil {
			return nil, errors.Wrapf(err, "table row %v", i+1)
		}
		lines = append(lines, line)
	}
	return lines, nil
}
