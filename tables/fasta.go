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
	"strings"

	"github.com/pkg/errors"

	"github.com/exascience/bioino/fasta"
)

var columnSanitizer = strings.NewReplacer(" ", "_", "(", "", ")", "")

// SanitizeColumn normalizes a column name: spaces become underscores
// and parentheses are removed.
func SanitizeColumn(name string) string {
	return columnSanitizer.Replace(name)
}

// ToFasta converts the rows of a table to FASTA records.
//
// The sequence is taken from the sequence column. The name joins the
// values of the name columns with '_', after replacing spaces by '-'.
// The description joins column=value pairs for the description
// columns with ';', after replacing spaces in the values by '_'.
// Column names are matched after sanitizing both the requested names
// and the header.
func (table *Table) ToFasta(sequence string, names, descriptions []string) ([]fasta.Sequence, error) {
	if len(names) == 0 {
		return nil, errors.New("at least one name column is required")
	}
	columns := make(map[string]string, len(table.Header))
	for _, name := range table.Header {
		columns[SanitizeColumn(name)] = name
	}
	var missing []string
	resolve := func(requested []string) []string {
		resolved := make([]string, len(requested))
		for i, name := range requested {
			sanitized := SanitizeColumn(name)
			column, ok := columns[sanitized]
			if !ok {
				missing = append(missing, sanitized)
			}
			resolved[i] = column
		}
		return resolved
	}
	nameColumns := resolve(names)
	descriptionColumns := resolve(descriptions)
	sequenceColumn := resolve([]string{sequence})[0]
	if len(missing) > 0 {
		return nil, errors.Errorf("some requested columns not in the table: %q", missing)
	}
	labels := make([]string, len(descriptions))
	for i, name := range descriptions {
		labels[i] = SanitizeColumn(name)
	}

	seqs := make([]fasta.Sequence, 0, len(table.Rows))
	var name, description strings.Builder
	for _, row := range table.Rows {
		name.Reset()
		for i, column := range nameColumns {
			if i > 0 {
				name.WriteByte('_')
			}
			value, _ := row.Get(column)
			name.WriteString(strings.ReplaceAll(CellString(value), " ", "-"))
		}
		description.Reset()
		for i, column := range descriptionColumns {
			if i > 0 {
				description.WriteByte(';')
			}
			value, _ := row.Get(column)
			description.WriteString(labels[i])
			description.WriteByte('=')
			description.WriteString(strings.ReplaceAll(CellString(value), " ", "_"))
		}
		value, _ := row.Get(sequenceColumn)
		seqs = append(seqs, fasta.Sequence{
			Name:        name.String(),
			Description: description.String(),
			Sequence:    CellString(value),
		})
	}
	return seqs, nil
}
