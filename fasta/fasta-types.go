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

// Package fasta is a library for reading and writing FASTA sequence
// records.
package fasta

import "strings"

// A Sequence is one FASTA record.
type Sequence struct {
	Name        string
	Description string
	Sequence    string
}

// Format appends the record to out: a header line with the name and,
// if not empty, the description separated by a space, followed by the
// sequence on one line.
func (seq *Sequence) Format(out []byte) []byte {
	out = append(out, '>')
	out = append(out, seq.Name...)
	if seq.Description != "" {
		out = append(out, ' ')
		out = append(out, seq.Description...)
	}
	out = append(out, '\n')
	out = append(out, seq.Sequence...)
	return append(out, '\n')
}

func (seq *Sequence) String() string {
	return string(seq.Format(nil))
}

// ParseHeader splits a header line into name and description. The
// leading '>' is optional. The name extends up to the first space or
// tab.
func ParseHeader(header string) (name, description string) {
	header = strings.TrimPrefix(header, ">")
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i], strings.TrimSpace(header[i+1:])
	}
	return header, ""
}
