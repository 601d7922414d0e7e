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

package gff

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/exascience/bioino/utils"
)

// A StringScanner can be used scan/parse strings representing
// lines in GFF files.
//
// The zero StringScanner is valid and empty.
type StringScanner struct {
	index int
	data  string
	err   error
}

// Reset resets the scanner, and initializes it with the given string.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
	sc.err = nil
}

// Len returns the number of ASCII characters that still need to be
// scanned/parsed.
func (sc *StringScanner) Len() int {
	return len(sc.data) - sc.index
}

// Err returns the first error the scanner encountered, if any.
func (sc *StringScanner) Err() error {
	return sc.err
}

// SkipSpace skips ' ' and '\t' bytes.
func (sc *StringScanner) SkipSpace() {
	for end := sc.index; end < len(sc.data); end++ {
		if c := sc.data[end]; c != ' ' && c != '\t' {
			sc.index = end
			return
		}
	}
	sc.index = len(sc.data)
}

func (sc *StringScanner) readUntilByte(c byte) (s string, found bool) {
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

func (sc *StringScanner) readToken() string {
	sc.SkipSpace()
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if c := sc.data[end]; c == ' ' || c == '\t' {
			sc.index = end
			return sc.data[start:end]
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:]
}

func (sc *StringScanner) parseInt(key, value string) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		if sc.err == nil {
			sc.err = errors.Wrapf(err, "invalid %v", key)
		}
		return 0
	}
	return i
}

// ParseColumns parses a GFF data line into its 8 columns and the raw
// attribute column.
//
// The line is split on tabs. The ninth field is the rest of the line,
// so it may itself contain tabs. A line with fewer than 8 tab-separated
// fields is split on runs of whitespace instead, in which case the
// tokens after the eighth are joined by single spaces to form the
// attribute column.
func (sc *StringScanner) ParseColumns() (columns Columns, attributes string) {
	if sc.err != nil {
		return
	}
	if strings.Count(sc.data[sc.index:], "\t") < 7 {
		return sc.parseWhitespaceColumns()
	}
	var fields [8]string
	for i := range fields {
		fields[i], _ = sc.readUntilByte('\t')
	}
	attributes = sc.data[sc.index:]
	sc.index = len(sc.data)
	return sc.makeColumns(fields), attributes
}

func (sc *StringScanner) parseWhitespaceColumns() (columns Columns, attributes string) {
	var fields [8]string
	for i := range fields {
		if fields[i] = sc.readToken(); fields[i] == "" {
			if sc.err == nil {
				sc.err = errors.Errorf("expected 8 columns, found %v", i)
			}
			return
		}
	}
	var rest []string
	for token := sc.readToken(); token != ""; token = sc.readToken() {
		rest = append(rest, token)
	}
	return sc.makeColumns(fields), strings.Join(rest, " ")
}

func (sc *StringScanner) makeColumns(fields [8]string) Columns {
	return Columns{
		Seqid:   utils.InternString(fields[0]),
		Source:  utils.InternString(fields[1]),
		Feature: utils.InternString(fields[2]),
		Start:   sc.parseInt(StartKey, fields[3]),
		End:     sc.parseInt(EndKey, fields[4]),
		Score:   fields[5],
		Strand:  Strand(fields[6]),
		Phase:   Phase(fields[7]),
	}
}

// ParseLine parses a complete GFF data line.
func (sc *StringScanner) ParseLine() *Line {
	columns, raw := sc.ParseColumns()
	if sc.err != nil {
		return nil
	}
	return &Line{Columns: columns, Attributes: DecodeAttributes(raw)}
}
