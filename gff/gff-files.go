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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/exascience/bioino/utils"
)

// ParseMetadatum parses a GFF header line. It returns false if the line
// does not start with '#'.
func ParseMetadatum(line string) (Metadatum, bool) {
	var m Metadatum
	switch {
	case strings.HasPrefix(line, "##"):
		m.Flag = Constrained
		line = line[2:]
	case strings.HasPrefix(line, "#"):
		m.Flag = Free
		line = line[1:]
	default:
		return m, false
	}
	if fields := strings.Fields(line); len(fields) > 0 {
		m.Name = fields[0]
		if len(fields) > 1 {
			m.Values = fields[1:]
		}
	}
	return m, true
}

// Format appends the header line to out, including the terminating
// newline.
func (m Metadatum) Format(out []byte) []byte {
	if m.Flag == Constrained {
		out = append(out, "##"...)
	} else {
		out = append(out, '#')
	}
	out = append(out, m.Name...)
	for _, value := range m.Values {
		out = append(out, ' ')
		out = append(out, value...)
	}
	return append(out, '\n')
}

func (line *Line) appendData(out []byte) []byte {
	c := &line.Columns
	out = append(out, c.Seqid...)
	out = append(out, '\t')
	out = append(out, c.Source...)
	out = append(out, '\t')
	out = append(out, c.Feature...)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(c.Start), 10)
	out = append(out, '\t')
	out = strconv.AppendInt(out, int64(c.End), 10)
	out = append(out, '\t')
	out = append(out, c.Score...)
	out = append(out, '\t')
	out = append(out, c.Strand...)
	out = append(out, '\t')
	out = append(out, c.Phase...)
	if len(line.Attributes) > 0 {
		out = append(out, '\t')
		out = AppendAttributes(out, line.Attributes)
	}
	return out
}

// Format appends the line to out, optionally preceded by its metadata.
// The attribute column is left out when the line has no attributes.
func (line *Line) Format(out []byte, includeMetadata bool) []byte {
	if includeMetadata {
		for _, m := range line.Metadata {
			out = m.Format(out)
		}
	}
	return append(line.appendData(out), '\n')
}

// String returns the data line without metadata and without newline.
func (line *Line) String() string {
	return string(line.appendData(nil))
}

// A Reader reads GFF lines from an input stream.
type Reader struct {
	scanner    *bufio.Scanner
	sc         StringScanner
	pending    []Metadatum
	line       *Line
	lineNumber int
	err        error
}

const maxLineSize = 64 * 1024 * 1024

// NewReader returns a Reader for r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Next advances to the next data line. It returns false at the end of
// the input or on the first error.
func (r *Reader) Next() bool {
	r.line = nil
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.lineNumber++
		raw := r.scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		// tabs are kept, a trailing tab delimits an empty column
		text := strings.Trim(raw, " \r\n")
		if m, ok := ParseMetadatum(text); ok {
			r.pending = append(r.pending, m)
			continue
		}
		r.sc.Reset(text)
		line := r.sc.ParseLine()
		if err := r.sc.Err(); err != nil {
			r.err = &ParseError{Line: r.lineNumber, Text: text, Err: err}
			return false
		}
		line.Metadata = r.pending
		r.pending = nil
		r.line = line
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = errors.Wrapf(err, "while reading GFF line %v", r.lineNumber+1)
	}
	return false
}

// Line returns the line read by the most recent call to Next.
func (r *Reader) Line() *Line {
	return r.line
}

// Err returns the first error encountered by Next.
func (r *Reader) Err() error {
	return r.err
}

// LineNumber returns the 1-based number of the last physical line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Trailing returns the metadata that follows the last data line. It is
// only complete once Next has returned false.
func (r *Reader) Trailing() []Metadatum {
	return r.pending
}

// ReadAll reads all lines from r, and returns them together with the
// metadata that follows the last line.
func ReadAll(r io.Reader) ([]*Line, []Metadatum, error) {
	reader := NewReader(r)
	var lines []*Line
	for reader.Next() {
		lines = append(lines, reader.Line())
	}
	if err := reader.Err(); err != nil {
		return nil, nil, err
	}
	return lines, reader.Trailing(), nil
}

// ReadFile opens and reads a GFF file. See utils.Open for the handling
// of names.
func ReadFile(name string) ([]*Line, []Metadatum, error) {
	input, err := utils.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = input.Close()
	}()
	lines, trailing, err := ReadAll(input)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "while reading %v", name)
	}
	return lines, trailing, nil
}

// Write writes lines to w, each optionally preceded by its metadata,
// followed by the trailing metadata.
func Write(w io.Writer, lines []*Line, trailing []Metadatum, includeMetadata bool) error {
	var out []byte
	for _, line := range lines {
		out = line.Format(out[:0], includeMetadata)
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	if includeMetadata {
		out = out[:0]
		for _, m := range trailing {
			out = m.Format(out)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile creates a GFF file and writes lines to it. See
// utils.Create for the handling of names.
func WriteFile(name string, lines []*Line, trailing []Metadatum, includeMetadata bool) (err error) {
	output, err := utils.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); err == nil {
			err = nerr
		}
	}()
	return Write(output, lines, trailing, includeMetadata)
}
