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

package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/exascience/pargo/pipeline"
	"github.com/pkg/errors"

	"github.com/exascience/bioino/internal"
	"github.com/exascience/bioino/utils"
)

// A Reader reads FASTA records from an input stream. Sequences that
// span several lines are joined.
type Reader struct {
	scanner *bufio.Scanner
	header  string
	seq     *Sequence
	err     error
	started bool
}

// NewReader returns a Reader for r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)
	return &Reader{scanner: scanner}
}

// Next advances to the next record. It returns false at the end of
// the input or on the first error.
func (r *Reader) Next() bool {
	r.seq = nil
	if r.err != nil {
		return false
	}
	if !r.started {
		r.started = true
		for r.scanner.Scan() {
			line := strings.TrimSpace(r.scanner.Text())
			if line == "" {
				continue
			}
			if line[0] != '>' {
				r.err = errors.Errorf("invalid FASTA input, missing first header before %q", line)
				return false
			}
			r.header = line
			break
		}
	}
	if r.header == "" {
		r.err = r.scanner.Err()
		return false
	}
	var seq strings.Builder
	next := ""
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			next = line
			break
		}
		seq.WriteString(line)
	}
	if err := r.scanner.Err(); err != nil {
		r.err = errors.Wrap(err, "while reading FASTA input")
		return false
	}
	name, description := ParseHeader(r.header)
	r.seq = &Sequence{Name: name, Description: description, Sequence: seq.String()}
	r.header = next
	return true
}

// Sequence returns the record read by the most recent call to Next.
func (r *Reader) Sequence() *Sequence {
	return r.seq
}

// Err returns the first error encountered by Next.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads all records from r.
func ReadAll(r io.Reader) ([]Sequence, error) {
	reader := NewReader(r)
	var seqs []Sequence
	for reader.Next() {
		seqs = append(seqs, *reader.Sequence())
	}
	return seqs, reader.Err()
}

const (
	minBatchSize = 256
	maxBatchSize = 16384
)

// WriteSequences formats the records in parallel batches and writes
// them to w in order.
func WriteSequences(w io.Writer, seqs []Sequence) error {
	var p pipeline.Pipeline
	p.Source(seqs)
	p.SetVariableBatchSize(minBatchSize, maxBatchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			buf := internal.ReserveByteBuffer()
			for i, seqs := 0, data.([]Sequence); i < len(seqs); i++ {
				buf = seqs[i].Format(buf)
			}
			return buf
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			buf := data.([]byte)
			if _, err := w.Write(buf); err != nil {
				p.SetErr(errors.Wrap(err, "while writing FASTA records"))
			}
			internal.ReleaseByteBuffer(buf)
			return nil
		})),
	)
	return internal.RunPipeline(&p)
}

// WriteFile creates a FASTA file and writes the records to it. See
// utils.Create for the handling of names.
func WriteFile(name string, seqs []Sequence) (err error) {
	output, err := utils.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); err == nil {
			err = nerr
		}
	}()
	return WriteSequences(output, seqs)
}
