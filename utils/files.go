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

package utils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/pkg/errors"
)

// IsGzip determines if the the given byte scanner produces
// a gzip file. It uses ReadByte and UnreadByte to check
// only the initial byte from the input. Empty input is not gzip.
func IsGzip(scanner io.ByteScanner) (bool, error) {
	b, err := scanner.ReadByte()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := scanner.UnreadByte(); err != nil {
		return false, err
	}
	return b == 0x1f, nil
}

// HandleGzip checks if the given reader produces a gzip file
// by looking at the initial byte. It then either returns
// a gzip.Reader, or returns the given reader unchanged.
// BGZF files are valid multi-member gzip files and are handled
// as well.
func HandleGzip(buf *bufio.Reader) (io.Reader, error) {
	ok, err := IsGzip(buf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return buf, nil
	}
	return gzip.NewReader(buf)
}

func isStdin(name string) bool {
	return name == "" || name == "-" || name == "/dev/stdin"
}

func isStdout(name string) bool {
	return name == "" || name == "-" || name == "/dev/stdout"
}

// InputFile is a buffered text input, possibly gzip-compressed.
type InputFile struct {
	rc io.ReadCloser
	*bufio.Reader
}

// OutputFile is a buffered text output.
type OutputFile struct {
	wc io.WriteCloser
	*bufio.Writer
}

// Open a file for input.
//
// If the name is "", "-" or "/dev/stdin", then the input is read from
// os.Stdin. Gzip-compressed input is decompressed transparently.
func Open(name string) (*InputFile, error) {
	var rc io.ReadCloser
	if isStdin(name) {
		rc = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		rc = file
	}
	r, err := HandleGzip(bufio.NewReader(rc))
	if err != nil {
		if rc != os.Stdin {
			_ = rc.Close()
		}
		return nil, errors.Wrapf(err, "while opening %v", name)
	}
	if buf, ok := r.(*bufio.Reader); ok {
		return &InputFile{rc, buf}, nil
	}
	return &InputFile{rc, bufio.NewReader(r)}, nil
}

// Close the input file, unless it is os.Stdin.
func (input *InputFile) Close() error {
	if input.rc != os.Stdin {
		return input.rc.Close()
	}
	return nil
}

// Create a file for output.
//
// If the name is "", "-" or "/dev/stdout", then the output is written
// to os.Stdout.
func Create(name string) (*OutputFile, error) {
	if isStdout(name) {
		return &OutputFile{os.Stdout, bufio.NewWriter(os.Stdout)}, nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &OutputFile{file, bufio.NewWriter(file)}, nil
}

// Close flushes the output file, and closes it unless it is os.Stdout.
func (output *OutputFile) Close() error {
	err := output.Flush()
	if output.wc != os.Stdout {
		if nerr := output.wc.Close(); err == nil {
			err = nerr
		}
	}
	return err
}
