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
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenGzip(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.gff")
	if err := ioutil.WriteFile(plain, []byte("##gff-version 3\n"), 0666); err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "compressed.gff.gz")
	f, err := os.Create(compressed)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("##gff-version 3\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{plain, compressed} {
		input, err := Open(name)
		if err != nil {
			t.Fatal(err)
		}
		data, err := ioutil.ReadAll(input)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "##gff-version 3\n" {
			t.Errorf("%v read as %q", name, data)
		}
		if err := input.Close(); err != nil {
			t.Error(err)
		}
	}
	if _, err := Open(filepath.Join(dir, "missing.gff")); err == nil {
		t.Error("missing file opened")
	}
}

func TestCreate(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	output, err := Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := output.WriteString("data\n"); err != nil {
		t.Fatal(err)
	}
	if err := output.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := ioutil.ReadFile(name)
	if err != nil || string(data) != "data\n" {
		t.Errorf("unexpected file contents %q, %v", data, err)
	}
}
