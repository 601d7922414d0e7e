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

import "testing"

func TestDecodeAttributes(t *testing.T) {
	attrs := DecodeAttributes("ID=gene01;Name=abc; note = some text ;Parent=x")
	if attrs.Len() != 4 {
		t.Fatalf("expected 4 attributes, got %v", attrs.Len())
	}
	if value, _ := attrs.Get("note"); value != "some text" {
		t.Errorf("whitespace not trimmed: %q", value)
	}
	if keys := attrs.Keys(); keys[0] != "ID" || keys[3] != "Parent" {
		t.Errorf("order not kept: %v", keys)
	}
	if DecodeAttributes("") != nil {
		t.Error("empty column decodes to attributes")
	}
	if attrs := DecodeAttributes("ID=a;;broken;Name=b"); attrs.Len() != 2 {
		t.Errorf("malformed tokens not ignored: %v", attrs)
	}
	if value, _ := DecodeAttributes("a=x=y").Get("a"); value != "x=y" {
		t.Errorf("split not on the first '=': %q", value)
	}
}

func TestDuplicateAttributes(t *testing.T) {
	attrs := DecodeAttributes("ID=a;Name=b;ID=c")
	if attrs.Len() != 2 {
		t.Fatalf("duplicate key added twice: %v", attrs)
	}
	if value, _ := attrs.Get("ID"); value != "c" {
		t.Errorf("last write does not win: %q", value)
	}
	if attrs[0].Key != "ID" {
		t.Error("duplicate key moved")
	}
}

func TestEncodeAttributes(t *testing.T) {
	if EncodeAttributes(nil) != "" {
		t.Error("empty attributes do not encode to the empty string")
	}
	raw := "ID=gene01;Name=abc;Parent=x"
	if encoded := EncodeAttributes(DecodeAttributes(raw)); encoded != raw {
		t.Errorf("round trip failed: %q", encoded)
	}
	var attrs Attributes
	attrs.Set("b", "1")
	attrs.Set("a", "2")
	if encoded := EncodeAttributes(attrs); encoded != "b=1;a=2" {
		t.Errorf("insertion order not kept: %q", encoded)
	}
	attrs, ok := attrs.Delete("b")
	if !ok || EncodeAttributes(attrs) != "a=2" {
		t.Errorf("Delete failed: %v", attrs)
	}
}
