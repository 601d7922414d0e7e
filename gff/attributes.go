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

import "strings"

// An Attribute is one key=value pair of the attribute column.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is the decoded attribute column of a GFF line. It
// behaves like a map from keys to values that remembers insertion
// order, so that encoding the attributes again reproduces the
// original column.
type Attributes []Attribute

// Len returns the number of attributes.
func (attrs Attributes) Len() int {
	return len(attrs)
}

// Get returns the value for the given key, and whether it was found.
func (attrs Attributes) Get(key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the given key is present.
func (attrs Attributes) Has(key string) bool {
	_, ok := attrs.Get(key)
	return ok
}

// Set associates the given value with the given key. An existing key
// keeps its position and gets the new value, otherwise the pair is
// appended.
func (attrs *Attributes) Set(key, value string) {
	for index := range *attrs {
		if (*attrs)[index].Key == key {
			(*attrs)[index].Value = value
			return
		}
	}
	*attrs = append(*attrs, Attribute{key, value})
}

// Delete returns the attributes without the entry for the given key,
// and whether such an entry existed.
func (attrs Attributes) Delete(key string) (Attributes, bool) {
	for index, attr := range attrs {
		if attr.Key == key {
			return append(attrs[:index], attrs[index+1:]...), true
		}
	}
	return attrs, false
}

// Keys returns the attribute keys in order.
func (attrs Attributes) Keys() []string {
	keys := make([]string, len(attrs))
	for i, attr := range attrs {
		keys[i] = attr.Key
	}
	return keys
}

// Equal reports whether both have the same pairs in the same order.
// A nil and an empty Attributes are equal.
func (attrs Attributes) Equal(other Attributes) bool {
	if len(attrs) != len(other) {
		return false
	}
	for i, attr := range attrs {
		if attr != other[i] {
			return false
		}
	}
	return true
}

// DecodeAttributes parses the attribute column of a GFF line.
//
// The column is split on ';', and each piece on its first '='.
// Whitespace around keys and values is removed. Pieces without '='
// are ignored. When a key occurs more than once, the last value wins.
func DecodeAttributes(raw string) (attrs Attributes) {
	for len(raw) > 0 {
		var piece string
		if i := strings.IndexByte(raw, ';'); i >= 0 {
			piece, raw = raw[:i], raw[i+1:]
		} else {
			piece, raw = raw, ""
		}
		eq := strings.IndexByte(piece, '=')
		if eq < 0 {
			continue
		}
		attrs.Set(strings.TrimSpace(piece[:eq]), strings.TrimSpace(piece[eq+1:]))
	}
	return attrs
}

// AppendAttributes appends the encoded attributes to out.
func AppendAttributes(out []byte, attrs Attributes) []byte {
	for i, attr := range attrs {
		if i > 0 {
			out = append(out, ';')
		}
		out = append(out, attr.Key...)
		out = append(out, '=')
		out = append(out, attr.Value...)
	}
	return out
}

// EncodeAttributes joins the attributes as key=value pairs separated
// by ';', in order. No attributes encode to the empty string.
func EncodeAttributes(attrs Attributes) string {
	return string(AppendAttributes(nil, attrs))
}
