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

import "fmt"

// A ParseError reports a malformed data line in a GFF stream.
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("GFF line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A MissingFieldError reports that a dictionary lacks one of the
// mandatory GFF columns.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory GFF column %v", e.Field)
}

// An AttributeCollisionError reports an attribute key that has the
// same name as one of the GFF columns, so that a flat dictionary
// cannot hold both.
type AttributeCollisionError struct {
	Key string
}

func (e *AttributeCollisionError) Error() string {
	return fmt.Sprintf("GFF attribute %v collides with the column of the same name", e.Key)
}
