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

package lookup

import (
	"fmt"
	"strings"
)

// A MultiChromosomeError reports input that spans more than one seqid.
type MultiChromosomeError struct {
	Seqids []string
}

func (e *MultiChromosomeError) Error() string {
	return fmt.Sprintf("lookup tables cover a single chromosome, found %v: %v", len(e.Seqids), strings.Join(e.Seqids, ", "))
}

// An InsufficientFeaturesError reports that fewer than two features
// qualify for indexing.
type InsufficientFeaturesError struct {
	Found int
}

func (e *InsufficientFeaturesError) Error() string {
	return fmt.Sprintf("lookup tables need at least 2 features with an ID, found %v", e.Found)
}

// An OutOfRangeError reports a position outside the range covered by
// a lookup table.
type OutOfRangeError struct {
	Position, Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %v outside annotated range [%v, %v]", e.Position, e.Min, e.Max)
}

// An InvalidIntervalError reports a feature whose start lies after
// its end.
type InvalidIntervalError struct {
	ID         string
	Start, End int
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("feature %v has start %v after end %v", e.ID, e.Start, e.End)
}
