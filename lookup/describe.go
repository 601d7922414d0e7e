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

	"github.com/exascience/bioino/gff"
)

// Relation places a position relative to a feature.
type Relation int

const (
	// Within the feature.
	Within Relation = iota
	// Upstream means before the 5' end of the feature.
	Upstream
	// Downstream means past the 3' end of the feature.
	Downstream
)

func (relation Relation) String() string {
	switch relation {
	case Within:
		return "within"
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	default:
		return fmt.Sprintf("Relation(%d)", int(relation))
	}
}

// A Description attributes a position to a single feature.
type Description struct {
	Feature  *gff.Line
	Relation Relation
	// Offset is the signed distance from the 5' end of the feature, in
	// the orientation of the feature.
	Offset int
	// Tag is the feature name, prefixed with _up- or _down- outside
	// the feature.
	Tag string
}

func offset(line *gff.Line, pos int) int {
	if line.Columns.Strand == gff.Reverse {
		return line.Columns.End - pos
	}
	return pos - line.Columns.Start
}

func describe(line *gff.Line, pos int) Description {
	d := Description{Feature: line, Offset: offset(line, pos), Tag: line.Name()}
	switch {
	case line.Columns.Start <= pos && pos <= line.Columns.End:
		d.Relation = Within
	case d.Offset < 0:
		d.Relation = Upstream
		d.Tag = "_up-" + d.Tag
	default:
		d.Relation = Downstream
		d.Tag = "_down-" + d.Tag
	}
	return d
}

// Describe attributes pos, which must be a position the annotation
// was looked up for, to one feature.
//
// Positions in a gap are split at the midpoint of the gap: the first
// half, including the midpoint, is attributed to the upstream feature,
// the second half to the downstream feature. Describe returns false
// for Unannotated annotations.
func (a Annotation) Describe(pos int) (Description, bool) {
	switch a.Kind {
	case Feature:
		return describe(a.Feature, pos), true
	case Boundary:
		gapStart, gapEnd := a.Upstream.Columns.End+1, a.Downstream.Columns.Start-1
		if pos <= gapStart+(gapEnd-gapStart)/2 {
			return describe(a.Upstream, pos), true
		}
		return describe(a.Downstream, pos), true
	default:
		return Description{}, false
	}
}
