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

// Package lookup builds chromosome-location lookup tables from GFF
// features.
//
// A Table answers which feature governs a given position of one
// chromosome. Positions covered by features map to the innermost
// covering feature, and positions in the gaps between features map to
// a boundary that references the features on either side of the gap.
// Queries are binary searches over segments, so the size of a table
// depends on the number of features, not on the length of the
// chromosome.
package lookup

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
	"github.com/willf/bitset"

	"github.com/exascience/bioino/gff"
	"github.com/exascience/bioino/utils"
)

// Kind classifies an Annotation.
type Kind int

const (
	// Unannotated is the Kind of the sentinel returned for positions
	// outside a table.
	Unannotated Kind = iota
	// Feature means the position is covered by a feature.
	Feature
	// Boundary means the position lies in a gap between features.
	Boundary
)

func (kind Kind) String() string {
	switch kind {
	case Unannotated:
		return "unannotated"
	case Feature:
		return "feature"
	case Boundary:
		return "boundary"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}

// An Annotation is the result of a lookup. Feature is set for
// Kind Feature; Upstream and Downstream are set for Kind Boundary.
type Annotation struct {
	Kind       Kind
	Feature    *gff.Line
	Upstream   *gff.Line
	Downstream *gff.Line
}

// A Segment is a maximal range of positions with the same annotation.
type Segment struct {
	Interval
	Annotation
}

// Feature types that are never indexed.
var ignored = map[utils.Symbol]bool{
	utils.Intern("region"):        true,
	utils.Intern("repeat_region"): true,
}

// Qualifies reports whether a line is indexed by Build: it must have
// an ID attribute and must not be of an ignored feature type.
func Qualifies(line *gff.Line) bool {
	return !ignored[utils.Intern(line.Columns.Feature)] && line.Attributes.Has(gff.IDKey)
}

type feature struct {
	line  *gff.Line
	index int
}

func (f *feature) Overlap(b interval.IntRange) bool {
	r := f.Range()
	return r.End > b.Start && r.Start < b.End
}

func (f *feature) ID() uintptr {
	return uintptr(f.index)
}

func (f *feature) Range() interval.IntRange {
	return interval.IntRange{Start: f.line.Columns.Start, End: f.line.Columns.End + 1}
}

type position int

func (p position) Overlap(b interval.IntRange) bool {
	return b.Start <= int(p) && int(p) < b.End
}

func (p position) ID() uintptr {
	return 0
}

func (p position) Range() interval.IntRange {
	return interval.IntRange{Start: int(p), End: int(p) + 1}
}

// A Table maps the positions of one chromosome to annotations.
// A Table is immutable and safe for concurrent use.
type Table struct {
	seqid    string
	features []*gff.Line
	blocks   []Interval
	segments []Segment
	tree     interval.IntTree
}

func distinctSeqids(lines []*gff.Line) (seqids []string) {
	seen := make(map[utils.Symbol]bool)
	for _, line := range lines {
		if symbol := utils.Intern(line.Columns.Seqid); !seen[symbol] {
			seen[symbol] = true
			seqids = append(seqids, line.Columns.Seqid)
		}
	}
	return seqids
}

// Build creates a lookup table for the given lines.
//
// All lines must have the same seqid. Only lines for which Qualifies
// returns true are indexed, and at least two of them are needed.
func Build(lines []*gff.Line) (*Table, error) {
	if seqids := distinctSeqids(lines); len(seqids) > 1 {
		return nil, &MultiChromosomeError{Seqids: seqids}
	}
	var features []*feature
	for _, line := range lines {
		if !Qualifies(line) {
			continue
		}
		if c := &line.Columns; c.Start > c.End {
			return nil, &InvalidIntervalError{ID: line.ID(), Start: c.Start, End: c.End}
		}
		features = append(features, &feature{line: line})
	}
	if len(features) < 2 {
		return nil, &InsufficientFeaturesError{Found: len(features)}
	}
	sortFeatures(features)
	table := &Table{
		seqid:    features[0].line.Columns.Seqid,
		features: make([]*gff.Line, len(features)),
	}
	blocks := make([]Interval, len(features))
	for i, f := range features {
		f.index = i
		table.features[i] = f.line
		blocks[i] = Interval{Start: f.line.Columns.Start, End: f.line.Columns.End}
		if err := table.tree.Insert(f, true); err != nil {
			return nil, errors.Wrapf(err, "while indexing feature %v", f.line.ID())
		}
	}
	table.tree.AdjustRanges()
	table.blocks = ParallelFlatten(blocks)

	var upstream *gff.Line
	next := 0
	for b, block := range table.blocks {
		if b > 0 {
			table.segments = append(table.segments, Segment{
				Interval: Interval{Start: table.blocks[b-1].End + 1, End: block.Start - 1},
				Annotation: Annotation{
					Kind:       Boundary,
					Upstream:   upstream,
					Downstream: features[next].line,
				},
			})
		}
		first := next
		for next < len(features) && features[next].line.Columns.Start <= block.End {
			next++
		}
		inBlock := features[first:next]
		table.fillBlock(inBlock)
		upstream = inBlock[0].line
		for _, f := range inBlock[1:] {
			if f.line.Columns.End >= upstream.Columns.End {
				upstream = f.line
			}
		}
	}
	return table, nil
}

// fillBlock adds the segments of one block of overlapping or adjacent
// features. The governing feature can only change at a start position
// or right after an end position.
func (table *Table) fillBlock(features []*feature) {
	points := make([]int, 0, 2*len(features))
	for _, f := range features {
		points = append(points, f.line.Columns.Start, f.line.Columns.End+1)
	}
	sort.Ints(points)
	for i := 0; i < len(points)-1; i++ {
		start := points[i]
		if start == points[i+1] {
			continue
		}
		table.appendSegment(Segment{
			Interval:   Interval{Start: start, End: points[i+1] - 1},
			Annotation: Annotation{Kind: Feature, Feature: table.governing(start)},
		})
	}
}

func (table *Table) appendSegment(segment Segment) {
	if n := len(table.segments); n > 0 {
		last := &table.segments[n-1]
		if last.Kind == Feature && segment.Kind == Feature && last.Feature == segment.Feature && last.End+1 == segment.Start {
			last.End = segment.End
			return
		}
	}
	table.segments = append(table.segments, segment)
}

func (table *Table) overlapping(pos int) []*feature {
	hits := table.tree.Get(position(pos))
	result := make([]*feature, len(hits))
	for i, hit := range hits {
		result[i] = hit.(*feature)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].index < result[j].index
	})
	return result
}

// governing returns the innermost feature covering pos: the one with
// the greatest start, then the smallest end, then the earliest in
// sorted order.
func (table *Table) governing(pos int) *gff.Line {
	var best *feature
	for _, f := range table.overlapping(pos) {
		if best == nil {
			best = f
			continue
		}
		c, b := &f.line.Columns, &best.line.Columns
		if c.Start > b.Start || (c.Start == b.Start && c.End < b.End) {
			best = f
		}
	}
	if best == nil {
		return nil
	}
	return best.line
}

// Seqid returns the chromosome the table covers.
func (table *Table) Seqid() string {
	return table.seqid
}

// Min returns the first annotated position.
func (table *Table) Min() int {
	return table.blocks[0].Start
}

// Max returns the last annotated position.
func (table *Table) Max() int {
	return table.blocks[len(table.blocks)-1].End
}

// Features returns the indexed features in sorted order.
func (table *Table) Features() []*gff.Line {
	return table.features
}

// Blocks returns the maximal ranges covered by features.
func (table *Table) Blocks() []Interval {
	return table.blocks
}

// Segments returns all segments of the table in order. Together they
// cover every position from Min to Max exactly once.
func (table *Table) Segments() []Segment {
	return table.segments
}

func (table *Table) search(pos int) int {
	return sort.Search(len(table.segments), func(i int) bool {
		return table.segments[i].End >= pos
	})
}

// Lookup returns the annotation for pos. Positions outside
// [Min(), Max()] return an annotation of Kind Unannotated.
func (table *Table) Lookup(pos int) Annotation {
	if pos < table.Min() || pos > table.Max() {
		return Annotation{Kind: Unannotated}
	}
	return table.segments[table.search(pos)].Annotation
}

// Locate is like Lookup, but returns an *OutOfRangeError for
// positions outside the table.
func (table *Table) Locate(pos int) (Annotation, error) {
	if pos < table.Min() || pos > table.Max() {
		return Annotation{}, &OutOfRangeError{Position: pos, Min: table.Min(), Max: table.Max()}
	}
	return table.segments[table.search(pos)].Annotation, nil
}

// Overlapping returns all indexed features that cover pos, in sorted
// order.
func (table *Table) Overlapping(pos int) []*gff.Line {
	features := table.overlapping(pos)
	if len(features) == 0 {
		return nil
	}
	lines := make([]*gff.Line, len(features))
	for i, f := range features {
		lines[i] = f.line
	}
	return lines
}

// Coverage returns a bit set with bit i set when position Min()+i is
// covered by a feature.
func (table *Table) Coverage() *bitset.BitSet {
	min := table.Min()
	coverage := bitset.New(uint(table.Max() - min + 1))
	for _, block := range table.blocks {
		for pos := block.Start; pos <= block.End; pos++ {
			coverage.Set(uint(pos - min))
		}
	}
	return coverage
}
