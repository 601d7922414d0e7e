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
	"sort"

	"github.com/exascience/pargo/parallel"
	psort "github.com/exascience/pargo/sort"
)

// Interval is a closed range of 1-based positions.
type Interval struct {
	Start, End int
}

// Contains reports whether pos lies within the interval.
func (interval Interval) Contains(pos int) bool {
	return interval.Start <= pos && pos <= interval.End
}

// Extend makes interval1 larger if it overlaps with or is adjacent to
// interval2, by storing max(interval1.End, interval2.End) in
// interval1.End; otherwise, interval1 remains unchanged.
// Returns true if the two intervals were merged, false otherwise.
// interval2.Start >= interval1.Start must be true before
// calling Extend.
func (interval1 *Interval) Extend(interval2 Interval) bool {
	if interval2.Start > interval1.End+1 {
		return false
	}
	if interval2.End > interval1.End {
		interval1.End = interval2.End
	}
	return true
}

// Flatten merges overlapping and adjacent intervals into larger
// intervals. intervals must be sorted by Start before calling Flatten.
// The resulting slice is sorted by Start, and there is at least one
// uncovered position between any two intervals in the result.
// The result shares memory with the intervals argument.
func Flatten(intervals []Interval) []Interval {
	for i, n := 0, len(intervals)-1; i < n; i++ {
		if intervals[i].Extend(intervals[i+1]) {
			n++
			for j := i + 1; j < n; j++ {
				if !intervals[i].Extend(intervals[j]) {
					i++
					intervals[i] = intervals[j]
				}
			}
			return intervals[:i+1]
		}
	}
	return intervals
}

const parallelFlattenGrainSize = 0x1000

// ParallelFlatten is like Flatten, but uses a parallel algorithm for
// large inputs.
func ParallelFlatten(intervals []Interval) []Interval {
	if len(intervals) < parallelFlattenGrainSize {
		return Flatten(intervals)
	}
	half := len(intervals) >> 1
	left, right := intervals[:half], intervals[half:]
	parallel.Do(
		func() { left = ParallelFlatten(left) },
		func() { right = ParallelFlatten(right) },
	)
	for len(right) > 0 && left[len(left)-1].Extend(right[0]) {
		right = right[1:]
	}
	return append(left, right...)
}

// Search returns the index of the interval containing pos, or -1.
// intervals must be Flattened and sorted by Start.
func Search(intervals []Interval, pos int) int {
	i := sort.Search(len(intervals), func(i int) bool {
		return intervals[i].End >= pos
	})
	if i < len(intervals) && intervals[i].Start <= pos {
		return i
	}
	return -1
}

func featureLess(f1, f2 *feature) bool {
	c1, c2 := &f1.line.Columns, &f2.line.Columns
	if c1.Start != c2.Start {
		return c1.Start < c2.Start
	}
	return c1.End < c2.End
}

type stableFeatureSorter []*feature

func (s stableFeatureSorter) SequentialSort(i, j int) {
	features := s[i:j]
	sort.SliceStable(features, func(i, j int) bool {
		return featureLess(features[i], features[j])
	})
}

func (s stableFeatureSorter) NewTemp() psort.StableSorter {
	return stableFeatureSorter(make([]*feature, len(s)))
}

func (s stableFeatureSorter) Len() int {
	return len(s)
}

func (s stableFeatureSorter) Less(i, j int) bool {
	return featureLess(s[i], s[j])
}

func (s stableFeatureSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableFeatureSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// sortFeatures sorts by start, then end, keeping input order for
// equal intervals.
func sortFeatures(features []*feature) {
	psort.StableSort(stableFeatureSorter(features))
}
