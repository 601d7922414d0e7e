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

// Package gff is a library for parsing, representing, and formatting
// GFF3 files.
//
// A GFF file is read line by line with a Reader. Header lines starting
// with '#' are collected as Metadatum values and attached to the next
// feature line, so that formatting the lines again with their
// metadata reproduces the file. See
// https://github.com/The-Sequence-Ontology/Specifications/blob/master/gff3.md
package gff

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/exascience/bioino/utils"
)

// Flag distinguishes the two kinds of GFF header lines.
type Flag int

const (
	// Constrained metadata uses '##' and is defined by the GFF3 format.
	Constrained Flag = iota
	// Free metadata uses a single '#' and is a free-form comment.
	Free
)

func (flag Flag) String() string {
	switch flag {
	case Constrained:
		return "constrained"
	case Free:
		return "free"
	default:
		return fmt.Sprintf("Flag(%d)", int(flag))
	}
}

// A Metadatum is one header line of a GFF file.
type Metadatum struct {
	Name   string
	Flag   Flag
	Values []string
}

// Equal reports whether both metadata are the same.
func (m Metadatum) Equal(other Metadatum) bool {
	if m.Name != other.Name || m.Flag != other.Flag || len(m.Values) != len(other.Values) {
		return false
	}
	for i, value := range m.Values {
		if value != other.Values[i] {
			return false
		}
	}
	return true
}

// Strand of a feature.
type Strand string

// Valid strands.
const (
	Forward    Strand = "+"
	Reverse    Strand = "-"
	Unstranded Strand = "."
)

// Phase of a CDS feature.
type Phase string

// Valid phases.
const (
	Phase0  Phase = "0"
	Phase1  Phase = "1"
	Phase2  Phase = "2"
	NoPhase Phase = "."
)

// Columns holds the 8 mandatory fields of a GFF line. Start and End
// are 1-based and inclusive.
type Columns struct {
	Seqid   string
	Source  string
	Feature string
	Start   int
	End     int
	Score   string
	Strand  Strand
	Phase   Phase
}

// Names of the mandatory GFF columns, in file order.
const (
	SeqidKey   = "seqid"
	SourceKey  = "source"
	FeatureKey = "feature"
	StartKey   = "start"
	EndKey     = "end"
	ScoreKey   = "score"
	StrandKey  = "strand"
	PhaseKey   = "phase"
)

// ColumnNames lists the mandatory GFF columns in file order.
var ColumnNames = []string{SeqidKey, SourceKey, FeatureKey, StartKey, EndKey, ScoreKey, StrandKey, PhaseKey}

// IsColumnName reports whether key names one of the mandatory columns.
func IsColumnName(key string) bool {
	for _, name := range ColumnNames {
		if key == name {
			return true
		}
	}
	return false
}

// Commonly used attribute keys.
const (
	IDKey     = "ID"
	ParentKey = "Parent"
	NameKey   = "Name"
)

// A Line is one feature line of a GFF file, together with the header
// lines that preceded it.
type Line struct {
	Metadata   []Metadatum
	Columns    Columns
	Attributes Attributes
}

// ID returns the ID attribute, or "" if there is none.
func (line *Line) ID() string {
	id, _ := line.Attributes.Get(IDKey)
	return id
}

// Name returns the Name attribute, falling back to the ID attribute.
func (line *Line) Name() string {
	if name, ok := line.Attributes.Get(NameKey); ok {
		return name
	}
	return line.ID()
}

// Equal reports whether both lines have the same metadata, columns,
// and attributes.
func (line *Line) Equal(other *Line) bool {
	if line == other {
		return true
	}
	if line == nil || other == nil {
		return false
	}
	if line.Columns != other.Columns || len(line.Metadata) != len(other.Metadata) {
		return false
	}
	for i, m := range line.Metadata {
		if !m.Equal(other.Metadata[i]) {
			return false
		}
	}
	return line.Attributes.Equal(other.Attributes)
}

func toInt(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid %v value", key)
		}
		return i, nil
	default:
		return 0, errors.Errorf("invalid %v value %v of type %T", key, value, value)
	}
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// FromMap converts a dictionary to a Line.
//
// The dictionary must have entries for all mandatory columns,
// otherwise a *MissingFieldError is returned. Start and end can be
// integers or decimal strings. All other entries become attributes,
// in the order of the dictionary.
func FromMap(d utils.SmallMap) (*Line, error) {
	var fields [8]interface{}
	for i, name := range ColumnNames {
		value, ok := d.Get(name)
		if !ok {
			return nil, &MissingFieldError{Field: name}
		}
		fields[i] = value
	}
	start, err := toInt(StartKey, fields[3])
	if err != nil {
		return nil, err
	}
	end, err := toInt(EndKey, fields[4])
	if err != nil {
		return nil, err
	}
	line := &Line{
		Columns: Columns{
			Seqid:   toString(fields[0]),
			Source:  toString(fields[1]),
			Feature: toString(fields[2]),
			Start:   start,
			End:     end,
			Score:   toString(fields[5]),
			Strand:  Strand(toString(fields[6])),
			Phase:   Phase(toString(fields[7])),
		},
	}
	for _, entry := range d {
		if !IsColumnName(entry.Key) {
			line.Attributes.Set(entry.Key, toString(entry.Value))
		}
	}
	return line, nil
}

// AsMap flattens the columns and attributes of the line into one
// dictionary, columns first. Start and end are stored as int.
//
// An attribute with the same name as a column cannot be represented
// and results in an *AttributeCollisionError.
func (line *Line) AsMap() (utils.SmallMap, error) {
	c := &line.Columns
	d := make(utils.SmallMap, 0, len(ColumnNames)+len(line.Attributes))
	d = append(d,
		utils.SmallMapEntry{Key: SeqidKey, Value: c.Seqid},
		utils.SmallMapEntry{Key: SourceKey, Value: c.Source},
		utils.SmallMapEntry{Key: FeatureKey, Value: c.Feature},
		utils.SmallMapEntry{Key: StartKey, Value: c.Start},
		utils.SmallMapEntry{Key: EndKey, Value: c.End},
		utils.SmallMapEntry{Key: ScoreKey, Value: c.Score},
		utils.SmallMapEntry{Key: StrandKey, Value: string(c.Strand)},
		utils.SmallMapEntry{Key: PhaseKey, Value: string(c.Phase)},
	)
	for _, attr := range line.Attributes {
		if IsColumnName(attr.Key) {
			return nil, &AttributeCollisionError{Key: attr.Key}
		}
		d = append(d, utils.SmallMapEntry{Key: attr.Key, Value: attr.Value})
	}
	return d, nil
}
