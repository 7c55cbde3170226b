package models

import (
	"fmt"
	"math"
)

// StatValue is a single stat entry: either a number or a human-readable
// placeholder (e.g. "hidden" winstreaks). Text values are never part of
// arithmetic.
type StatValue struct {
	Number float64
	Text   string
	IsText bool
}

// Num wraps a numeric stat value.
func Num(v float64) StatValue {
	return StatValue{Number: v}
}

// Txt wraps a text placeholder.
func Txt(s string) StatValue {
	return StatValue{Text: s, IsText: true}
}

// String renders the value for display: text verbatim, whole numbers
// without decimals, everything else with two.
func (v StatValue) String() string {
	if v.IsText {
		return v.Text
	}
	if v.Number == math.Trunc(v.Number) && math.Abs(v.Number) < 1e15 {
		return fmt.Sprintf("%d", int64(v.Number))
	}
	return fmt.Sprintf("%.2f", v.Number)
}

// Record is the flat, normalized view of one snapshot for one game mode.
type Record struct {
	Date   string
	Fields map[string]StatValue
}

// NewRecord returns an empty record for the given snapshot date.
func NewRecord(date string) Record {
	return Record{Date: date, Fields: make(map[string]StatValue)}
}

// Number fetches a field as a number. ok is false for missing or text
// fields.
func (r Record) Number(name string) (float64, bool) {
	v, exists := r.Fields[name]
	if !exists || v.IsText {
		return 0, false
	}
	return v.Number, true
}

// FieldKind classifies a schema field.
type FieldKind int

const (
	// Counter is a cumulative total; deltas subtract it pairwise.
	Counter FieldKind = iota
	// Gauge is a current-state value (winstreaks, level); deltas carry
	// the more recent value verbatim, text or numeric.
	Gauge
	// Ratio is derived from two counters; deltas recompute it from the
	// subtracted counters instead of subtracting the ratios.
	Ratio
)

// FieldSpec describes one output field of a game mode.
type FieldSpec struct {
	Name string
	Kind FieldKind

	// Ratio operands: value = Numer / Denom, 0 when Denom is zero.
	// DenomAdd names an optional second field added into the denominator
	// (bow accuracy = hits / (shots + hits)).
	Numer    string
	Denom    string
	DenomAdd string

	// Percent marks ratios rendered as percentages.
	Percent bool
}

// Schema is the ordered field layout of a game mode's normalized records.
type Schema struct {
	Mode   string
	Fields []FieldSpec
}

// FieldNames returns the display order of the schema's fields.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Spec looks up a field spec by name.
func (s *Schema) Spec(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// ratio computes a ratio field over rec's counters, falling back to the
// zero sentinel when the denominator is zero or an operand is missing.
func (s *Schema) ratio(rec Record, spec FieldSpec) StatValue {
	numer, okN := rec.Number(spec.Numer)
	denom, okD := rec.Number(spec.Denom)
	if spec.DenomAdd != "" {
		extra, okE := rec.Number(spec.DenomAdd)
		if okE {
			denom += extra
		}
	}
	if !okN || !okD || denom == 0 {
		return Num(0)
	}
	v := numer / denom
	if spec.Percent {
		v *= 100
	}
	return Num(v)
}

// Recompute fills every ratio field of rec from its counters.
func (s *Schema) Recompute(rec Record) Record {
	for _, f := range s.Fields {
		if f.Kind == Ratio {
			rec.Fields[f.Name] = s.ratio(rec, f)
		}
	}
	return rec
}

// Subtract returns "b minus a": counters pairwise subtracted, gauges
// carried from b, ratios recomputed from the subtracted counters. Both
// inputs are left untouched. A counter with no baseline in a yields a
// zero delta, never b's lifetime total.
func (s *Schema) Subtract(a, b Record) Record {
	out := NewRecord(b.Date)
	for _, f := range s.Fields {
		switch f.Kind {
		case Counter:
			av, aok := a.Number(f.Name)
			bv, bok := b.Number(f.Name)
			if aok && bok {
				out.Fields[f.Name] = Num(bv - av)
			} else if bok {
				out.Fields[f.Name] = Num(0)
			}
		case Gauge:
			if v, exists := b.Fields[f.Name]; exists {
				out.Fields[f.Name] = v
			}
		}
	}
	return s.Recompute(out)
}

// Add returns the fieldwise sum of two records, gauges carried from b.
// A counter missing on one side counts as zero.
func (s *Schema) Add(a, b Record) Record {
	out := NewRecord(b.Date)
	for _, f := range s.Fields {
		switch f.Kind {
		case Counter:
			av, aok := a.Number(f.Name)
			bv, bok := b.Number(f.Name)
			if aok || bok {
				out.Fields[f.Name] = Num(av + bv)
			}
		case Gauge:
			if v, exists := b.Fields[f.Name]; exists {
				out.Fields[f.Name] = v
			}
		}
	}
	return s.Recompute(out)
}
