// Package views picks the few things we want out of a parsed entry:
// sequences, what was in the sample and the assigned chemical shifts.
// Each view is a slice of flat records, all with the same columns.
package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andrew-torda/nmrstar/pkg/common"
	"github.com/andrew-torda/nmrstar/pkg/star"
)

// Values of the Sf_category tag for the saveframes we know about.
const (
	CatEntity = "entity"
	CatSample = "sample"
	CatShifts = "assigned_chemical_shifts"
)

const (
	sfCategory = "Sf_category"
	loopSample = "_Sample_component"
	loopShift  = "_Atom_chem_shift"
	floatFmt   = 'g'
)

// ofCategory returns the saveframes whose Sf_category is cat, in file
// order. A saveframe without Sf_category is not of any category.
func ofCategory(e *star.Entry, cat string) []*star.Saveframe {
	var ret []*star.Saveframe
	for _, sf := range e.Saveframes() {
		if c, ok := sf.Tag(sfCategory); ok && c == cat {
			ret = append(ret, sf)
		}
	}
	return ret
}

// project pulls the values for keys out of get. The first missing key
// gives an error.
func project(sfName string, keys []string, get func(string) (string, bool)) ([]string, error) {
	ret := make([]string, len(keys))
	for i, k := range keys {
		v, ok := get(k)
		if !ok {
			return nil, missing(sfName, k)
		}
		ret[i] = v
	}
	return ret, nil
}

func rowGetter(r star.Row) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := r[k]
		return v, ok
	}
}

// Sequence is one molecule from an entity saveframe.
type Sequence struct {
	Saveframe   string
	ID          string
	PolymerType string
	PolymerSeq  string // one letter code
}

var seqTags = []string{"ID", "Polymer_type", "Polymer_seq_one_letter_code"}

// Columns names the fields of a Sequence, in the order of Record.
func (Sequence) Columns() []string {
	return append([]string{"saveframe"}, seqTags...)
}

// Record returns the fields as strings.
func (s Sequence) Record() []string {
	return []string{s.Saveframe, s.ID, s.PolymerType, s.PolymerSeq}
}

// Sequences returns one Sequence for every entity saveframe.
// All three tags must be present.
func Sequences(e *star.Entry) ([]Sequence, error) {
	var ret []Sequence
	for _, sf := range ofCategory(e, CatEntity) {
		v, err := project(sf.Name, seqTags, sf.Tag)
		if err != nil {
			return nil, err
		}
		ret = append(ret, Sequence{Saveframe: sf.Name, ID: v[0], PolymerType: v[1], PolymerSeq: v[2]})
	}
	return ret, nil
}

// SampleComponent is one row from a _Sample_component loop.
type SampleComponent struct {
	Saveframe             string
	ID                    string
	MolCommonName         string
	EntityID              string
	IsotopicLabeling      string
	ConcentrationVal      string
	ConcentrationValUnits string
}

var sampleCols = []string{"ID", "Mol_common_name", "Entity_ID", "Isotopic_labeling",
	"Concentration_val", "Concentration_val_units"}

// Columns names the fields of a SampleComponent, in the order of Record.
func (SampleComponent) Columns() []string {
	return append([]string{"saveframe"}, sampleCols...)
}

// Record returns the fields as strings.
func (s SampleComponent) Record() []string {
	return []string{s.Saveframe, s.ID, s.MolCommonName, s.EntityID, s.IsotopicLabeling,
		s.ConcentrationVal, s.ConcentrationValUnits}
}

func newComponent(sfName string, r star.Row) (SampleComponent, error) {
	v, err := project(sfName, sampleCols, rowGetter(r))
	if err != nil {
		return SampleComponent{}, err
	}
	return SampleComponent{Saveframe: sfName, ID: v[0], MolCommonName: v[1], EntityID: v[2],
		IsotopicLabeling: v[3], ConcentrationVal: v[4], ConcentrationValUnits: v[5]}, nil
}

// SampleComponents returns every component of every sample saveframe.
func SampleComponents(e *star.Entry) ([]SampleComponent, error) {
	var ret []SampleComponent
	for _, sf := range ofCategory(e, CatSample) {
		rows, ok := sf.Loop(loopSample)
		if !ok {
			return nil, missing(sf.Name, loopSample)
		}
		for _, r := range rows {
			c, err := newComponent(sf.Name, r)
			if err != nil {
				return nil, err
			}
			ret = append(ret, c)
		}
	}
	return ret, nil
}

// SampleInfo gives one record per sample saveframe. Each component row
// overwrites the one before, so what you get is the last component.
// A sample with an empty component loop gives nothing.
// Use SampleComponents if you want all of them.
func SampleInfo(e *star.Entry) ([]SampleComponent, error) {
	var ret []SampleComponent
	for _, sf := range ofCategory(e, CatSample) {
		rows, ok := sf.Loop(loopSample)
		if !ok {
			return nil, missing(sf.Name, loopSample)
		}
		var last *SampleComponent
		for _, r := range rows {
			c, err := newComponent(sf.Name, r)
			if err != nil {
				return nil, err
			}
			last = &c
		}
		if last != nil {
			ret = append(ret, *last)
		}
	}
	return ret, nil
}

// ChemShift is one assigned chemical shift.
type ChemShift struct {
	EntityID      string
	SeqID         string
	AuthSeqID     string
	CompID        string // residue name, like ALA
	AtomID        string // atom name, like CA
	AtomType      string // element, like C
	Val           float64
	ValErr        float64
	Name          string // name of the shift list, or "."
	CSSaveframeID string // saveframe the shift came from
}

var shiftCols = []string{"Entity_ID", "Seq_ID", "Auth_seq_ID", "Comp_ID", "Atom_ID", "Atom_type",
	"Val", "Val_err"}

// Columns names the fields of a ChemShift, in the order of Record.
func (ChemShift) Columns() []string {
	return append(append([]string{}, shiftCols...), "name", "cs_saveframe_id")
}

// Record returns the fields as strings.
func (c ChemShift) Record() []string {
	return []string{c.EntityID, c.SeqID, c.AuthSeqID, c.CompID, c.AtomID, c.AtomType,
		strconv.FormatFloat(c.Val, floatFmt, -1, 64),
		strconv.FormatFloat(c.ValErr, floatFmt, -1, 64),
		c.Name, c.CSSaveframeID}
}

// toFloat converts a shift or its error.
func toFloat(sfName, field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &FieldError{Saveframe: sfName, Field: field, Err: fmt.Errorf("%w: %w", ErrNumericConversion, err)}
	}
	return f, nil
}

// ChemShifts returns the shifts from all assigned_chemical_shifts
// saveframes, one after the other, in file order.
func ChemShifts(e *star.Entry) ([]ChemShift, error) {
	var ret []ChemShift
	for _, sf := range ofCategory(e, CatShifts) {
		rows, ok := sf.Loop(loopShift)
		if !ok {
			return nil, missing(sf.Name, loopShift)
		}
		name, ok := sf.Tag("Name")
		if !ok {
			name = common.NoValue
		}
		for _, r := range rows {
			v, err := project(sf.Name, shiftCols, rowGetter(r))
			if err != nil {
				return nil, err
			}
			cs := ChemShift{EntityID: v[0], SeqID: v[1], AuthSeqID: v[2], CompID: v[3],
				AtomID: v[4], AtomType: v[5], Name: name, CSSaveframeID: sf.Name}
			if cs.Val, err = toFloat(sf.Name, shiftCols[6], v[6]); err != nil {
				return nil, err
			}
			if cs.ValErr, err = toFloat(sf.Name, shiftCols[7], v[7]); err != nil {
				return nil, err
			}
			ret = append(ret, cs)
		}
	}
	return ret, nil
}
