// 13 Oct 2026

package star_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/andrew-torda/nmrstar/pkg/star"
)

func lines(s string) []string { return strings.Split(s, "\n") }

// A cut down BMRB entry with an entity, a sample and some shifts.
const smallEntry = `data_15000

save_entry_information
   _Entry.Sf_category                 entry_information
   _Entry.ID                          15000
   _Entry.Title
;
Solution structure of
 a small protein
;
save_

save_entity_1
   _Entity.Sf_category                entity
   _Entity.ID                         1
   _Entity.Name                       'protein G'
   _Entity.Polymer_type               polypeptide(L)
   _Entity.Polymer_seq_one_letter_code
;
MTYKLILNGK
TLKGETTTEA
;

   loop_
      _Entity_comp_index.ID
      _Entity_comp_index.Auth_seq_ID
      _Entity_comp_index.Comp_ID
      _Entity_comp_index.Entry_ID

      1   .  MET  15000
      2   .  THR  15000
      3   .  TYR  15000
   stop_
save_

save_sample_1
   _Sample.Sf_category   sample
   _Sample.ID            1

   loop_
      _Sample_component.ID
      _Sample_component.Mol_common_name
      _Sample_component.Isotopic_labeling
      _Sample_component.Entity_ID
      _Sample_component.Concentration_val
      _Sample_component.Concentration_val_units

      1  'protein G'  '[U-15N]'  1  1.0  mM
      2  'sodium phosphate'  'natural abundance'  .  20  mM
   stop_
save_

save_assigned_chem_shift_list_1
   _Assigned_chem_shift_list.Sf_category   assigned_chemical_shifts
   _Assigned_chem_shift_list.ID            1
   _Assigned_chem_shift_list.Name          'shifts set 1'

   loop_
      _Atom_chem_shift.ID
      _Atom_chem_shift.Entity_ID
      _Atom_chem_shift.Seq_ID
      _Atom_chem_shift.Auth_seq_ID
      _Atom_chem_shift.Comp_ID
      _Atom_chem_shift.Atom_ID
      _Atom_chem_shift.Atom_type
      _Atom_chem_shift.Val
      _Atom_chem_shift.Val_err

      1  1  1  1  MET  HA  H  4.395  0.020
      2  1  1  1  MET  CA  C  55.2   0.3
      3  1  2  2  THR  H   H  8.51   0.02
   stop_
save_
`

func TestParseSmallEntry(t *testing.T) {
	e := Parse(lines(smallEntry))
	require.Equal(t, []string{"entry_information", "entity_1", "sample_1", "assigned_chem_shift_list_1"}, e.Names())

	info, ok := e.Get("entry_information")
	require.True(t, ok)
	title, _ := info.Tag("Title")
	assert.Equal(t, "Solution structure of a small protein", title)

	ent, _ := e.Get("entity_1")
	name, _ := ent.Tag("Name")
	assert.Equal(t, "protein G", name)
	seq, _ := ent.Tag("Polymer_seq_one_letter_code")
	assert.Equal(t, "MTYKLILNGKTLKGETTTEA", seq)
	rows, ok := ent.Loop("_Entity_comp_index")
	require.True(t, ok)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{"ID": "2", "Auth_seq_ID": ".", "Comp_ID": "THR", "Entry_ID": "15000"}, rows[1])

	smpl, _ := e.Get("sample_1")
	rows, _ = smpl.Loop("_Sample_component")
	require.Len(t, rows, 2)
	assert.Equal(t, "sodium phosphate", rows[1]["Mol_common_name"])
	assert.Equal(t, "natural abundance", rows[1]["Isotopic_labeling"])

	cs, _ := e.Get("assigned_chem_shift_list_1")
	assert.Equal(t, []string{"_Atom_chem_shift"}, cs.LoopNames())
	assert.Equal(t, []string{"Sf_category", "ID", "Name"}, cs.TagKeys())
}

func TestNoSaveframes(t *testing.T) {
	ins := []string{
		"",
		"data_1\n_Entry.ID 1\nloop_\n_a.b\n1\nstop_\n",
		"just\nsome\ntext",
	}
	for _, in := range ins {
		e := Parse(lines(in))
		assert.Equal(t, 0, e.Len(), "input %q", in)
	}
	assert.Equal(t, 0, Parse(nil).Len())
}

// Whatever sits in a saveframe opened by a bare save_ is thrown away
func TestAnonymousFrame(t *testing.T) {
	in := `save_
   _X.Sf_category entity
   loop_
      _X.a
      1
   stop_
save_
save_named
   _X.ID 7
save_
save_
   _X.ID 8
stop_`
	e := Parse(lines(in))
	require.Equal(t, []string{"named"}, e.Names())
	sf, _ := e.Get("named")
	v, _ := sf.Tag("ID")
	assert.Equal(t, "7", v)
}

func TestLoopColumnCount(t *testing.T) {
	in := `save_f
   loop_
      _X.a
      _X.b
      one two
      lonely
      three four five

      six seven
   stop_
save_`
	sf, ok := Parse(lines(in)).Get("f")
	require.True(t, ok)
	rows, ok := sf.Loop("_X")
	require.True(t, ok)
	assert.Equal(t, []Row{{"a": "one", "b": "two"}, {"a": "six", "b": "seven"}}, rows)
}

func TestLoopQuoting(t *testing.T) {
	in := "save_f\nloop_\n_Q.x\n_Q.y\n_Q.z\n\"A B\" C 'D E'\nstop_\n"
	sf, _ := Parse(lines(in)).Get("f")
	rows, _ := sf.Loop("_Q")
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"x": "A B", "y": "C", "z": "D E"}, rows[0])
}

func TestMultiline(t *testing.T) {
	in := `save_entity_1
   _Entity.Polymer_seq_one_letter_code
;
MKTAY
GLEH
;
   _Entity.ID 1
save_`
	sf, _ := Parse(lines(in)).Get("entity_1")
	v, _ := sf.Tag("Polymer_seq_one_letter_code")
	assert.Equal(t, "MKTAYGLEH", v)
	id, _ := sf.Tag("ID")
	assert.Equal(t, "1", id)
}

// Lines inside a multi-line value keep their spaces. Only the newline goes.
func TestMultilineRaw(t *testing.T) {
	in := []string{"save_f\n", "_T.text\n", ";\n", "  two spaces\n", "tab\there \n", ";\n"}
	sf, _ := Parse(in).Get("f")
	v, _ := sf.Tag("text")
	assert.Equal(t, "  two spacestab\there ", v)
}

// Without a closing semicolon, the value runs to the end of file and
// the saveframe is still kept.
func TestMultilineUnterminated(t *testing.T) {
	in := "save_f\n_T.text\n;\nabc\nsave_g\nstop_"
	e := Parse(lines(in))
	require.Equal(t, []string{"f"}, e.Names())
	sf, _ := e.Get("f")
	v, _ := sf.Tag("text")
	assert.Equal(t, "abcsave_gstop_", v)
}

// A tag alone on its line, not followed by a semicolon, gets an empty value.
func TestTagNoValue(t *testing.T) {
	in := "save_f\n_T.empty\n_T.next 'quoted value'\n_Untagged\tx\nsave_"
	sf, _ := Parse(lines(in)).Get("f")
	v, ok := sf.Tag("empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	v, _ = sf.Tag("next")
	assert.Equal(t, "quoted value", v)
	v, _ = sf.Tag("_Untagged")
	assert.Equal(t, "x", v)
}

func TestPrefixStripping(t *testing.T) {
	in := `save_cs
loop_
_Atom_chem_shift.Val
_Atom_chem_shift.Val_err
1.0 0.1
stop_
save_`
	sf, _ := Parse(lines(in)).Get("cs")
	rows, ok := sf.Loop("_Atom_chem_shift")
	require.True(t, ok)
	assert.Equal(t, []Row{{"Val": "1.0", "Val_err": "0.1"}}, rows)
}

// Headers that do not share the first header's prefix keep their full name.
func TestMixedPrefix(t *testing.T) {
	in := `save_m
loop_
_A.x
_B.y
_nodot
1 2 3
stop_
save_`
	sf, _ := Parse(lines(in)).Get("m")
	rows, _ := sf.Loop("_A")
	assert.Equal(t, []Row{{"x": "1", "_B.y": "2", "_nodot": "3"}}, rows)
}

// A header with no dot at all is its own category.
func TestLoopNoDot(t *testing.T) {
	in := "save_m\nloop_\n_plain\n_plain.a\nv w\nstop_\nsave_"
	sf, _ := Parse(lines(in)).Get("m")
	rows, ok := sf.Loop("_plain")
	require.True(t, ok)
	assert.Equal(t, []Row{{"_plain": "v", "a": "w"}}, rows)
}

func TestEmptyLoop(t *testing.T) {
	in := "save_m\nloop_\n_A.x\nstop_\nloop_\nstop_\nsave_"
	sf, _ := Parse(lines(in)).Get("m")
	rows, ok := sf.Loop("_A")
	assert.True(t, ok)
	assert.Empty(t, rows)
	assert.Equal(t, []string{"_A"}, sf.LoopNames())
}

// Two loops of the same category end up in one list of rows
func TestLoopSameCategory(t *testing.T) {
	in := "save_m\nloop_\n_A.x\n1\nstop_\nloop_\n_A.x\n2\nstop_\nsave_"
	sf, _ := Parse(lines(in)).Get("m")
	rows, _ := sf.Loop("_A")
	assert.Equal(t, []Row{{"x": "1"}, {"x": "2"}}, rows)
}

// A loop without stop_ loses its rows, but the saveframe's tags survive.
func TestLoopUnterminated(t *testing.T) {
	in := "save_m\n_M.ID 3\nloop_\n_A.x\n1\n2"
	e := Parse(lines(in))
	sf, ok := e.Get("m")
	require.True(t, ok)
	_, ok = sf.Loop("_A")
	assert.False(t, ok)
	id, _ := sf.Tag("ID")
	assert.Equal(t, "3", id)
}

// save_ inside loop data is data, not a new saveframe.
func TestSaveInLoop(t *testing.T) {
	in := "save_m\nloop_\n_A.x\nsave_n\nstop_\nsave_"
	e := Parse(lines(in))
	require.Equal(t, []string{"m"}, e.Names())
	sf, _ := e.Get("m")
	rows, _ := sf.Loop("_A")
	assert.Equal(t, []Row{{"x": "save_n"}}, rows)
}

func TestFrameTransitions(t *testing.T) {
	in := `save_a
_A.ID 1
save_b
_B.ID 2
stop_
_C.ID ignored
save_c
_C.ID 3`
	e := Parse(lines(in))
	require.Equal(t, []string{"a", "b", "c"}, e.Names())
	for i, n := range e.Names() {
		sf, _ := e.Get(n)
		v, _ := sf.Tag("ID")
		assert.Equal(t, string(rune('1'+i)), v)
	}
}

// Later saveframes win, but keep the place of the first
func TestDuplicateNames(t *testing.T) {
	in := "save_a\n_A.v 1\nsave_\nsave_b\nsave_\nsave_a\n_A.v 2\nsave_"
	e := Parse(lines(in))
	assert.Equal(t, []string{"a", "b"}, e.Names())
	sf, _ := e.Get("a")
	v, _ := sf.Tag("v")
	assert.Equal(t, "2", v)
	assert.Len(t, e.Saveframes(), 2)
}

// A tag and a loop with the same key both survive.
func TestTagLoopCollision(t *testing.T) {
	in := "save_m\n_Z._Q 'scalar'\nloop_\n_Q.x\n1\nstop_\nsave_"
	sf, _ := Parse(lines(in)).Get("m")
	v, ok := sf.Tag("_Q")
	require.True(t, ok)
	assert.Equal(t, "scalar", v)
	rows, ok := sf.Loop("_Q")
	require.True(t, ok)
	assert.Len(t, rows, 1)
	f, ok := sf.Field("_Q")
	require.True(t, ok)
	assert.False(t, f.IsLoop())
	assert.Equal(t, "scalar", f.Text)

	in = "save_m\nloop_\n_Q.x\n1\nstop_\nsave_"
	sf, _ = Parse(lines(in)).Get("m")
	f, ok = sf.Field("_Q")
	require.True(t, ok)
	assert.True(t, f.IsLoop())
	_, ok = sf.Field("nothing")
	assert.False(t, ok)
}

func TestIdempotent(t *testing.T) {
	e1 := Parse(lines(smallEntry))
	e2 := Parse(lines(smallEntry))
	opt := cmp.AllowUnexported(Entry{}, Saveframe{})
	if diff := cmp.Diff(e1, e2, opt); diff != "" {
		t.Errorf("two parses differ (-first +second):\n%s", diff)
	}
}

// Windows line endings should not change anything
func TestCRLF(t *testing.T) {
	e1 := Parse(lines(smallEntry))
	e2 := Parse(SplitLines([]byte(strings.ReplaceAll(smallEntry, "\n", "\r\n"))))
	opt := cmp.AllowUnexported(Entry{}, Saveframe{})
	if diff := cmp.Diff(e1, e2, opt); diff != "" {
		t.Errorf("CRLF parse differs:\n%s", diff)
	}
}
