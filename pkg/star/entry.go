// 12 Oct 2026

package star

// Row is one line of a loop. Keys are the loop's tag names with the
// category prefix removed (see Parse for when it is not removed).
type Row map[string]string

// Saveframe holds the scalar tags and the loops of one save_ block.
// Tags and loops are kept apart. In the file they live in one name space,
// so a tag and a loop category could have the same key. Field() gives the
// single view, tags first.
type Saveframe struct {
	Name     string
	tagKeys  []string
	tags     map[string]string
	loopKeys []string
	loops    map[string][]Row
}

// Field is what Saveframe.Field returns. If Rows is nil, it was a tag.
type Field struct {
	Text string
	Rows []Row
}

// IsLoop says if the field came from a loop rather than a tag
func (f Field) IsLoop() bool { return f.Rows != nil }

// NewSaveframe returns an empty saveframe with the given name.
func NewSaveframe(name string) *Saveframe {
	return &Saveframe{
		Name:  name,
		tags:  make(map[string]string),
		loops: make(map[string][]Row),
	}
}

// SetTag stores a tag value. A second value for the same key replaces
// the first, but the key keeps its original position.
func (sf *Saveframe) SetTag(key, value string) {
	if _, ok := sf.tags[key]; !ok {
		sf.tagKeys = append(sf.tagKeys, key)
	}
	sf.tags[key] = value
}

// AddRows appends rows to the loop stored under category. If there is
// no such loop yet, it is created, even if rows is empty.
func (sf *Saveframe) AddRows(category string, rows []Row) {
	old, ok := sf.loops[category]
	if !ok {
		sf.loopKeys = append(sf.loopKeys, category)
		old = make([]Row, 0, len(rows))
	}
	sf.loops[category] = append(old, rows...)
}

// Tag returns the value of a tag, given its short key (Sf_category, not
// _Entity.Sf_category).
func (sf *Saveframe) Tag(key string) (string, bool) {
	v, ok := sf.tags[key]
	return v, ok
}

// Loop returns the rows of a loop. The category keeps its leading
// underscore, as in "_Atom_chem_shift".
func (sf *Saveframe) Loop(category string) ([]Row, bool) {
	rows, ok := sf.loops[category]
	return rows, ok
}

// Field looks for key in the tags, then in the loops.
func (sf *Saveframe) Field(key string) (Field, bool) {
	if v, ok := sf.tags[key]; ok {
		return Field{Text: v}, true
	}
	if rows, ok := sf.loops[key]; ok { // never nil, see AddRows
		return Field{Rows: rows}, true
	}
	return Field{}, false
}

// TagKeys returns tag keys in the order they were first seen.
func (sf *Saveframe) TagKeys() []string { return append([]string(nil), sf.tagKeys...) }

// LoopNames returns loop categories in the order they were first seen.
func (sf *Saveframe) LoopNames() []string { return append([]string(nil), sf.loopKeys...) }

// Entry is the result of parsing one file. It maps saveframe names to
// saveframes and remembers the order in which names first appeared.
// If a name comes twice, the later saveframe wins, but it sits where the
// first one was.
type Entry struct {
	names  []string
	frames map[string]*Saveframe
}

// NewEntry returns an empty Entry
func NewEntry() *Entry {
	return &Entry{frames: make(map[string]*Saveframe)}
}

// Set stores sf under its name, overwriting any saveframe of the same name.
func (e *Entry) Set(sf *Saveframe) {
	if _, ok := e.frames[sf.Name]; !ok {
		e.names = append(e.names, sf.Name)
	}
	e.frames[sf.Name] = sf
}

// Get returns the saveframe called name.
func (e *Entry) Get(name string) (*Saveframe, bool) {
	sf, ok := e.frames[name]
	return sf, ok
}

// Len is the number of distinct saveframe names.
func (e *Entry) Len() int { return len(e.names) }

// Names returns the saveframe names in file order.
func (e *Entry) Names() []string { return append([]string(nil), e.names...) }

// Saveframes returns the saveframes in file order.
func (e *Entry) Saveframes() []*Saveframe {
	ret := make([]*Saveframe, 0, len(e.names))
	for _, n := range e.names {
		ret = append(ret, e.frames[n])
	}
	return ret
}
