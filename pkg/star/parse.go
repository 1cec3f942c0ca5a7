// The state machine that turns lines into saveframes.
// Get the lines of a file and call Parse.

package star

import (
	"strings"
)

const (
	kwSave  = "save_"
	kwLoop  = "loop_"
	kwStop  = "stop_"
	mlDelim = ";" // delimits multi-line values
)

// parser is everything we need to remember while walking through
// the lines. There is one per call to Parse, so nothing is shared.
type parser struct {
	lines    []string
	n        int        // index of the current line
	entry    *Entry     // what we return
	frame    *Saveframe // nil if we are not in a saveframe
	tagKey   string     // key of the multi-line value we are reading
	value    []string   // pieces of a multi-line value
	hdr      []string   // loop headers, as they were in the file
	keys     []string   // row keys for each header
	category string     // where the loop rows will be stored
	rows     []Row
	scrtch   []string // reused by splitLine
}

// stateFn is the type of state function. It returns the next
// state function that should act on its input.
type stateFn func(*parser) stateFn

// raw returns the current line with only the newline removed.
func (p *parser) raw() (string, bool) {
	if p.n >= len(p.lines) {
		return "", false
	}
	return strings.TrimSuffix(p.lines[p.n], "\n"), true
}

// line returns the current line without leading or trailing space.
// It does not advance.
func (p *parser) line() (string, bool) {
	s, ok := p.raw()
	return strings.TrimSpace(s), ok
}

// open starts a new saveframe.
func (p *parser) open(name string) {
	p.frame = NewSaveframe(name)
}

// commit puts the open saveframe into the entry. A saveframe is only
// ever opened with a name, so there is no check for an empty one.
func (p *parser) commit() {
	if p.frame != nil {
		p.entry.Set(p.frame)
	}
	p.frame = nil
}

// saveName says if line is a save_ line and returns whatever follows.
// The name is empty for the save_ that closes a saveframe.
func saveName(line string) (string, bool) {
	if !strings.HasPrefix(line, kwSave) {
		return "", false
	}
	return strings.TrimSpace(line[len(kwSave):]), true
}

// stateOutside jumps over everything until a named saveframe starts.
func stateOutside(p *parser) stateFn {
	line, ok := p.line()
	if !ok {
		return nil
	}
	p.n++
	if name, isSave := saveName(line); isSave && name != "" {
		p.open(name)
		return stateFrame
	}
	return stateOutside
}

// stateFrame looks at a line inside a saveframe and decides where to go.
func stateFrame(p *parser) stateFn {
	line, ok := p.line()
	if !ok { // end of file, keep what we have
		p.commit()
		return nil
	}
	if name, isSave := saveName(line); isSave {
		p.commit()
		p.n++
		if name == "" {
			return stateOutside
		}
		p.open(name)
		return stateFrame
	}
	switch {
	case line == kwLoop:
		p.n++
		p.hdr = p.hdr[:0]
		p.rows = nil
		return stateLoopHdr
	case line == kwStop:
		p.commit()
		p.n++
		return stateOutside
	case strings.HasPrefix(line, "_"):
		return stateTag
	default:
		p.n++
		return stateFrame
	}
}

// stateTag reads a tag and its value. If the tag is alone on its line
// and the next line is just a semicolon, the value is on the following
// lines and stateMultiline collects it.
func stateTag(p *parser) stateFn {
	line, _ := p.line()
	tag, rest := line, ""
	if i := strings.IndexFunc(line, isSpace); i >= 0 {
		tag, rest = line[:i], strings.TrimSpace(line[i:])
	}
	key := tag
	if i := strings.LastIndexByte(tag, '.'); i >= 0 {
		key = tag[i+1:]
	}
	p.n++
	if rest == "" {
		if next, ok := p.line(); ok && next == mlDelim {
			p.n++
			p.tagKey = key
			p.value = p.value[:0]
			return stateMultiline
		}
	}
	p.frame.SetTag(key, unquote(rest))
	return stateFrame
}

// stateMultiline collects raw lines up to a line with only a semicolon.
// If the file ends first, the value is everything we have.
// The pieces are joined with nothing in between.
func stateMultiline(p *parser) stateFn {
	s, ok := p.raw()
	if ok && strings.TrimSpace(s) != mlDelim {
		p.value = append(p.value, s)
		p.n++
		return stateMultiline
	}
	p.frame.SetTag(p.tagKey, strings.Join(p.value, ""))
	if ok {
		p.n++ // jump over closing semicolon
	}
	return stateFrame
}

// stateLoopHdr collects lines starting with an underscore. The first
// line that does not, is left for stateLoopData.
func stateLoopHdr(p *parser) stateFn {
	line, ok := p.line()
	if !ok {
		return stateFrame
	}
	if strings.HasPrefix(line, "_") {
		p.hdr = append(p.hdr, line)
		p.n++
		return stateLoopHdr
	}
	p.loopKeys()
	return stateLoopData
}

// loopKeys works out the category and row keys from the headers.
// _Atom_chem_shift.Val gives the prefix "_Atom_chem_shift." and the
// category "_Atom_chem_shift". Every header with that prefix loses it.
// A header with some other prefix keeps its full name.
func (p *parser) loopKeys() {
	p.keys = p.keys[:0]
	p.category = ""
	if len(p.hdr) == 0 {
		return
	}
	base, _, _ := strings.Cut(p.hdr[0], ".")
	p.category = base
	prefix := base + "."
	for _, h := range p.hdr {
		if k, found := strings.CutPrefix(h, prefix); found {
			p.keys = append(p.keys, k)
		} else {
			p.keys = append(p.keys, h)
		}
	}
}

// stateLoopData reads the body of a loop. A line with the wrong number
// of values is dropped. If we hit the end of file before stop_,
// the rows are thrown away.
func stateLoopData(p *parser) stateFn {
	line, ok := p.line()
	if !ok {
		p.rows = nil
		return stateFrame
	}
	p.n++
	switch line {
	case kwStop:
		if len(p.hdr) > 0 {
			p.frame.AddRows(p.category, p.rows)
		}
		p.rows = nil
		return stateFrame
	case "":
		return stateLoopData
	}
	p.scrtch = splitLine(line, p.scrtch)
	if len(p.scrtch) != len(p.keys) {
		return stateLoopData
	}
	row := make(Row, len(p.keys))
	for i, k := range p.keys {
		row[k] = p.scrtch[i]
	}
	p.rows = append(p.rows, row)
	return stateLoopData
}

func isSpace(r rune) bool { return r < 256 && iswhite(byte(r)) }

// Parse takes the lines of an NMR-STAR file and returns the saveframes
// it finds. Lines may or may not still have their newline.
// Parse does not fail. Broken input gives fewer or shorter saveframes,
// never an error:
//   - loop lines with the wrong number of values are dropped
//   - a multi-line value with no closing semicolon runs to the end of file
//   - a loop with no stop_ before end of file is lost
//   - anything in a saveframe opened with a bare save_ is ignored
//   - a saveframe with the same name as an earlier one replaces it
func Parse(lines []string) *Entry {
	p := &parser{lines: lines, entry: NewEntry()}
	for state := stateOutside; state != nil; {
		state = state(p)
	}
	return p.entry
}
