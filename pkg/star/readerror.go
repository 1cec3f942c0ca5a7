// An error implementation that saves the file, the line number and the
// line we were trying to read, so a message says where things broke.
package star

import (
	"strconv"
)

const maxMsgLen = 70

// ReadError is returned when lines cannot be read from a file.
// Parsing itself does not produce errors.
type ReadError struct {
	Fname  string // may be empty if we were given a reader
	N      int    // line number, counting from 1. Zero if unknown.
	Inline string // the last line we did get
	Err    error
}

func firstPart(s string) string {
	l := len(s)
	if l > maxMsgLen {
		l = maxMsgLen
	}
	return s[:l]
}

// Error puts together the file name, line number and the start of the line.
func (e *ReadError) Error() string {
	var errmsg string
	if e.Fname != "" {
		errmsg = e.Fname + ": "
	}
	if e.N != 0 {
		errmsg += "Line: " + strconv.Itoa(e.N) + " "
	}
	errmsg += e.Err.Error()
	if e.Inline != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.Inline)
	}
	return errmsg
}

func (e *ReadError) Unwrap() error { return e.Err }
