// Splitting loop data lines at white space and quotes.

/* A data line in a loop looks like
     1  .  1  1  1  1  MET  HA  H  1  4.395  0.020  .  1
   but values may be quoted when they contain spaces
     "A B" C 'D E'
   Rules we follow, in order, at each position in the line
   1. a double quote, if there is a closing double quote somewhere later,
      starts a token that runs to that closing quote.
   2. the same for a single quote.
   3. otherwise a token is a run of anything that is not white space.
   The delimiting quotes are not part of the token. A quote character
   inside a bare word, like the atom name H5', is left alone.
   Unlike CIF, a closing quote does not have to be followed by a space.
*/

package star

import (
	"strings"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

// iswhite only works for ascii spaces
var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// iswhite returns true if a byte is on the list of white space characters.
func iswhite(b byte) bool {
	return asciiSpace[b]
}

type sInfo struct { // Holds the state of the state functions
	ret     []string // what we will return
	in      string
	nxtIndx int  // where the current token started
	qtype   byte // type of quote we are inside
}

type sfn func(i int, c byte, s *sInfo) sfn // state function

// sfnWhite is where we start and where we go after every token.
// An opening quote only counts if it will be closed.
func sfnWhite(i int, c byte, s *sInfo) sfn {
	switch {
	case iswhite(c):
		return sfnWhite
	case (c == squote || c == dquote) && strings.IndexByte(s.in[i+1:], c) >= 0:
		s.qtype = c
		s.nxtIndx = i + 1
		return sfnInQuote
	default:
		s.nxtIndx = i
		return sfnInText
	}
}

func sfnInQuote(i int, c byte, s *sInfo) sfn {
	if c == s.qtype {
		s.ret = append(s.ret, s.in[s.nxtIndx:i])
		return sfnWhite
	}
	return sfnInQuote
}

func sfnInText(i int, c byte, s *sInfo) sfn {
	if iswhite(c) {
		s.ret = append(s.ret, s.in[s.nxtIndx:i])
		return sfnWhite
	}
	return sfnInText
}

// splitLine breaks a loop data line into its values. retIn is scratch
// space that will be reused if it is big enough.
func splitLine(in string, retIn []string) []string {
	if len(in) == 0 {
		return nil
	}
	s := sInfo{ret: retIn[:0], in: in}
	state := sfnWhite
	for i := 0; i < len(in); i++ {
		state = state(i, in[i], &s)
	}
	state(len(in), ' ', &s) // flush a word at the end of line. A quote cannot be open here.
	return s.ret
}

// unquote takes one layer of quotes off a tag value. A leading quote
// and a trailing quote are removed separately, so 'abc loses its quote
// even without a partner.
func unquote(s string) string {
	if len(s) > 0 && (s[0] == squote || s[0] == dquote) {
		s = s[1:]
	}
	if n := len(s); n > 0 && (s[n-1] == squote || s[n-1] == dquote) {
		s = s[:n-1]
	}
	return s
}
