// Package fasta writes the sequences from an entry so they can go
// straight into an alignment or a blast search.
package fasta

import (
	"bufio"
	"fmt"
	"io"

	"github.com/andrew-torda/nmrstar/pkg/views"
)

const (
	cmmtChar = '>'
	cPerLine = 60
	GapChar  = '-'
)

// clean returns the sequence in upper case without white space or
// gaps. It only works with bytes, not runes. Anything that is not
// ASCII is an error.
func clean(s string) ([]byte, error) {
	const diff = 'a' - 'A'
	t := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 128:
			return nil, fmt.Errorf("bad sym \"%c\" at position %d", c, i)
		case c == ' ', c == '\t', c == '\n', c == '\r', c == GapChar:
			continue
		case 'a' <= c && c <= 'z':
			c -= diff
		}
		t = append(t, c)
	}
	return t, nil
}

// Write writes the sequences as FASTA. The comment line is
// >prefix saveframe polymer_type. Empty sequences are skipped.
func Write(w io.Writer, prefix string, seqs []views.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, q := range seqs {
		s, err := clean(q.PolymerSeq)
		if err != nil {
			return fmt.Errorf("%s %s: %w", prefix, q.Saveframe, err)
		}
		if len(s) == 0 {
			continue
		}
		fmt.Fprintf(bw, "%c%s %s %s\n", cmmtChar, prefix, q.Saveframe, q.PolymerType)
		for ; len(s) > cPerLine; s = s[cPerLine:] {
			bw.Write(s[:cPerLine])
			bw.WriteByte('\n')
		}
		bw.Write(s)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
