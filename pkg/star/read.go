// 13 Oct 2026

package star

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/nmrstar/pkg/zwrap"
)

// Sequences in an entity saveframe are sometimes on one line, so lines
// can be much longer than bufio's default.
const (
	initBufSize = 64 * 1024
	maxLineLen  = 16 * 1024 * 1024
)

// ReadLines reads everything from r and returns it as lines, without
// the newlines. A carriage return before a newline is also removed.
func ReadLines(r io.Reader) ([]string, error) {
	scnr := bufio.NewScanner(r)
	scnr.Buffer(make([]byte, initBufSize), maxLineLen)
	var lines []string
	for scnr.Scan() {
		lines = append(lines, scnr.Text())
	}
	if err := scnr.Err(); err != nil {
		rerr := &ReadError{N: len(lines) + 1, Err: err}
		if len(lines) > 0 {
			rerr.Inline = lines[len(lines)-1]
		}
		return nil, rerr
	}
	return lines, nil
}

// splitLines does what ReadLines does, but on bytes we already have.
// The strings are copies, so b can go away afterwards.
func splitLines(b []byte) []string {
	lines := make([]string, 0, bytes.Count(b, []byte{'\n'})+1)
	for len(b) > 0 {
		var line []byte
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line, b = b[:i], b[i+1:]
		} else {
			line, b = b, nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		lines = append(lines, string(line))
	}
	return lines
}

// ParseReader reads all lines from r and parses them.
func ParseReader(r io.Reader) (*Entry, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines), nil
}

// byMmap maps a plain file into memory and splits it into lines.
// mmap refuses empty files, so they are handled first.
func byMmap(fname string) ([]string, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return nil, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer mm.Unmap()
	return splitLines(mm), nil
}

// byReader goes through zwrap, so gzipped files are decompressed on the way.
func byReader(fname string) ([]string, error) {
	r, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadLines(r)
}

// ReadFile returns the lines of a file. Plain files are memory mapped.
// Files ending in .gz are decompressed.
func ReadFile(fname string) ([]string, error) {
	var lines []string
	var err error
	if zwrap.IsGzName(fname) {
		lines, err = byReader(fname)
	} else {
		lines, err = byMmap(fname)
	}
	if err == nil {
		return lines, nil
	}
	if rerr, ok := err.(*ReadError); ok {
		rerr.Fname = fname
		return nil, rerr
	}
	return nil, &ReadError{Fname: fname, Err: err}
}

// ParseFile reads and parses an NMR-STAR file. The only errors are from
// reading the file.
func ParseFile(fname string) (*Entry, error) {
	lines, err := ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(lines), nil
}
