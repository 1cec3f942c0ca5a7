package brokenio_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/nmrstar/pkg/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func newRdr() *brokenio.Reader {
	return brokenio.NewReader(io.NopCloser(strings.NewReader(longstring)), 1)
}

func TestReaderSimple(t *testing.T) {
	b, err := io.ReadAll(newRdr())
	if err != nil || string(b) != longstring {
		t.Errorf("simple read fail got %q, %v wanted %q", b, err, longstring)
	}
}

func TestZeroFile(t *testing.T) {
	rdr := newRdr()
	rdr.SetProbZeroFile(1)
	b, err := io.ReadAll(rdr)
	if len(b) > 0 || err != nil {
		t.Errorf("want nothing and no error, got %q, %v", b, err)
	}
	rdr = newRdr()
	rdr.SetProbZeroFile(0)
	if b, _ := io.ReadAll(rdr); len(b) != len(longstring) {
		t.Error("Wanted", len(longstring), "got", len(b))
	}
}

func TestProbFail(t *testing.T) {
	rdr := newRdr()
	rdr.SetProbFail(1)
	if _, err := io.ReadAll(rdr); !errors.Is(err, brokenio.ErrBroken) {
		t.Errorf("want ErrBroken, got %v", err)
	}
}

func TestFailAfter(t *testing.T) {
	rdr := newRdr()
	rdr.SetFailAfter(15)
	b, err := io.ReadAll(rdr)
	if !errors.Is(err, brokenio.ErrBroken) {
		t.Errorf("want ErrBroken, got %v", err)
	}
	if string(b) != longstring[:15] || rdr.NByte() != 15 {
		t.Errorf("got %q, %d bytes", b, rdr.NByte())
	}
}

// TestClose - check if the reader really is calling the correct close method.
func TestClose(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "testclose_test")
	if err := os.WriteFile(fname, []byte(longstring), 0o644); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	rdr := brokenio.NewReader(fp, 2)
	if b, err := io.ReadAll(rdr); len(b) != len(longstring) || err != nil {
		t.Error("Failed reading from tempfile, n, err = ", len(b), err)
	}
	if err = rdr.Close(); err != nil {
		t.Error("failed on close of reader")
	}
	if err = fp.Close(); err == nil {
		t.Error("file should already have been closed")
	}
}
