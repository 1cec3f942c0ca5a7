// Package zwrap takes a file pointer or an http body and optionally wraps
// it so reading gives decompressed bytes. Upon calling Close, the
// decompressor is closed, followed by the underlying file.
// BMRB serves plain .str files, but people keep them gzipped on disk.

package zwrap

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

// Reader is what we return. If zrdr is nil, reads go straight to fp.
type Reader struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
// It should work if the source is a file or an http stream.
func (fc *Reader) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	var s string
	if e := fc.zrdr.Close(); e != nil { // Close decompressor
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil { // and backing file
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *Reader) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Compressed says if reads are being decompressed.
func (fc *Reader) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like a file pointer or http stream and wraps it
// in a gzip reader. It fails if the stream does not start with a gzip header.
func Wrap(fp io.ReadCloser) (*Reader, error) {
	var fpz Reader
	var err error
	fpz.fp = fp
	fpz.zrdr, err = gzip.NewReader(fpz.fp)
	return &fpz, err
}

// ReadSeekCloser is what WrapMaybe needs, so it can rewind.
type ReadSeekCloser = io.ReadSeekCloser

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
// You do lose something. If you pass in something which can seek,
// you get back a ReadCloser which cannot seek.
func WrapMaybe(fpIn ReadSeekCloser) (*Reader, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil // It was compressed. Return compressed reader.
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	r := &Reader{
		fp: fpIn, // Leave the zrdr implicitly nil
	}
	return r, err
}

// IsGzName says if a file name looks like a gzipped file.
func IsGzName(fname string) bool {
	return strings.HasSuffix(strings.ToLower(fname), ".gz")
}

// Open opens a file and returns a reader which decompresses if the
// contents are gzipped, whatever the file is called.
func Open(fname string) (*Reader, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r, err := WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return r, nil
}
