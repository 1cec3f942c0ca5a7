// Package brokenio wraps an io.ReadCloser so that reads go wrong, for
// testing the code that reads NMR-STAR files and downloads.
// Typical use: You get a file pointer, a reader from a compressed
// source or an http body. You write
//
//	reader = brokenio.NewReader(reader, seed)
//
// and set how it should fail. Everything then works as before, but
// with artificial errors.
// A failure on the first read returns io.EOF and no data. This is what
// one sees with a zero length file or a server that hung up.
package brokenio

import (
	"errors"
	"io"
	"math/rand/v2"

	"github.com/andrew-torda/nmrstar/pkg/logger"
)

// ErrBroken is the error we make up.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A Reader counts what goes through it and fails as often as it is
// told. Probabilities are fractions, so 0.05 means 5% of reads.
type Reader struct {
	rdrOrig      io.ReadCloser
	rng          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32 // per call to Read
	failAfter    int     // fail once this many bytes have gone through, if > 0
	nCalled      int
	nByte        int
}

// NewReader wraps rIn. Until something is set, it does not fail.
// The seed makes failures repeatable.
func NewReader(rIn io.ReadCloser, seed uint64) *Reader {
	return &Reader{rdrOrig: rIn, rng: rand.New(rand.NewPCG(seed, seed))}
}

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability that a read fails.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes reads fail once n bytes have been delivered, like
// a connection dropped half way through a download.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// Read passes reads through to the wrapped reader unless it is time
// to fail.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rng.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	r.nCalled++
	if r.probFail > 0 && r.rng.Float32() < r.probFail {
		return 0, ErrBroken
	}
	if r.failAfter > 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err := r.rdrOrig.Read(p)
	r.nByte += n
	return n, err
}

// NByte is how much has been read so far.
func (r *Reader) NByte() int { return r.nByte }

// Close wraps the original Close method.
func (r *Reader) Close() error {
	logger.Debug("brokenio closing", "calls", r.nCalled, "bytes", r.nByte)
	return r.rdrOrig.Close()
}
