// Package brokenio wraps an io.Reader so that reads go wrong. Readers
// are tested with it to make sure a failed read turns into an error
// and not a half read alignment.
//
// Typical use: wrap whatever the reader would have read from,
//
//	rdr := brokenio.NewReader(strings.NewReader(s))
//	rdr.SetFailAfter(100)
//
// and everything works as before until something breaks.
// Random failures come from a seeded source, so a test sees the same
// failures every time it is run.
package brokenio

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrBroken is returned when a read is made to fail.
var ErrBroken = errors.New("brokenio: induced read failure")

// A Reader fails in one of three ways. It can look empty on the first
// read, fail once a number of bytes have gone through, or fail at
// random with probability probFail per call. When a read fails, the
// last fracFail of what was read is zeroed.
type Reader struct {
	rdr          io.Reader
	rnd          *rand.Rand
	probZeroFile float32
	probFail     float32
	fracFail     float32
	failAfter    int // -1 means never
	nCalled      int
	nByte        int
}

// NewReader wraps rIn. Nothing goes wrong until one of the Set
// methods is called.
func NewReader(rIn io.Reader) *Reader {
	return &Reader{
		rdr:       rIn,
		rnd:       rand.New(rand.NewSource(1)),
		fracFail:  0.5,
		failAfter: -1,
	}
}

// SetSeed changes the random source.
func (r *Reader) SetSeed(seed int64) { r.rnd = rand.New(rand.NewSource(seed)) }

// SetFracFail sets how much of a failed read is wiped out.
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the chance that the first read returns nothing
// and io.EOF, as if the file were empty.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the chance of any one read failing.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes the read that takes the total past n bytes fail.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// NByte is the number of bytes read so far.
func (r *Reader) NByte() int { return r.nByte }

// trashSlice zeroes the last frac of p and says how much is left.
func trashSlice(p []byte, frac float32) int {
	nkeep := int(float32(len(p)) * (1. - frac))
	clear(p[nkeep:])
	return nkeep
}

// Read is the Read of the wrapped reader, with failures added.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.nCalled == 1 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	switch {
	case r.failAfter >= 0 && r.nByte > r.failAfter:
		keep := max(0, n-(r.nByte-r.failAfter))
		clear(p[keep:n])
		return keep, ErrBroken
	case r.probFail > 0 && r.rnd.Float32() < r.probFail:
		return trashSlice(p[:n], r.fracFail), ErrBroken
	}
	return n, err
}

// String reports how much went through.
func (r *Reader) String() string {
	return fmt.Sprintf("%d calls and %d bytes", r.nCalled, r.nByte)
}
