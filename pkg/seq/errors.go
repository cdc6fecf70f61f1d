package seq

import (
	"github.com/pkg/errors"
)

// Readers wrap these with the file name and what was expected, so
// errors.Cause(err) tells a caller what kind of problem it was.
var (
	ErrFormat      = errors.New("format violation")
	ErrDimMismatch = errors.New("declared and parsed dimensions differ")
	ErrDuplicateID = errors.New("duplicate taxon ID")
	ErrBadSymbol   = errors.New("invalid symbol")
	ErrNotAligned  = errors.New("sequences are not aligned")
)

// errorName sticks a problem causing filename on an error message
func errorName(fname string, err error) error {
	return errors.Wrap(err, fname)
}
