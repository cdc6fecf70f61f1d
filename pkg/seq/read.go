package seq

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// Readfile takes a filename and reads an alignment from it. An Auto
// format is resolved from the extension. Compressed (.gz) files are
// read transparently.
func Readfile(fname string, f InputFmt, dt DataType) (*Matrix, *Header, error) {
	f, err := Resolve(fname, f)
	if err != nil {
		return nil, nil, err
	}
	var rdr io.Reader
	fp, err := xopen.Ropen(fname)
	switch {
	case err == xopen.ErrNoContent: // empty file. Let the reader say what it thinks.
		rdr = strings.NewReader("")
	case err != nil:
		return nil, nil, errorName(fname, err)
	default:
		defer fp.Close()
		rdr = fp
	}

	switch f {
	case Nexus:
		return ReadNexus(rdr, fname, dt)
	case Phylip:
		return ReadPhylip(rdr, fname, dt)
	}
	return ReadFasta(rdr, fname, dt)
}

// CheckAlignment is for operations that need every sequence to have the
// same length.
func CheckAlignment(fname string, h *Header) error {
	if !h.Aligned {
		return errors.Wrapf(ErrNotAligned, "%s", fname)
	}
	return nil
}
