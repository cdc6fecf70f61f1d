// Which symbols may appear in a sequence.

package seq

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/pkg/errors"
)

// The biogo alphabets know IUPAC codes and gaps. Alignments also
// use ? for missing data and . for "same as the first row".
const (
	dnaExtra = "?."
	aaExtra  = "?.~*XBZJUO"
)

var dnaValid, aaValid [256]bool

func init() {
	fill(&dnaValid, alphabet.DNAredundant, dnaExtra)
	fill(&aaValid, alphabet.Protein, aaExtra)
}

// fill marks everything a, plus extra, as valid in both cases.
func fill(tbl *[256]bool, a alphabet.Alphabet, extra string) {
	for c := 0; c < 256; c++ {
		if a.IsValid(alphabet.Letter(c)) {
			tbl[c] = true
		}
	}
	for i := 0; i < len(extra); i++ {
		tbl[extra[i]] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		lc, uc := byte(c), byte(c-'a'+'A')
		if tbl[lc] || tbl[uc] {
			tbl[lc], tbl[uc] = true, true
		}
	}
}

// ValidSymbol says whether c may appear in a sequence of type dt.
func ValidSymbol(c byte, dt DataType) bool {
	switch dt {
	case AA:
		return aaValid[c]
	case Ignore:
		return true
	}
	return dnaValid[c]
}

// FirstInvalid returns the position of the first symbol in s that
// does not belong to dt, or -1 if all is well.
func FirstInvalid(s []byte, dt DataType) int {
	if dt == Ignore {
		return -1
	}
	for i, c := range s {
		if !ValidSymbol(c, dt) {
			return i
		}
	}
	return -1
}

// checkSymbols is called by every reader on each sequence it inserts.
func checkSymbols(fname, id string, s []byte, dt DataType) error {
	i := FirstInvalid(s, dt)
	if i < 0 {
		return nil
	}
	const msg = "%s: taxon %q has %q at position %d. Is the datatype (%s) right?"
	return errors.Wrapf(ErrBadSymbol, msg, fname, id, s[i], i+1, dt)
}
