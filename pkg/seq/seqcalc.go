// 6 Apr 2020
// 9 Oct 2026 parsimony informative sites and missing data
// seqcalc does simple, common calculations on a set of sequences.

package seq

import (
	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/msakit/pkg/seq/common"
)

const badMap = 255 // marks a symbol as not seen

// aaAmbig are the amino acid symbols that say nothing definite.
const aaAmbig = "XBZJU?-.~*"

var dnaCount, aaCount [256]bool

func init() {
	for _, c := range []byte("ACGT") {
		dnaCount[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		aaCount[c] = true
	}
	for i := 0; i < len(aaAmbig); i++ {
		aaCount[aaAmbig[i]] = false
	}
}

// countable says whether a symbol takes part in site counting. Lower
// case is counted as upper case.
func countable(dt DataType) *[256]bool {
	if dt == AA {
		return &aaCount
	}
	return &dnaCount
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// SiteCounts is the number of times each symbol turns up in each
// column. counts.Mat looks like [number_of_symbols][length_of_seq].
type SiteCounts struct {
	counts  *matrix.FMatrix2d
	mapping [256]uint8 // mapping['C'] tells me the row used for C
	revmap  []byte     // revmap[2] tells me the character in row 2
}

// CountSites tallies the countable symbols of every column of m.
func CountSites(m *Matrix, dt DataType) *SiteCounts {
	keep := countable(dt)
	sc := new(SiteCounts)
	for i := range sc.mapping {
		sc.mapping[i] = badMap
	}
	for i := 0; i < m.Len(); i++ { // First find out which symbols
		for _, c := range m.row(i) { // are used.
			c = upper(c)
			if keep[c] && sc.mapping[c] == badMap {
				sc.mapping[c] = uint8(len(sc.revmap))
				sc.revmap = append(sc.revmap, c)
			}
		}
	}

	sc.counts = matrix.NewFMatrix2d(len(sc.revmap), m.Longest())
	for i := 0; i < m.Len(); i++ {
		for icol, c := range m.row(i) {
			if r := sc.mapping[upper(c)]; r != badMap {
				sc.counts.Mat[r][icol]++
			}
		}
	}
	return sc
}

// Count returns how often c turns up in column icol.
func (sc *SiteCounts) Count(c byte, icol int) int {
	r := sc.mapping[upper(c)]
	if r == badMap {
		return 0
	}
	return int(sc.counts.Mat[r][icol])
}

// NCol is the number of columns counted.
func (sc *SiteCounts) NCol() int {
	_, ncol := sc.counts.Size()
	return ncol
}

// column says how many symbols turn up at all in a column and how
// many turn up at least twice.
func (sc *SiteCounts) column(icol int) (nseen, ntwice int) {
	for r := range sc.revmap {
		switch n := sc.counts.Mat[r][icol]; {
		case n >= 2:
			ntwice++
			nseen++
		case n >= 1:
			nseen++
		}
	}
	return
}

// Variable is the number of columns with more than one symbol.
func (sc *SiteCounts) Variable() int {
	nvar := 0
	for icol := 0; icol < sc.NCol(); icol++ {
		if nseen, _ := sc.column(icol); nseen > 1 {
			nvar++
		}
	}
	return nvar
}

// Pinf is the number of parsimony informative columns: variable, with
// at least two symbols that each turn up at least twice.
func (sc *SiteCounts) Pinf() int {
	npinf := 0
	for icol := 0; icol < sc.NCol(); icol++ {
		if nseen, ntwice := sc.column(icol); nseen > 1 && ntwice >= 2 {
			npinf++
		}
	}
	return npinf
}

// MissingData is the fraction of the ntax x nchar cells that hold a gap
// or missing symbol.
func MissingData(m *Matrix, h *Header) float64 {
	ncell := m.Len() * m.Longest()
	if ncell == 0 {
		return 0
	}
	nmiss := 0
	for i := 0; i < m.Len(); i++ {
		for _, c := range m.row(i) {
			if common.IsGapOrMissing(c) || c == h.Gap || c == h.Missing {
				nmiss++
			}
		}
	}
	return float64(nmiss) / float64(ncell)
}
