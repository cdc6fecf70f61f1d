// 20 Dec 2017
// 2 Oct 2026 rewritten around an ordered taxon matrix for
// NEXUS and PHYLIP as well as fasta.

// Package seq reads, checks and writes multiple sequence alignments
// in FASTA, NEXUS and PHYLIP format.
//
// An alignment lives in a Matrix, which maps a taxon ID onto its
// sequence and remembers the order in which taxa were first seen.
// A Header goes with each Matrix and carries what a NEXUS or PHYLIP
// file declares about the matrix (ntax, nchar, datatype and
// symbols). For FASTA, the header is worked out from the sequences.
//
// Readers never hand back a Matrix that is changed later. Sorting,
// slicing and padding make a new Matrix.
package seq

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DataType says which alphabet sequences are checked against.
type DataType byte

const (
	DNA    DataType = iota // IUPAC nucleotides
	AA                     // amino acids
	Ignore                 // anything goes. Counted as DNA.
)

// ParseDataType takes names as they come from the command line.
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(s) {
	case "dna", "nucleotide", "nt":
		return DNA, nil
	case "aa", "protein", "prot":
		return AA, nil
	case "ignore":
		return Ignore, nil
	}
	return DNA, errors.Errorf("unknown datatype %q (want dna, aa or ignore)", s)
}

func (dt DataType) String() string {
	switch dt {
	case AA:
		return "aa"
	case Ignore:
		return "ignore"
	}
	return "dna"
}

// Header is what is known about a matrix as a whole.
type Header struct {
	Ntax     int
	Nchar    int
	Datatype string // "dna", "protein" or whatever a NEXUS file declared
	Missing  byte
	Gap      byte
	Aligned  bool
}

// NewHeader gives a header with the usual defaults.
func NewHeader() *Header {
	return &Header{
		Datatype: "dna",
		Missing:  '?',
		Gap:      '-',
	}
}

// SetDataType sets the datatype string that goes into NEXUS files.
func (h *Header) SetDataType(dt DataType) {
	if dt == AA {
		h.Datatype = "protein"
	} else {
		h.Datatype = "dna"
	}
}

// fromMatrix fills in the counts and the aligned flag by looking at m.
func (h *Header) fromMatrix(m *Matrix) {
	h.Ntax = m.Len()
	h.Nchar = m.Longest()
	h.Aligned = m.Aligned()
}

// Matrix is an ordered mapping from taxon ID to sequence.
type Matrix struct {
	ids  []string
	ndx  map[string]int
	seqs [][]byte
}

// NewMatrix returns an empty matrix.
func NewMatrix() *Matrix {
	return &Matrix{ndx: make(map[string]int)}
}

// Insert adds a new taxon. A taxon that is already there is an error.
func (m *Matrix) Insert(id string, s []byte) error {
	if _, ok := m.ndx[id]; ok {
		return errors.Wrapf(ErrDuplicateID, "%q", id)
	}
	m.ndx[id] = len(m.ids)
	m.ids = append(m.ids, id)
	m.seqs = append(m.seqs, s)
	return nil
}

// Append adds s to the end of the sequence for id. If id is new, it
// is inserted. This is what interleaved formats want.
func (m *Matrix) Append(id string, s []byte) {
	if i, ok := m.ndx[id]; ok {
		m.seqs[i] = append(m.seqs[i], s...)
		return
	}
	t := make([]byte, len(s))
	copy(t, s)
	m.ndx[id] = len(m.ids)
	m.ids = append(m.ids, id)
	m.seqs = append(m.seqs, t)
}

// Len is the number of taxa.
func (m *Matrix) Len() int { return len(m.ids) }

// IDs returns the taxon IDs in insertion order.
func (m *Matrix) IDs() []string {
	ids := make([]string, len(m.ids))
	copy(ids, m.ids)
	return ids
}

// Has says whether id is in the matrix.
func (m *Matrix) Has(id string) bool {
	_, ok := m.ndx[id]
	return ok
}

// Get returns the sequence for id.
func (m *Matrix) Get(id string) (string, bool) {
	i, ok := m.ndx[id]
	if !ok {
		return "", false
	}
	return string(m.seqs[i]), true
}

// row gives the sequence bytes for taxon number i. Not to be
// modified.
func (m *Matrix) row(i int) []byte { return m.seqs[i] }

// Longest is the length of the longest sequence.
func (m *Matrix) Longest() int {
	n := 0
	for _, s := range m.seqs {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

// Aligned is true if every sequence has the same length.
func (m *Matrix) Aligned() bool {
	for _, s := range m.seqs {
		if len(s) != len(m.seqs[0]) {
			return false
		}
	}
	return true
}

// Sorted returns a new matrix with taxa in ID order.
func (m *Matrix) Sorted() *Matrix {
	ids := m.IDs()
	sort.Strings(ids)
	t := NewMatrix()
	for _, id := range ids {
		t.Insert(id, m.seqs[m.ndx[id]])
	}
	return t
}

// Slice returns a new matrix holding bytes [start, end) of every
// sequence. Positions count from zero. Sequences that are too short
// give an error.
func (m *Matrix) Slice(start, end int) (*Matrix, error) {
	t := NewMatrix()
	for i, id := range m.ids {
		s := m.seqs[i]
		if start < 0 || end > len(s) || start > end {
			return nil, errors.Errorf("range %d-%d outside taxon %q of length %d",
				start+1, end, id, len(s))
		}
		b := make([]byte, end-start)
		copy(b, s[start:end])
		t.Insert(id, b)
	}
	return t, nil
}

// Equal says whether two matrices have the same taxa in the same
// order with the same sequences.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, id := range m.ids {
		if o.ids[i] != id || !bytes.Equal(m.seqs[i], o.seqs[i]) {
			return false
		}
	}
	return true
}

// String gives one "id sequence" line per taxon. It is handy in
// tests and when debugging.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i, id := range m.ids {
		sb.WriteString(id)
		sb.WriteByte(' ')
		sb.Write(m.seqs[i])
		sb.WriteByte('\n')
	}
	return sb.String()
}
