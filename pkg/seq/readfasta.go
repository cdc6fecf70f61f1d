// Reader for fasta format files.

package seq

import (
	"bytes"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/andrew-torda/msakit/pkg/white"
)

// Constants
const cmmtChar byte = '>' // and this introduces comments in fasta format

// fastaID glues the name and description back together. biogo splits
// a comment line at the first blank, but a taxon is the whole line.
func fastaID(name, desc string) string {
	return strings.TrimSpace(name + " " + desc)
}

// splitCmmt splits a comment line the way the biogo reader does.
func splitCmmt(line []byte) (name, desc string) {
	line = bytes.TrimRight(line, "\r")
	if i := bytes.IndexAny(line, " \t"); i >= 0 {
		return string(line[:i]), string(line[i+1:])
	}
	return string(line), ""
}

// ReadFasta reads fasta formatted alignments. fname is only used in
// error messages. The header is worked out from the sequences.
func ReadFasta(rdr io.Reader, fname string, dt DataType) (*Matrix, *Header, error) {
	var alpha alphabet.Alphabet = alphabet.DNAredundant
	if dt == AA {
		alpha = alphabet.Protein
	}
	r := fasta.NewReader(rdr, linear.NewSeq("", nil, alpha))
	sc := seqio.NewScanner(r)

	m := NewMatrix()
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		id := fastaID(s.Name(), s.Description())
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		white.Remove(&b)
		if err := checkSymbols(fname, id, b, dt); err != nil {
			return nil, nil, err
		}
		if err := m.Insert(id, b); err != nil {
			return nil, nil, errorName(fname, err)
		}
	}
	if err := sc.Error(); err != nil {
		return nil, nil, errorName(fname, err)
	}

	h := NewHeader()
	h.SetDataType(dt)
	h.fromMatrix(m)
	return m, h, nil
}
