// 17 Oct 2026
// For each sequence in a set of alignments, write the length without
// gaps or missing data, ready for a spreadsheet.

package seqlen

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"github.com/andrew-torda/msakit/pkg/pool"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
	"github.com/andrew-torda/msakit/pkg/seq/common"
)

// Row is one sequence.
type Row struct {
	Locus    string
	ID       string
	Length   int // with gaps
	Ungapped int
}

// Count gives one Row per taxon, in the order of the matrix.
func Count(locus string, m *seq.Matrix, h *seq.Header) []Row {
	rows := make([]Row, 0, m.Len())
	for _, id := range m.IDs() {
		s, _ := m.Get(id)
		n := 0
		for i := 0; i < len(s); i++ {
			if c := s[i]; !common.IsGapOrMissing(c) && c != h.Gap && c != h.Missing {
				n++
			}
		}
		rows = append(rows, Row{Locus: locus, ID: id, Length: len(s), Ungapped: n})
	}
	return rows
}

// Write writes rows as CSV with a header line.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"locus", "taxon", "length", "ungapped"})
	for _, r := range rows {
		cw.Write([]string{r.Locus, r.ID, strconv.Itoa(r.Length), strconv.Itoa(r.Ungapped)})
	}
	cw.Flush()
	return cw.Error()
}

// Options for Run. Out "-" is standard output.
type Options struct {
	Fnames   []string
	InFmt    seq.InputFmt
	DataType seq.DataType
	Out      string
	NWorker  int
	Observer progress.Observer
}

// Run reads every alignment on the pool and writes one table. Files
// come in the order given, taxa in file order. Alignments need not be
// aligned. It returns the number of rows.
func Run(opts Options) (int, error) {
	obs := progress.OrNop(opts.Observer)
	perFile, err := pool.Map(opts.Fnames, opts.NWorker, func(fname string) ([]Row, error) {
		m, h, err := seq.Readfile(fname, opts.InFmt, opts.DataType)
		if err != nil {
			return nil, err
		}
		obs.OnProgress(fname)
		return Count(common.Stem(fname), m, h), nil
	})
	if err != nil {
		return 0, err
	}
	var rows []Row
	for _, r := range perFile {
		rows = append(rows, r...)
	}

	fp, err := xopen.Wopen(opts.Out)
	if err != nil {
		return 0, errors.Wrap(err, opts.Out)
	}
	err = Write(fp, rows)
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, errors.Wrap(err, opts.Out)
	}
	return len(rows), nil
}
