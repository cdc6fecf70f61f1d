// Writers for all the formats we read.

package seq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"github.com/andrew-torda/msakit/pkg/partition"
)

// Interleaved output is wrapped at this many characters, or wideWrap
// for long alignments.
const (
	narrowWrap = 80
	wideWrap   = 500
	wideNchar  = 2000
)

// wrapWidth is the chunk width for an alignment of nchar columns.
func wrapWidth(nchar int) int {
	if nchar < wideNchar {
		return narrowWrap
	}
	return wideWrap
}

// errWriter remembers the first error, so we can check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, a...)
	}
}

func (ew *errWriter) write(b []byte) {
	if ew.err == nil {
		_, ew.err = ew.w.Write(b)
	}
}

// nexusID quotes IDs that hold a blank or NEXUS punctuation. Quotes
// inside are doubled.
func nexusID(id string) string {
	if strings.ContainsAny(id, " \t'[];") {
		return "'" + strings.ReplaceAll(id, "'", "''") + "'"
	}
	return id
}

// rows collects what gets written: the ID as it appears in the file
// and the sequence.
func rows(m *Matrix, quote bool) ([]string, [][]byte) {
	ids := m.IDs()
	seqs := make([][]byte, len(ids))
	for i, id := range ids {
		seqs[i] = m.row(i)
		if quote {
			ids[i] = nexusID(id)
		}
	}
	return ids, seqs
}

// idWidth is one more than the longest ID, so sequences line up.
func idWidth(ids []string) int {
	n := 0
	for _, id := range ids {
		if len(id) > n {
			n = len(id)
		}
	}
	return n + 1
}

// chunk returns piece number i of width w from s, which may be empty if
// s is short.
func chunk(s []byte, i, w int) []byte {
	start := min(i*w, len(s))
	end := min(start+w, len(s))
	return s[start:end]
}

// writeMatrix writes the rows. Sequential output is one line per taxon.
// Interleaved output is rounds of chunks, separated by blank lines. If
// idsEachRound is false, only the first round carries IDs.
func writeMatrix(ew *errWriter, ids []string, seqs [][]byte, nchar int, interleave, idsEachRound bool) {
	pad := idWidth(ids)
	if !interleave {
		for i, id := range ids {
			ew.printf("%-*s", pad, id)
			ew.write(seqs[i])
			ew.printf("\n")
		}
		return
	}
	w := wrapWidth(nchar)
	longest := 0
	for _, s := range seqs {
		longest = max(longest, len(s))
	}
	nround := (longest + w - 1) / w
	for r := 0; r < nround; r++ {
		if r > 0 {
			ew.printf("\n")
		}
		for i, id := range ids {
			if r == 0 || idsEachRound {
				ew.printf("%-*s", pad, id)
			}
			ew.write(chunk(seqs[i], r, w))
			ew.printf("\n")
		}
	}
}

func writeFasta(ew *errWriter, m *Matrix, h *Header, interleave bool) {
	ids, seqs := rows(m, false)
	w := wrapWidth(h.Nchar)
	for i, id := range ids {
		ew.printf("%c%s\n", cmmtChar, id)
		s := seqs[i]
		if !interleave {
			ew.write(s)
			ew.printf("\n")
			continue
		}
		for ; len(s) > w; s = s[w:] {
			ew.write(s[:w])
			ew.printf("\n")
		}
		ew.write(s)
		ew.printf("\n")
	}
}

func writeNexus(ew *errWriter, m *Matrix, h *Header, interleave bool) {
	ew.printf("#NEXUS\nbegin data;\n")
	ew.printf("dimensions ntax=%d nchar=%d;\n", h.Ntax, h.Nchar)
	ew.printf("format datatype=%s missing=%c gap=%c", h.Datatype, h.Missing, h.Gap)
	if interleave {
		ew.printf(" interleave")
	}
	ew.printf(";\nmatrix\n")
	ids, seqs := rows(m, true)
	writeMatrix(ew, ids, seqs, h.Nchar, interleave, true)
	ew.printf(";\nend;\n")
}

func writePhylip(ew *errWriter, m *Matrix, h *Header, interleave bool) {
	ew.printf("%d %d\n", h.Ntax, h.Nchar)
	ids, seqs := rows(m, false)
	writeMatrix(ew, ids, seqs, h.Nchar, interleave, false)
}

// Write writes the alignment m in format f. The counts in the NEXUS
// and PHYLIP headers come from h.
func Write(w io.Writer, m *Matrix, h *Header, f OutputFmt) error {
	ew := &errWriter{w: w}
	switch f {
	case NexusOut, NexusInt:
		writeNexus(ew, m, h, f.Interleaved())
	case PhylipOut, PhylipInt:
		writePhylip(ew, m, h, f.Interleaved())
	default:
		writeFasta(ew, m, h, f.Interleaved())
	}
	return ew.err
}

// WriteFile writes an alignment to fname, making directories as
// needed. A .gz name gives compressed output. If parts is not nil,
// partitions are written too: charset partitions go inside NEXUS
// output, everything else into a companion file.
func WriteFile(fname string, m *Matrix, h *Header, parts []partition.Partition, f OutputFmt, pf partition.Fmt) error {
	if dir := filepath.Dir(fname); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, fname)
		}
	}
	fp, err := xopen.Wopen(fname)
	if err != nil {
		return errors.Wrap(err, fname)
	}
	err = Write(fp, m, h, f)
	inline := parts != nil && pf.Base() == partition.Charset && (f == NexusOut || f == NexusInt)
	if err == nil && inline {
		if _, err = io.WriteString(fp, "\n"); err == nil {
			err = partition.WriteCharsets(fp, parts, pf.Codon())
		}
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, fname)
	}
	if parts != nil && !inline {
		if _, err := partition.WriteCompanion(fname, parts, pf, h.Datatype); err != nil {
			return err
		}
	}
	return nil
}
