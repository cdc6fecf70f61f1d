// Writing partitions.

package partition

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"github.com/andrew-torda/msakit/pkg/seq/common"
)

// subset is one line of output.
type subset struct {
	name       string
	start, end int
	codon      bool
}

// subsets gives one entry per gene, or three with codon.
func subsets(parts []Partition, codon bool) []subset {
	var ss []subset
	for _, p := range parts {
		if !codon {
			ss = append(ss, subset{p.Gene, p.Start, p.End, false})
			continue
		}
		for i := 0; i < 3; i++ {
			name := fmt.Sprintf("%s_Subset%d", p.Gene, i+1)
			ss = append(ss, subset{name, p.Start + i, p.End, true})
		}
	}
	return ss
}

func (s subset) rng() string {
	if s.codon {
		return fmt.Sprintf("%d-%d%s", s.start, s.end, stride)
	}
	return fmt.Sprintf("%d-%d", s.start, s.end)
}

// nexusName quotes names a NEXUS reader would split at the hyphen.
func nexusName(name string) string {
	if strings.Contains(name, "-") {
		return "'" + name + "'"
	}
	return name
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

// WriteCharsets writes a NEXUS sets block.
func WriteCharsets(w io.Writer, parts []Partition, codon bool) error {
	ew := &errWriter{w: w}
	ew.printf("begin sets;\n")
	for _, s := range subsets(parts, codon) {
		ew.printf("charset %s = %s;\n", nexusName(s.name), s.rng())
	}
	ew.printf("end;\n")
	return ew.err
}

// raxmlType is the leading word on each RAxML line.
func raxmlType(datatype string) string {
	if datatype == "protein" {
		return "WAG"
	}
	return "DNA"
}

// WriteRaxml writes one "DNA, gene = start-end" line per partition.
func WriteRaxml(w io.Writer, parts []Partition, codon bool, datatype string) error {
	ew := &errWriter{w: w}
	dt := raxmlType(datatype)
	for _, s := range subsets(parts, codon) {
		ew.printf("%s, %s = %s\n", dt, s.name, s.rng())
	}
	return ew.err
}

// CompanionPath is where partitions for the alignment alnPath go when
// they are not written into the alignment itself.
func CompanionPath(alnPath string, f Fmt) string {
	ext := ".nex"
	if f.Base() == Raxml {
		ext = ".txt"
	}
	return filepath.Join(filepath.Dir(alnPath), common.Stem(alnPath)+"_partition"+ext)
}

// Write writes parts in format f. NEXUS flavours get a #nexus line.
func Write(w io.Writer, parts []Partition, f Fmt, datatype string) error {
	if f.Base() == Raxml {
		return WriteRaxml(w, parts, f.Codon(), datatype)
	}
	if _, err := io.WriteString(w, "#nexus\n"); err != nil {
		return err
	}
	return WriteCharsets(w, parts, f.Codon())
}

// WriteCompanion writes partitions next to alnPath and returns the name
// of the file written.
func WriteCompanion(alnPath string, parts []Partition, f Fmt, datatype string) (string, error) {
	fname := CompanionPath(alnPath, f)
	fp, err := xopen.Wopen(fname)
	if err != nil {
		return "", errors.Wrap(err, fname)
	}
	if err := Write(fp, parts, f, datatype); err != nil {
		fp.Close()
		return "", errors.Wrap(err, fname)
	}
	if err := fp.Close(); err != nil {
		return "", errors.Wrap(err, fname)
	}
	return fname, nil
}
