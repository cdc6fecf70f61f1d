// Reading partition files.

package partition

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

var (
	charsetRe = regexp.MustCompile(`(?is)^charset\s+(.+?)\s*=\s*(.+)$`)
	// Codon subsets are written with a suffix such as gene_Subset2,
	// gene_subset_2 or gene_2ndpos.
	codonSuffixRe = regexp.MustCompile(`(?i)_(subset_?[123]|[123](st|nd|rd)_?pos|pos_?[123]|codon_?[123])$`)
)

const stride = `\3`

// parseRange reads "1-300" or "1-300\3". A lone number is a one site
// range.
func parseRange(s string) (start, end int, codon bool, err error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, stride) {
		codon = true
		s = strings.TrimSpace(strings.TrimSuffix(s, stride))
	}
	a, b, found := strings.Cut(s, "-")
	if !found {
		b = a
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, false, errors.Wrapf(ErrPartition, "cannot read range %q", s)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, false, errors.Wrapf(ErrPartition, "cannot read range %q", s)
	}
	if start < 1 {
		return 0, 0, false, errors.Wrapf(ErrPartition, "range %q starts before 1", s)
	}
	return start, end, codon, nil
}

// builder collects partitions and folds codon subsets together.
type builder struct {
	parts     []Partition
	lastCodon bool
}

// add takes one entry. The second and third codon subsets of a gene
// either carry the same name once the suffix is gone, or end where the
// previous entry ended. Either way they widen the last partition.
func (b *builder) add(gene, rng string) error {
	start, end, codon, err := parseRange(rng)
	if err != nil {
		return errors.Wrapf(err, "gene %s", gene)
	}
	if gene, err = SanitizeName(gene); err != nil {
		return err
	}
	if codon {
		gene = codonSuffixRe.ReplaceAllString(gene, "")
	}
	if n := len(b.parts); codon && b.lastCodon && n > 0 {
		last := &b.parts[n-1]
		if last.Gene == gene || last.End == end {
			last.Start = min(last.Start, start)
			last.End = max(last.End, end)
			return nil
		}
	}
	b.parts = append(b.parts, Partition{Gene: gene, Start: start, End: end})
	b.lastCodon = codon
	return nil
}

// Parse reads a partition file. Charset and Nexus (and their codon
// variants) look for charset statements anywhere in the file. If
// checked is false, partitions need not start at 1 or be contiguous.
func Parse(fname string, f Fmt, checked bool) ([]Partition, error) {
	fp, err := xopen.Ropen(fname)
	if err == xopen.ErrNoContent {
		return nil, errors.Wrapf(ErrPartition, "%s: no partitions", fname)
	}
	if err != nil {
		return nil, errors.Wrap(err, fname)
	}
	defer fp.Close()
	return ParseReader(fp, fname, f, checked)
}

// ParseReader is Parse on a reader. fname is only for error messages.
func ParseReader(rdr io.Reader, fname string, f Fmt, checked bool) ([]Partition, error) {
	var b builder
	var err error
	if f.Base() == Raxml {
		err = parseRaxml(rdr, &b)
	} else {
		err = parseCharsets(rdr, &b)
	}
	if err != nil {
		return nil, errors.Wrap(err, fname)
	}
	if len(b.parts) == 0 {
		return nil, errors.Wrapf(ErrPartition, "%s: no partitions", fname)
	}
	if checked {
		if err := Validate(b.parts); err != nil {
			return nil, errors.Wrap(err, fname)
		}
	}
	return b.parts, nil
}

// parseRaxml reads lines like "DNA, gene1 = 1-300". The datatype,
// everything up to the first comma, is optional and ignored.
func parseRaxml(rdr io.Reader, b *builder) error {
	sc := bufio.NewScanner(rdr)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = line[i+1:]
		}
		gene, rng, found := strings.Cut(line, "=")
		if !found {
			return errors.Wrapf(ErrPartition, "line %d: expected NAME = START-END, found %q", n, sc.Text())
		}
		if err := b.add(gene, rng); err != nil {
			return errors.Wrapf(err, "line %d", n)
		}
	}
	return sc.Err()
}

// parseCharsets splits the text into ";" statements and keeps the
// charset ones, wherever they are.
func parseCharsets(rdr io.Reader, b *builder) error {
	text, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}
	for _, stmt := range strings.Split(string(text), ";") {
		m := charsetRe.FindStringSubmatch(strings.TrimSpace(stmt))
		if m == nil {
			continue
		}
		if err := b.add(m[1], m[2]); err != nil {
			return err
		}
	}
	return nil
}
