// 12 Oct 2026

// Package concat joins per-locus alignments into one supermatrix.
//
// Loci are taken in natural order ("locus2" before "locus10"). The
// taxa are the union of the taxa in every locus. A taxon missing from
// a locus gets a run of '?' as long as that locus, so every row of the
// result has the same length. Each locus becomes one partition.
package concat

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/partition"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
	"github.com/andrew-torda/msakit/pkg/seq/common"
)

// ErrEmptyAlignment is returned for a locus with no taxa.
var ErrEmptyAlignment = errors.New("empty alignment")

// locus is one input file, read and checked.
type locus struct {
	name  string
	m     *seq.Matrix
	nchar int
}

func readLocus(fname string, f seq.InputFmt, dt seq.DataType) (locus, error) {
	m, h, err := seq.Readfile(fname, f, dt)
	if err != nil {
		return locus{}, err
	}
	if m.Len() == 0 {
		return locus{}, errors.Wrap(ErrEmptyAlignment, fname)
	}
	if err := seq.CheckAlignment(fname, h); err != nil {
		return locus{}, err
	}
	name, err := partition.SanitizeName(common.Stem(fname))
	if err != nil {
		return locus{}, errors.Wrapf(err, "locus name from %s", fname)
	}
	return locus{name: name, m: m, nchar: m.Longest()}, nil
}

// Concat reads every file in fnames and joins them. The ID union is
// built on nWorker goroutines, the loci are then read one at a time.
// fnames itself is not reordered.
func Concat(fnames []string, f seq.InputFmt, dt seq.DataType, nWorker int, obs progress.Observer) (*seq.Matrix, *seq.Header, []partition.Partition, error) {
	obs = progress.OrNop(obs)
	if len(fnames) == 0 {
		return nil, nil, nil, errors.New("no alignments to concatenate")
	}
	sorted := append([]string(nil), fnames...)
	files.SortNatural(sorted)

	taxa, err := seq.IDUnion(sorted, f, nWorker)
	if err != nil {
		return nil, nil, nil, err
	}
	obs.OnProgress(fmt.Sprintf("%d taxa in %d loci", len(taxa), len(sorted)))
	inUnion := make(map[string]bool, len(taxa))
	for _, id := range taxa {
		inUnion[id] = true
	}

	loci := make([]locus, 0, len(sorted))
	parts := make([]partition.Partition, 0, len(sorted))
	offset := 0
	for _, fname := range sorted {
		l, err := readLocus(fname, f, dt)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, id := range l.m.IDs() { // only if the file changed under us
			if !inUnion[id] {
				return nil, nil, nil, errors.Wrapf(seq.ErrFormat, "%s: taxon %q not seen when listing taxa", fname, id)
			}
		}
		parts = append(parts, partition.Partition{Gene: l.name, Start: offset + 1, End: offset + l.nchar})
		offset += l.nchar
		loci = append(loci, l)
		obs.OnProgress(l.name)
	}

	m := seq.NewMatrix()
	for _, id := range taxa {
		row := make([]byte, 0, offset)
		for _, l := range loci {
			if s, ok := l.m.Get(id); ok {
				row = append(row, s...)
			} else {
				row = append(row, bytes.Repeat([]byte{common.MissingChar}, l.nchar)...)
			}
		}
		if err := m.Insert(id, row); err != nil {
			return nil, nil, nil, err
		}
	}

	h := seq.NewHeader()
	h.SetDataType(dt)
	h.Ntax = m.Len()
	h.Nchar = offset
	h.Aligned = true
	return m, h, parts, nil
}

// Options says what to concatenate and where to put it.
type Options struct {
	Fnames   []string
	InFmt    seq.InputFmt
	DataType seq.DataType
	Out      string // output file. The extension is added if missing.
	OutFmt   seq.OutputFmt
	PartFmt  partition.Fmt
	Sort     bool // sort taxa by ID
	Force    bool
	NWorker  int
	Observer progress.Observer
}

// outName adds the usual extension if the name has none.
func outName(name string, f seq.OutputFmt) string {
	if filepath.Ext(name) == "" {
		return name + f.Ext()
	}
	return name
}

// Run concatenates and writes the result and its partitions. It
// returns the name of the alignment file.
func Run(opts Options) (string, error) {
	out := outName(opts.Out, opts.OutFmt)
	if err := files.CheckFile(out, opts.Force); err != nil {
		return "", err
	}
	m, h, parts, err := Concat(opts.Fnames, opts.InFmt, opts.DataType, opts.NWorker, opts.Observer)
	if err != nil {
		return "", err
	}
	if opts.Sort {
		m = m.Sorted()
	}
	if err := seq.WriteFile(out, m, h, parts, opts.OutFmt, opts.PartFmt); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}
