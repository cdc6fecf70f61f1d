// 13 Oct 2026

// Package split cuts one alignment into one file per partition. It is
// the inverse of concat.
package split

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/partition"
	"github.com/andrew-torda/msakit/pkg/pool"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
	"github.com/andrew-torda/msakit/pkg/seq/common"
)

// allMissing is true if a slice holds nothing but gaps and missing
// symbols.
func allMissing(s string, h *seq.Header) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !common.IsGapOrMissing(c) && c != h.Gap && c != h.Missing {
			return false
		}
	}
	return true
}

// Piece is the alignment for one partition.
type Piece struct {
	Gene   string
	Matrix *seq.Matrix
	Header *seq.Header
}

// Cut slices m by every partition. Taxa with nothing but gaps or
// missing data in a partition are left out of that piece.
func Cut(m *seq.Matrix, h *seq.Header, parts []partition.Partition) ([]Piece, error) {
	pieces := make([]Piece, 0, len(parts))
	for _, p := range parts {
		gene, err := partition.SanitizeName(p.Gene)
		if err != nil {
			return nil, err
		}
		sl, err := m.Slice(p.Start-1, p.End)
		if err != nil {
			return nil, errors.Wrapf(partition.ErrPartition, "%s: %v", gene, err)
		}
		kept := seq.NewMatrix()
		for _, id := range sl.IDs() {
			s, _ := sl.Get(id)
			if allMissing(s, h) {
				continue
			}
			if err := kept.Insert(id, []byte(s)); err != nil {
				return nil, err
			}
		}
		ph := *h
		ph.Ntax = kept.Len()
		ph.Nchar = p.Len()
		ph.Aligned = true
		pieces = append(pieces, Piece{Gene: gene, Matrix: kept, Header: &ph})
	}
	return pieces, nil
}

// Options says what to split and where the pieces go.
type Options struct {
	Fname    string
	InFmt    seq.InputFmt
	DataType seq.DataType
	PartFile string
	PartFmt  partition.Fmt
	OutDir   string
	OutFmt   seq.OutputFmt
	Prefix   string
	Force    bool
	NWorker  int
	Observer progress.Observer
}

// pieceName is [prefix_]gene.ext in dir.
func pieceName(dir, prefix, gene string, f seq.OutputFmt) string {
	if prefix != "" {
		gene = prefix + "_" + gene
	}
	return filepath.Join(dir, gene+f.Ext())
}

// Run reads the alignment and its partitions and writes the pieces. It
// returns the names of the files written, in partition order.
func Run(opts Options) ([]string, error) {
	obs := progress.OrNop(opts.Observer)
	m, h, err := seq.Readfile(opts.Fname, opts.InFmt, opts.DataType)
	if err != nil {
		return nil, err
	}
	if err := seq.CheckAlignment(opts.Fname, h); err != nil {
		return nil, err
	}
	parts, err := partition.Parse(opts.PartFile, opts.PartFmt, false)
	if err != nil {
		return nil, err
	}
	pieces, err := Cut(m, h, parts)
	if err != nil {
		return nil, err
	}
	if err := files.PrepareDir(opts.OutDir, opts.Force); err != nil {
		return nil, err
	}

	names := make([]string, len(pieces))
	byName := make(map[string]Piece, len(pieces))
	for i, p := range pieces {
		names[i] = pieceName(opts.OutDir, opts.Prefix, p.Gene, opts.OutFmt)
		if _, ok := byName[names[i]]; ok {
			return nil, errors.Wrapf(partition.ErrGeneName, "%q used twice", p.Gene)
		}
		byName[names[i]] = p
	}
	err = pool.Each(names, opts.NWorker, func(name string) error {
		if err := files.CheckFile(name, opts.Force); err != nil {
			return err
		}
		p := byName[name]
		if err := seq.WriteFile(name, p.Matrix, p.Header, nil, opts.OutFmt, partition.Charset); err != nil {
			return err
		}
		obs.OnProgress(p.Gene)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
