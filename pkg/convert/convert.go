// 15 Oct 2026

// Package convert rewrites many alignments in another format. Each
// file is read, maybe sorted, and written on its own, so files are
// spread over a pool of workers.
package convert

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

// Options says what to convert and where to.
type Options struct {
	Fnames   []string
	InFmt    seq.InputFmt
	DataType seq.DataType
	OutDir   string
	OutFmt   seq.OutputFmt
	Sort     bool // sort taxa by ID
	Force    bool
	NWorker  int
	Observer progress.Observer
}

// OutName is where fname ends up: OUTDIR/STEM.EXT.
func OutName(fname, outDir string, f seq.OutputFmt) string {
	return filepath.Join(outDir, common.Stem(fname)+f.Ext())
}

// One converts a single file.
func One(fname, out string, opts Options) error {
	if err := files.CheckFile(out, opts.Force); err != nil {
		return err
	}
	m, h, err := seq.Readfile(fname, opts.InFmt, opts.DataType)
	if err != nil {
		return err
	}
	if opts.Sort {
		m = m.Sorted()
	}
	return seq.WriteFile(out, m, h, nil, opts.OutFmt, partition.Charset)
}

// Run converts every file and returns the output names, in the same
// order as the input. Two inputs that would give the same output name
// are an error.
func Run(opts Options) ([]string, error) {
	obs := progress.OrNop(opts.Observer)
	outs := make([]string, len(opts.Fnames))
	src := make(map[string]string, len(opts.Fnames))
	for i, fname := range opts.Fnames {
		outs[i] = OutName(fname, opts.OutDir, opts.OutFmt)
		if prev, ok := src[outs[i]]; ok {
			return nil, errors.Wrapf(files.ErrExists, "%s and %s both go to %s", prev, fname, outs[i])
		}
		src[outs[i]] = fname
	}
	if err := files.PrepareDir(opts.OutDir, opts.Force); err != nil {
		return nil, err
	}

	var tally pool.Counter
	err := pool.Each(outs, opts.NWorker, func(out string) error {
		if err := One(src[out], out, opts); err != nil {
			return err
		}
		tally.Add("written", 1)
		obs.OnProgress(src[out])
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n := tally.Get("written"); n != len(outs) {
		return nil, errors.Errorf("wrote %d of %d files", n, len(outs))
	}
	return outs, nil
}
