// 15 Oct 2026

package filter

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/andrew-torda/msakit/pkg/concat"
	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/partition"
	"github.com/andrew-torda/msakit/pkg/pool"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
)

// Options for a filter run. If Concat is set, the survivors are
// concatenated into ConcatOut, otherwise they are copied into OutDir.
type Options struct {
	Fnames    []string
	InFmt     seq.InputFmt
	DataType  seq.DataType
	Criterion Criterion
	OutDir    string
	Concat    bool
	ConcatOut string
	OutFmt    seq.OutputFmt
	PartFmt   partition.Fmt
	Summary   string // per locus CSV. Empty means none.
	Force     bool
	NWorker   int
	Observer  progress.Observer
}

// Summary is the metric of the criterion over every file.
type Summary struct {
	Metric string
	Mean   float64
	Max    float64
}

// Summarise gives the mean and maximum of the number k looks at.
func Summarise(stats []Stat, k Kind) Summary {
	sm := Summary{Metric: metricName(k)}
	if len(stats) == 0 {
		return sm
	}
	x := make([]float64, len(stats))
	for i, s := range stats {
		x[i] = s.metric(k)
	}
	sm.Mean = stat.Mean(x, nil)
	sm.Max = floats.Max(x)
	return sm
}

func metricName(k Kind) string {
	switch k {
	case MinLen, MaxLen:
		return "nchar"
	case MinPinf, MaxPinf, PercentPinf:
		return "pinf"
	case MissingData:
		return "missing"
	}
	return "ntax"
}

// WriteSummary writes one CSV line per file, in the order of stats.
func WriteSummary(w io.Writer, stats []Stat, matched []string) error {
	kept := make(map[string]bool, len(matched))
	for _, m := range matched {
		kept[m] = true
	}
	cw := csv.NewWriter(w)
	cw.Write([]string{"path", "ntax", "nchar", "variable", "pinf", "missing", "kept"})
	for _, s := range stats {
		cw.Write([]string{
			s.Path,
			strconv.Itoa(s.Ntax),
			strconv.Itoa(s.Nchar),
			strconv.Itoa(s.Variable),
			strconv.Itoa(s.Pinf),
			strconv.FormatFloat(s.Missing, 'f', 4, 64),
			strconv.FormatBool(kept[s.Path]),
		})
	}
	cw.Flush()
	return cw.Error()
}

func writeSummaryFile(fname string, stats []Stat, matched []string, force bool) error {
	if err := files.CheckFile(fname, force); err != nil {
		return err
	}
	fp, err := xopen.Wopen(fname)
	if err != nil {
		return errors.Wrap(err, fname)
	}
	err = WriteSummary(fp, stats, matched)
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, fname)
}

// copyFile copies src into dir, byte for byte.
func copyFile(src, dir string, force bool) error {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := files.CheckFile(dst, force); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, dst)
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, dst)
}

// Run filters, then copies or concatenates what is left and writes the
// summary.
func Run(opts Options) (*Result, Summary, error) {
	r, err := Match(opts.Fnames, opts.InFmt, opts.DataType, opts.Criterion, opts.NWorker, opts.Observer)
	if err != nil {
		return nil, Summary{}, err
	}
	sm := Summarise(r.Stats, opts.Criterion.Kind)

	if opts.Concat {
		_, err = concat.Run(concat.Options{
			Fnames:   r.Matched,
			InFmt:    opts.InFmt,
			DataType: opts.DataType,
			Out:      opts.ConcatOut,
			OutFmt:   opts.OutFmt,
			PartFmt:  opts.PartFmt,
			Force:    opts.Force,
			NWorker:  opts.NWorker,
		})
	} else {
		if err = files.PrepareDir(opts.OutDir, opts.Force); err == nil {
			err = pool.Each(r.Matched, opts.NWorker, func(fname string) error {
				return copyFile(fname, opts.OutDir, opts.Force)
			})
		}
	}
	if err != nil {
		return nil, Summary{}, err
	}

	if opts.Summary != "" {
		if err := writeSummaryFile(opts.Summary, r.Stats, r.Matched, opts.Force); err != nil {
			return nil, Summary{}, err
		}
	}
	return r, sm, nil
}
