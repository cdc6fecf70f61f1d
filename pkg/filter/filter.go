// 14 Oct 2026

// Package filter picks the alignments that pass one criterion, such as
// a minimum number of taxa or parsimony informative sites.
//
// Every file is read on the worker pool and boiled down to a Stat.
// The decision is then made on the Stats alone. Files that fail are
// dropped quietly, but if nothing is left, that is an error.
package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/pool"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
)

// ErrNoneLeft means no alignment passed.
var ErrNoneLeft = errors.New("no alignments left after filtering")

// Kind is the property a Criterion looks at.
type Kind byte

const (
	MinTaxa     Kind = iota // ntax >= N
	PercentTaxa             // ntax >= floor(Frac * all taxa)
	MinLen                  // nchar >= N
	MaxLen                  // nchar <= N
	MinPinf                 // informative sites >= N
	MaxPinf                 // informative sites <= N
	PercentPinf             // informative sites >= floor(Frac * most in any file)
	MissingData             // fraction of gaps and missing <= Frac
	TaxaSet                 // every ID in Taxa is present
)

var kindNames = [...]string{
	MinTaxa:     "min-taxa",
	PercentTaxa: "percent-taxa",
	MinLen:      "min-len",
	MaxLen:      "max-len",
	MinPinf:     "min-pinf",
	MaxPinf:     "max-pinf",
	PercentPinf: "percent-pinf",
	MissingData: "missing",
	TaxaSet:     "taxa",
}

func (k Kind) String() string { return kindNames[k] }

// Criterion is one test. Only the field that goes with Kind is used.
type Criterion struct {
	Kind Kind
	N    int
	Frac float64
	Taxa []string
}

func (c Criterion) String() string {
	switch c.Kind {
	case PercentTaxa, PercentPinf, MissingData:
		return fmt.Sprintf("%s %g", c.Kind, c.Frac)
	case TaxaSet:
		return fmt.Sprintf("%s %s", c.Kind, strings.Join(c.Taxa, ","))
	}
	return fmt.Sprintf("%s %d", c.Kind, c.N)
}

func ByMinTaxa(n int) Criterion { return Criterion{Kind: MinTaxa, N: n} }
func ByPercentTaxa(f float64) Criterion { return Criterion{Kind: PercentTaxa, Frac: f} }
func ByMinLen(n int) Criterion { return Criterion{Kind: MinLen, N: n} }
func ByMaxLen(n int) Criterion { return Criterion{Kind: MaxLen, N: n} }
func ByMinPinf(n int) Criterion { return Criterion{Kind: MinPinf, N: n} }
func ByMaxPinf(n int) Criterion { return Criterion{Kind: MaxPinf, N: n} }
func ByPercentPinf(f float64) Criterion { return Criterion{Kind: PercentPinf, Frac: f} }
func ByMissing(f float64) Criterion { return Criterion{Kind: MissingData, Frac: f} }
func ByTaxa(ids []string) Criterion { return Criterion{Kind: TaxaSet, Taxa: ids} }

// check catches criteria that cannot mean anything.
func (c Criterion) check() error {
	switch c.Kind {
	case PercentTaxa, PercentPinf, MissingData:
		if c.Frac < 0 || c.Frac > 1 || math.IsNaN(c.Frac) {
			return errors.Errorf("%s: %g is not a fraction between 0 and 1", c.Kind, c.Frac)
		}
	case TaxaSet:
		if len(c.Taxa) == 0 {
			return errors.New("no taxa given to filter on")
		}
	default:
		if c.N < 0 {
			return errors.Errorf("%s: negative value %d", c.Kind, c.N)
		}
	}
	return nil
}

// Stat is what we need to know about one alignment.
type Stat struct {
	Path     string
	Ntax     int
	Nchar    int
	Variable int
	Pinf     int
	Missing  float64
	HasAll   bool // holds every taxon asked for
}

// metric is the number a criterion looks at.
func (s Stat) metric(k Kind) float64 {
	switch k {
	case MinLen, MaxLen:
		return float64(s.Nchar)
	case MinPinf, MaxPinf, PercentPinf:
		return float64(s.Pinf)
	case MissingData:
		return s.Missing
	}
	return float64(s.Ntax)
}

func stat1(fname string, f seq.InputFmt, dt seq.DataType, want []string) (Stat, error) {
	m, h, err := seq.Readfile(fname, f, dt)
	if err != nil {
		return Stat{}, err
	}
	sc := seq.CountSites(m, dt)
	s := Stat{
		Path:     fname,
		Ntax:     m.Len(),
		Nchar:    m.Longest(),
		Variable: sc.Variable(),
		Pinf:     sc.Pinf(),
		Missing:  seq.MissingData(m, h),
		HasAll:   true,
	}
	for _, id := range want {
		if !m.Has(id) {
			s.HasAll = false
			break
		}
	}
	return s, nil
}

// Collect reads every file on nWorker goroutines. The Stats come back
// sorted by path. want is the taxon set for HasAll and may be nil.
func Collect(fnames []string, f seq.InputFmt, dt seq.DataType, want []string, nWorker int, obs progress.Observer) ([]Stat, error) {
	obs = progress.OrNop(obs)
	stats, err := pool.Map(fnames, nWorker, func(fname string) (Stat, error) {
		s, err := stat1(fname, f, dt, want)
		if err == nil {
			obs.OnProgress(fname)
		}
		return s, err
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Path < stats[j].Path })
	return stats, nil
}

// MinTaxaFromPercent is floor(total * frac).
func MinTaxaFromPercent(total int, frac float64) int {
	return int(math.Floor(float64(total) * frac))
}

// threshold turns a percentage into a count, given every Stat. For the
// other kinds, it is just N.
func threshold(c Criterion, stats []Stat, totalTaxa int) int {
	switch c.Kind {
	case PercentTaxa:
		return MinTaxaFromPercent(totalTaxa, c.Frac)
	case PercentPinf:
		most := 0
		for _, s := range stats {
			most = max(most, s.Pinf)
		}
		return int(math.Floor(float64(most) * c.Frac))
	}
	return c.N
}

// pass says whether s survives c, with thresh from threshold().
func pass(c Criterion, s Stat, thresh int) bool {
	switch c.Kind {
	case MinTaxa, PercentTaxa:
		return s.Ntax >= thresh
	case MinLen:
		return s.Nchar >= thresh
	case MaxLen:
		return s.Nchar <= thresh
	case MinPinf, PercentPinf:
		return s.Pinf >= thresh
	case MaxPinf:
		return s.Pinf <= thresh
	case MissingData:
		return s.Missing <= c.Frac
	case TaxaSet:
		return s.HasAll
	}
	return false
}

// Result is the outcome of Match.
type Result struct {
	Matched   []string // in natural order
	Stats     []Stat   // every file, sorted by path
	Threshold int      // count the criterion came down to
}

// Match applies c to every file and returns the ones that pass.
func Match(fnames []string, f seq.InputFmt, dt seq.DataType, c Criterion, nWorker int, obs progress.Observer) (*Result, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if len(fnames) == 0 {
		return nil, errors.New("no alignments to filter")
	}
	totalTaxa := 0
	if c.Kind == PercentTaxa {
		all, err := seq.IDUnion(fnames, f, nWorker)
		if err != nil {
			return nil, err
		}
		totalTaxa = len(all)
	}
	var want []string
	if c.Kind == TaxaSet {
		want = c.Taxa
	}
	stats, err := Collect(fnames, f, dt, want, nWorker, obs)
	if err != nil {
		return nil, err
	}

	r := &Result{Stats: stats, Threshold: threshold(c, stats, totalTaxa)}
	for _, s := range stats {
		if pass(c, s, r.Threshold) {
			r.Matched = append(r.Matched, s.Path)
		}
	}
	if len(r.Matched) == 0 {
		return nil, errors.Wrapf(ErrNoneLeft, "%s", c)
	}
	files.SortNatural(r.Matched)
	return r, nil
}
