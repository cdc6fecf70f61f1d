package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/msakit/pkg/concat"
	"github.com/andrew-torda/msakit/pkg/convert"
	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/filter"
	"github.com/andrew-torda/msakit/pkg/seqlen"
	"github.com/andrew-torda/msakit/pkg/split"
)

func concatCmd(logger *log.Logger) *cobra.Command {
	var (
		fl   ioFlags
		out  string
		pfmt string
		sort bool
	)
	cmd := &cobra.Command{
		Use:   "concat",
		Short: "join per-locus alignments into one, with partitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fl.parse(true)
			if err != nil {
				return err
			}
			pf, err := partFmt(pfmt)
			if err != nil {
				return err
			}
			obs, done := fl.observer(len(st.fnames)+1, logger)
			name, err := concat.Run(concat.Options{
				Fnames:   st.fnames,
				InFmt:    st.inFmt,
				DataType: st.dt,
				Out:      out,
				OutFmt:   st.outFmt,
				PartFmt:  pf,
				Sort:     sort,
				Force:    fl.force,
				NWorker:  fl.threads,
				Observer: obs,
			})
			done()
			if err != nil {
				return err
			}
			logger.Printf("%d loci written to %s", len(st.fnames), name)
			return nil
		},
	}
	addIOFlags(cmd, &fl)
	flags := cmd.Flags()
	flags.StringVarP(&out, "output", "o", "concatenated", "output file. The extension is added if missing")
	flags.StringVarP(&pfmt, "part-format", "p", "charset", "charset, nexus or raxml, each with an optional -codon")
	flags.BoolVar(&sort, "sort", false, "sort taxa by ID")
	return cmd
}

func convertCmd(logger *log.Logger) *cobra.Command {
	var (
		fl   ioFlags
		out  string
		sort bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "rewrite alignments in another format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fl.parse(true)
			if err != nil {
				return err
			}
			obs, done := fl.observer(len(st.fnames), logger)
			outs, err := convert.Run(convert.Options{
				Fnames:   st.fnames,
				InFmt:    st.inFmt,
				DataType: st.dt,
				OutDir:   out,
				OutFmt:   st.outFmt,
				Sort:     sort,
				Force:    fl.force,
				NWorker:  fl.threads,
				Observer: obs,
			})
			done()
			if err != nil {
				return err
			}
			logger.Printf("%d files written to %s", len(outs), out)
			return nil
		},
	}
	addIOFlags(cmd, &fl)
	flags := cmd.Flags()
	flags.StringVarP(&out, "output", "o", "converted", "output directory")
	flags.BoolVar(&sort, "sort", false, "sort taxa by ID")
	return cmd
}

// filterFlags are the criteria. Only one may be given.
type filterFlags struct {
	minTaxa, minLen, maxLen, minPinf, maxPinf int
	pctTaxa, pctPinf, missing                 float64
	taxaFile                                  string
}

// criterion picks the one criterion that was set.
func (ff *filterFlags) criterion(cmd *cobra.Command) (filter.Criterion, error) {
	var got []filter.Criterion
	set := cmd.Flags().Changed
	if set("min-taxa") {
		got = append(got, filter.ByMinTaxa(ff.minTaxa))
	}
	if set("percent-taxa") {
		got = append(got, filter.ByPercentTaxa(ff.pctTaxa))
	}
	if set("min-len") {
		got = append(got, filter.ByMinLen(ff.minLen))
	}
	if set("max-len") {
		got = append(got, filter.ByMaxLen(ff.maxLen))
	}
	if set("min-pinf") {
		got = append(got, filter.ByMinPinf(ff.minPinf))
	}
	if set("max-pinf") {
		got = append(got, filter.ByMaxPinf(ff.maxPinf))
	}
	if set("percent-pinf") {
		got = append(got, filter.ByPercentPinf(ff.pctPinf))
	}
	if set("missing") {
		got = append(got, filter.ByMissing(ff.missing))
	}
	if set("taxa") {
		ids, err := files.ReadIDList(ff.taxaFile)
		if err != nil {
			return filter.Criterion{}, err
		}
		got = append(got, filter.ByTaxa(ids))
	}
	if len(got) != 1 {
		return filter.Criterion{}, usagef("give exactly one criterion, not %d", len(got))
	}
	return got[0], nil
}

func filterCmd(logger *log.Logger) *cobra.Command {
	var (
		fl      ioFlags
		ff      filterFlags
		out     string
		doCat   bool
		catOut  string
		pfmt    string
		summary string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "keep alignments that pass one criterion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fl.parse(true)
			if err != nil {
				return err
			}
			c, err := ff.criterion(cmd)
			if err != nil {
				return err
			}
			pf, err := partFmt(pfmt)
			if err != nil {
				return err
			}
			obs, done := fl.observer(len(st.fnames), logger)
			r, sm, err := filter.Run(filter.Options{
				Fnames:    st.fnames,
				InFmt:     st.inFmt,
				DataType:  st.dt,
				Criterion: c,
				OutDir:    out,
				Concat:    doCat,
				ConcatOut: catOut,
				OutFmt:    st.outFmt,
				PartFmt:   pf,
				Summary:   summary,
				Force:     fl.force,
				NWorker:   fl.threads,
				Observer:  obs,
			})
			done()
			if err != nil {
				return err
			}
			logger.Printf("%d of %d alignments pass %s (threshold %d)", len(r.Matched), len(st.fnames), c, r.Threshold)
			logger.Printf("%s: mean %.3f, max %.3f", sm.Metric, sm.Mean, sm.Max)
			return nil
		},
	}
	addIOFlags(cmd, &fl)
	flags := cmd.Flags()
	flags.IntVar(&ff.minTaxa, "min-taxa", 0, "keep alignments with at least this many taxa")
	flags.Float64Var(&ff.pctTaxa, "percent-taxa", 0, "keep alignments with at least this fraction of all taxa")
	flags.IntVar(&ff.minLen, "min-len", 0, "minimum alignment length")
	flags.IntVar(&ff.maxLen, "max-len", 0, "maximum alignment length")
	flags.IntVar(&ff.minPinf, "min-pinf", 0, "minimum parsimony informative sites")
	flags.IntVar(&ff.maxPinf, "max-pinf", 0, "maximum parsimony informative sites")
	flags.Float64Var(&ff.pctPinf, "percent-pinf", 0, "minimum informative sites, as a fraction of the most in any file")
	flags.Float64Var(&ff.missing, "missing", 0, "largest fraction of gaps and missing data")
	flags.StringVar(&ff.taxaFile, "taxa", "", "file of taxon IDs that must all be present")
	flags.StringVarP(&out, "output", "o", "filtered", "output directory for the alignments kept")
	flags.BoolVar(&doCat, "concat", false, "concatenate the alignments kept")
	flags.StringVar(&catOut, "concat-output", "concatenated", "file for --concat")
	flags.StringVarP(&pfmt, "part-format", "p", "charset", "partition format for --concat")
	flags.StringVar(&summary, "summary", "", "write a per locus CSV summary here")
	return cmd
}

func splitCmd(logger *log.Logger) *cobra.Command {
	var (
		fl       ioFlags
		out      string
		partFile string
		pfmt     string
		prefix   string
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "cut an alignment into one file per partition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fl.parse(true)
			if err != nil {
				return err
			}
			if len(st.fnames) != 1 {
				return usagef("split wants one input alignment, got %d", len(st.fnames))
			}
			pf, err := partFmt(pfmt)
			if err != nil {
				return err
			}
			if partFile == "" {
				partFile = st.fnames[0] // charsets inside the NEXUS file
			}
			obs, done := fl.observer(0, logger)
			names, err := split.Run(split.Options{
				Fname:    st.fnames[0],
				InFmt:    st.inFmt,
				DataType: st.dt,
				PartFile: partFile,
				PartFmt:  pf,
				OutDir:   out,
				OutFmt:   st.outFmt,
				Prefix:   prefix,
				Force:    fl.force,
				NWorker:  fl.threads,
				Observer: obs,
			})
			done()
			if err != nil {
				return err
			}
			logger.Printf("%d partitions written to %s", len(names), out)
			return nil
		},
	}
	addIOFlags(cmd, &fl)
	flags := cmd.Flags()
	flags.StringVarP(&out, "output", "o", "split", "output directory")
	flags.StringVar(&partFile, "partitions", "", "partition file. Default is charsets in the input")
	flags.StringVarP(&pfmt, "part-format", "p", "charset", "charset, nexus or raxml")
	flags.StringVar(&prefix, "prefix", "", "put this and _ in front of each output name")
	return cmd
}

func seqlenCmd(logger *log.Logger) *cobra.Command {
	var (
		fl  ioFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "seqlen",
		Short: "write the ungapped length of every sequence as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fl.parse(true)
			if err != nil {
				return err
			}
			obs, done := fl.observer(len(st.fnames), logger)
			n, err := seqlen.Run(seqlen.Options{
				Fnames:   st.fnames,
				InFmt:    st.inFmt,
				DataType: st.dt,
				Out:      out,
				NWorker:  fl.threads,
				Observer: obs,
			})
			done()
			if err != nil {
				return err
			}
			if out != "-" {
				logger.Printf("%d sequences written to %s", n, out)
			}
			return nil
		},
	}
	addIOFlags(cmd, &fl)
	cmd.Flags().StringVarP(&out, "output", "o", "-", "CSV file, - for standard output")
	return cmd
}
