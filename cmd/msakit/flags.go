package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/partition"
	"github.com/andrew-torda/msakit/pkg/pool"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
)

// ioFlags are the flags every command has.
type ioFlags struct {
	dir      string
	inputs   []string
	inFmt    string
	datatype string
	outFmt   string
	threads  int
	force    bool
	bar      bool
	verbose  bool
}

func addIOFlags(cmd *cobra.Command, fl *ioFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&fl.dir, "dir", "d", "", "directory of input alignments")
	flags.StringSliceVarP(&fl.inputs, "input", "i", nil, "input alignment (may be repeated)")
	flags.StringVarP(&fl.inFmt, "input-format", "f", "auto", "auto, fasta, nexus or phylip")
	flags.StringVar(&fl.datatype, "datatype", "dna", "dna, aa or ignore")
	flags.StringVarP(&fl.outFmt, "output-format", "F", "nexus", "fasta, nexus, phylip, or with -int for interleaved")
	flags.IntVarP(&fl.threads, "threads", "t", pool.NWorker(), "files handled at once")
	flags.BoolVar(&fl.force, "force", false, "overwrite existing output")
	flags.BoolVar(&fl.bar, "progress", false, "draw a progress bar")
	flags.BoolVarP(&fl.verbose, "verbose", "v", false, "say what is happening")
}

// settings are the parsed ioFlags.
type settings struct {
	fnames []string
	inFmt  seq.InputFmt
	dt     seq.DataType
	outFmt seq.OutputFmt
}

// parse checks the shared flags and finds the input files. If needInput
// is false, no input is fine.
func (fl *ioFlags) parse(needInput bool) (settings, error) {
	var st settings
	var err error
	if st.inFmt, err = seq.ParseInputFmt(fl.inFmt); err != nil {
		return st, usageErr{err}
	}
	if st.dt, err = seq.ParseDataType(fl.datatype); err != nil {
		return st, usageErr{err}
	}
	if st.outFmt, err = seq.ParseOutputFmt(fl.outFmt); err != nil {
		return st, usageErr{err}
	}
	if fl.threads < 1 {
		return st, usagef("--threads must be at least 1, not %d", fl.threads)
	}
	switch {
	case fl.dir != "" && len(fl.inputs) > 0:
		return st, usagef("give --dir or --input, not both")
	case fl.dir != "":
		st.fnames, err = files.Find(fl.dir, st.inFmt)
	case len(fl.inputs) > 0:
		st.fnames = fl.inputs
	case needInput:
		return st, usagef("no input. Use --dir or --input")
	}
	return st, err
}

// observer gives a progress bar for n steps, a logger or nothing. The
// function returned must be called when the job is done.
func (fl *ioFlags) observer(n int, logger *log.Logger) (progress.Observer, func()) {
	switch {
	case fl.bar:
		bar := progress.NewBar(n, os.Stderr)
		return bar, bar.Finish
	case fl.verbose:
		return progress.Log{L: logger}, func() {}
	}
	return progress.Nop{}, func() {}
}

// partFmt is the --part-format flag.
func partFmt(s string) (partition.Fmt, error) {
	f, err := partition.ParseFmt(s)
	if err != nil {
		return f, usageErr{err}
	}
	return f, nil
}
