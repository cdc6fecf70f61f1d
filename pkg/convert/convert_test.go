package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/convert"
	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/progress"
	"github.com/andrew-torda/msakit/pkg/seq"
)

func TestOutName(t *testing.T) {
	for _, tc := range []struct {
		in   string
		f    seq.OutputFmt
		want string
	}{
		{"/data/locus1.fas", seq.NexusOut, "out/locus1.nex"},
		{"locus2.nex.gz", seq.PhylipInt, "out/locus2.phy"},
		{"a.b.phy", seq.FastaOut, "out/a.b.fas"},
	} {
		if got := convert.OutName(tc.in, "out", tc.f); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := map[string]string{
		"x.fa":  ">zeta\nACGT\n>alpha\nAC-T\n",
		"y.phy": "2 3\nq AAA\np CCC\n",
	}
	var fnames []string
	for _, n := range []string{"x.fa", "y.phy"} {
		fname := filepath.Join(dir, n)
		if err := os.WriteFile(fname, []byte(in[n]), 0644); err != nil {
			t.Fatal(err)
		}
		fnames = append(fnames, fname)
	}
	var obs progress.Count
	opts := convert.Options{
		Fnames:   fnames,
		DataType: seq.DNA,
		OutDir:   filepath.Join(dir, "nex"),
		OutFmt:   seq.NexusOut,
		Sort:     true,
		NWorker:  2,
		Observer: &obs,
	}
	outs, err := convert.Run(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 2 || filepath.Base(outs[1]) != "y.nex" {
		t.Errorf("outputs %v", outs)
	}
	if obs.N() != 2 {
		t.Errorf("%d progress messages", obs.N())
	}
	m, h, err := seq.Readfile(outs[0], seq.Auto, seq.DNA)
	if err != nil {
		t.Fatal(err)
	}
	if want := "alpha AC-T\nzeta ACGT\n"; m.String() != want {
		t.Errorf("got %q want %q", m.String(), want)
	}
	if h.Ntax != 2 || h.Nchar != 4 {
		t.Errorf("header %+v", h)
	}

	if _, err := convert.Run(opts); errors.Cause(err) != files.ErrExists {
		t.Errorf("second run: want ErrExists, got %v", err)
	}
	opts.Force = true
	if _, err := convert.Run(opts); err != nil {
		t.Errorf("forced: %v", err)
	}
}

// Two inputs with the same stem would overwrite each other.
func TestRunClash(t *testing.T) {
	dir := t.TempDir()
	var fnames []string
	for _, n := range []string{"g.fa", "g.phy"} {
		fname := filepath.Join(dir, n)
		os.WriteFile(fname, []byte(""), 0644)
		fnames = append(fnames, fname)
	}
	out := filepath.Join(dir, "out")
	_, err := convert.Run(convert.Options{Fnames: fnames, OutDir: out, OutFmt: seq.NexusOut})
	if errors.Cause(err) != files.ErrExists {
		t.Errorf("want ErrExists, got %v", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("output directory made for a run that could not work")
	}
}

func TestRunBadInput(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "bad.nex")
	os.WriteFile(fname, []byte("not nexus at all\n"), 0644)
	_, err := convert.Run(convert.Options{
		Fnames: []string{fname}, OutDir: filepath.Join(dir, "o"), OutFmt: seq.FastaOut,
	})
	if errors.Cause(err) != seq.ErrFormat {
		t.Errorf("want ErrFormat, got %v", err)
	}
}
