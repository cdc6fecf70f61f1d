package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/files"
	"github.com/andrew-torda/msakit/pkg/seq"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(">a\nA\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "locus10.fas", "locus2.fa", "locus1.fasta", "notes.txt", "other.nex", "x.phy.gz")
	if err := os.Mkdir(filepath.Join(dir, "dir.fas"), 0755); err != nil {
		t.Fatal(err)
	}
	rel := func(names []string) []string {
		var s []string
		for _, n := range names {
			s = append(s, filepath.Base(n))
		}
		return s
	}
	for _, tc := range []struct {
		f    seq.InputFmt
		want []string
	}{
		{seq.Fasta, []string{"locus1.fasta", "locus2.fa", "locus10.fas"}},
		{seq.Nexus, []string{"other.nex"}},
		{seq.Phylip, []string{"x.phy.gz"}},
		{seq.Auto, []string{"locus1.fasta", "locus2.fa", "locus10.fas", "other.nex", "x.phy.gz"}},
	} {
		got, err := files.Find(dir, tc.f)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.want, rel(got)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.f, diff)
		}
	}
}

func TestFindErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := files.Find(dir, seq.Auto); err == nil {
		t.Error("empty directory should fail")
	}
	if _, err := files.Find(filepath.Join(dir, "missing"), seq.Auto); err == nil {
		t.Error("missing directory should fail")
	}
	touch(t, dir, "a.fa")
	if _, err := files.Find(filepath.Join(dir, "a.fa"), seq.Auto); err == nil {
		t.Error("a file is not a directory")
	}
}

func TestSortNatural(t *testing.T) {
	s := []string{"g10", "g9", "g1", "a100", "a20"}
	files.SortNatural(s)
	if diff := cmp.Diff([]string{"a20", "a100", "g1", "g9", "g10"}, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadIDList(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "ids.txt")
	if err := os.WriteFile(fname, []byte("# wanted\ntaxon_1\n\n  taxon 2  \n#taxon_3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := files.ReadIDList(fname)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"taxon_1", "taxon 2"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := files.ReadIDList(filepath.Join(dir, "nope")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "out.nex")
	if err := files.CheckFile(fname, false); err != nil {
		t.Errorf("new file: %v", err)
	}
	touch(t, dir, "out.nex")
	if err := files.CheckFile(fname, false); errors.Cause(err) != files.ErrExists {
		t.Errorf("want ErrExists, got %v", err)
	}
	if err := files.CheckFile(fname, true); err != nil {
		t.Errorf("forced: %v", err)
	}
}

func TestPrepareDir(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b")
	if err := files.PrepareDir(dir, false); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "keep.fa")
	if err := files.PrepareDir(dir, false); errors.Cause(err) != files.ErrExists {
		t.Errorf("want ErrExists, got %v", err)
	}
	if err := files.PrepareDir(dir, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.fa")); err != nil {
		t.Error("force removed a file")
	}
	for _, d := range []string{"", ".", "./"} {
		if err := files.PrepareDir(d, false); err != nil {
			t.Errorf("%q: %v", d, err)
		}
	}
}
