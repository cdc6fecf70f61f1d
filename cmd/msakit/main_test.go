package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// run runs msakit with args and returns what it logged.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRoot(log.New(&buf, "", 0))
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.Execute()
	return buf.String(), err
}

func isUsage(err error) bool {
	_, ok := errors.Cause(err).(usageErr)
	return ok
}

func loci(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range map[string]string{
		"locus1.fas":  ">a\nACGT\n>b\nACGA\n",
		"locus2.fas":  ">b\nGG\n>c\nGT\n",
		"locus10.fas": ">a\nTTT\n>c\nTTA\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestConcatSplit(t *testing.T) {
	dir := loci(t)
	super := filepath.Join(dir, "super")
	msg, err := run(t, "concat", "-d", dir, "-o", super, "-t", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "3 loci written to "+super+".nex") {
		t.Errorf("logged %q", msg)
	}
	pieces := filepath.Join(dir, "pieces")
	msg, err = run(t, "split", "-i", super+".nex", "-o", pieces, "-F", "fasta")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "3 partitions") {
		t.Errorf("logged %q", msg)
	}
	b, err := os.ReadFile(filepath.Join(pieces, "locus10.fas"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != ">a\nTTT\n>c\nTTA\n" {
		t.Errorf("locus10 came back as %q", b)
	}
}

func TestConvert(t *testing.T) {
	dir := loci(t)
	out := filepath.Join(dir, "phy")
	if _, err := run(t, "convert", "-d", dir, "-F", "phylip", "-o", out, "-v"); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(out, "locus2.phy"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "2 2\nb GG\nc GT\n" {
		t.Errorf("got %q", b)
	}
}

func TestFilter(t *testing.T) {
	dir := loci(t)
	out := filepath.Join(dir, "kept")
	msg, err := run(t, "filter", "-d", dir, "--min-len", "3", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "2 of 3 alignments pass min-len 3") {
		t.Errorf("logged %q", msg)
	}
	if _, err := os.Stat(filepath.Join(out, "locus2.fas")); err == nil {
		t.Error("locus2 is too short to keep")
	}
}

func TestSeqlen(t *testing.T) {
	dir := loci(t)
	out := filepath.Join(dir, "lengths.csv")
	msg, err := run(t, "seqlen", "-i", filepath.Join(dir, "locus2.fas"), "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "2 sequences written") {
		t.Errorf("logged %q", msg)
	}
	b, _ := os.ReadFile(out)
	if string(b) != "locus,taxon,length,ungapped\nlocus2,b,2,2\nlocus2,c,2,2\n" {
		t.Errorf("got %q", b)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := loci(t)
	for _, args := range [][]string{
		{"concat"},
		{"concat", "-d", dir, "-i", "x.fa"},
		{"concat", "-d", dir, "-F", "genbank"},
		{"concat", "-d", dir, "-p", "mrbayes"},
		{"concat", "-d", dir, "--no-such-flag"},
		{"convert", "-d", dir, "-t", "0"},
		{"filter", "-d", dir},
		{"filter", "-d", dir, "--min-taxa", "2", "--max-len", "3"},
		{"split", "-d", dir},
	} {
		if _, err := run(t, args...); !isUsage(err) {
			t.Errorf("%v: want a usage error, got %v", args, err)
		}
	}
	if _, err := run(t, "convert", "-i", filepath.Join(dir, "gone.fas"), "-o", filepath.Join(dir, "o")); err == nil || isUsage(err) {
		t.Errorf("missing input: want a plain error, got %v", err)
	}
}
