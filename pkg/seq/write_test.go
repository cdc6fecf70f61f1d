package seq_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/msakit/pkg/partition"
	"github.com/andrew-torda/msakit/pkg/seq"
)

func small() (*seq.Matrix, *seq.Header) {
	m := seq.NewMatrix()
	m.Insert("t1", []byte("ACGT"))
	m.Insert("t2", []byte("AC-T"))
	h := seq.NewHeader()
	h.Ntax, h.Nchar, h.Aligned = 2, 4, true
	return m, h
}

func ExampleWrite_fasta() {
	m, h := small()
	seq.Write(os.Stdout, m, h, seq.FastaOut)
	// Output:
	// >t1
	// ACGT
	// >t2
	// AC-T
}

func ExampleWrite_nexus() {
	m, h := small()
	seq.Write(os.Stdout, m, h, seq.NexusOut)
	// Output:
	// #NEXUS
	// begin data;
	// dimensions ntax=2 nchar=4;
	// format datatype=dna missing=? gap=-;
	// matrix
	// t1 ACGT
	// t2 AC-T
	// ;
	// end;
}

func ExampleWrite_phylip() {
	m, h := small()
	seq.Write(os.Stdout, m, h, seq.PhylipOut)
	// Output:
	// 2 4
	// t1 ACGT
	// t2 AC-T
}

// long makes an alignment long enough to be wrapped.
func long(ntax, nchar int) (*seq.Matrix, *seq.Header) {
	const bases = "ACGT-"
	m := seq.NewMatrix()
	for i := 0; i < ntax; i++ {
		b := make([]byte, nchar)
		for j := range b {
			b[j] = bases[(i*7+j*3+j/11)%len(bases)]
		}
		m.Insert(fmt.Sprintf("taxon_%d", i+1), b)
	}
	h := seq.NewHeader()
	h.Ntax, h.Nchar, h.Aligned = ntax, nchar, true
	return m, h
}

func TestInterleavedLayout(t *testing.T) {
	m, h := long(2, 170)
	var buf bytes.Buffer
	if err := seq.Write(&buf, m, h, seq.PhylipInt); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// header, 3 rounds of 2 lines, 2 blank lines between rounds
	if len(lines) != 1+3*2+2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "taxon_1 ") || strings.HasPrefix(lines[4], "taxon") {
		t.Errorf("only the first round should carry IDs:\n%s", buf.String())
	}
	if len(lines[4]) != 80 || len(lines[7]) != 10 {
		t.Errorf("round widths %d and %d, want 80 and 10", len(lines[4]), len(lines[7]))
	}

	buf.Reset()
	seq.Write(&buf, m, h, seq.NexusInt)
	if n := strings.Count(buf.String(), "taxon_2 "); n != 3 {
		t.Errorf("NEXUS rounds should each carry IDs, found %d", n)
	}
	if !strings.Contains(buf.String(), "gap=- interleave;") {
		t.Errorf("no interleave in format line:\n%s", buf.String())
	}
}

func TestWideWrap(t *testing.T) {
	m, h := long(1, 2500)
	var buf bytes.Buffer
	seq.Write(&buf, m, h, seq.FastaInt)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+5 || len(lines[1]) != 500 {
		t.Errorf("want 5 lines of 500, got %d lines, first %d", len(lines)-1, len(lines[1]))
	}
}

var allOut = []seq.OutputFmt{seq.FastaOut, seq.FastaInt, seq.NexusOut, seq.NexusInt, seq.PhylipOut, seq.PhylipInt}

// Writing and reading back must give the same matrix.
func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, size := range [][2]int{{1, 5}, {3, 40}, {4, 170}, {2, 2100}} {
		m, h := long(size[0], size[1])
		for _, f := range allOut {
			fname := filepath.Join(dir, fmt.Sprintf("rt_%d_%d_%s%s", size[0], size[1], f, f.Ext()))
			if err := seq.WriteFile(fname, m, h, nil, f, partition.Charset); err != nil {
				t.Fatal(err)
			}
			m2, h2, err := seq.Readfile(fname, seq.Auto, seq.DNA)
			if err != nil {
				t.Errorf("%s: %v", fname, err)
				continue
			}
			if !m.Equal(m2) {
				t.Errorf("%s: matrix changed\n%s", fname, cmp.Diff(m.String(), m2.String()))
			}
			if h2.Ntax != h.Ntax || h2.Nchar != h.Nchar {
				t.Errorf("%s: header %d %d, want %d %d", fname, h2.Ntax, h2.Nchar, h.Ntax, h.Nchar)
			}
		}
	}
}

// IDs from FASTA may hold anything but a newline. NEXUS output must
// quote them so they come back unchanged.
func TestNexusAwkwardIDs(t *testing.T) {
	m := seq.NewMatrix()
	for _, id := range []string{"O'Brien", "two words", "semi;colon", "br[ack]et", "plain"} {
		m.Insert(id, []byte("ACGT"))
	}
	h := seq.NewHeader()
	h.Ntax, h.Nchar, h.Aligned = m.Len(), 4, true
	for _, f := range []seq.OutputFmt{seq.NexusOut, seq.NexusInt} {
		var buf bytes.Buffer
		if err := seq.Write(&buf, m, h, f); err != nil {
			t.Fatal(err)
		}
		m2, _, err := seq.ReadNexus(&buf, "awkward.nex", seq.DNA)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if diff := cmp.Diff(m.IDs(), m2.IDs()); diff != "" {
			t.Errorf("%s IDs (-want +got):\n%s", f, diff)
		}
	}
}

// fasta -> nexus -> phylip -> fasta keeps every taxon and sequence.
// PHYLIP IDs cannot hold blanks, so these have none.
func TestFormatChain(t *testing.T) {
	const in = ">s1\nACGT-ACG\n>s2\nAC-TA\nCGG\n>s3\n??GTA???\n>s4\nacgtnnnn\n"
	dir := t.TempDir()
	src := tmpFile(t, in, ".fas")
	orig, _, err := seq.Readfile(src, seq.Auto, seq.DNA)
	if err != nil {
		t.Fatal(err)
	}
	cur := src
	for i, f := range []seq.OutputFmt{seq.NexusOut, seq.PhylipInt, seq.FastaInt} {
		m, h, err := seq.Readfile(cur, seq.Auto, seq.DNA)
		if err != nil {
			t.Fatal(err)
		}
		cur = filepath.Join(dir, fmt.Sprintf("chain%d%s", i, f.Ext()))
		if err := seq.WriteFile(cur, m, h, nil, f, partition.Charset); err != nil {
			t.Fatal(err)
		}
	}
	last, _, err := seq.Readfile(cur, seq.Auto, seq.DNA)
	if err != nil {
		t.Fatal(err)
	}
	if !orig.Equal(last) {
		t.Errorf("chain changed the alignment:\n%s", cmp.Diff(orig.String(), last.String()))
	}
}

func TestWriteGzip(t *testing.T) {
	m, h := small()
	fname := filepath.Join(t.TempDir(), "sub", "small.nex.gz")
	if err := seq.WriteFile(fname, m, h, nil, seq.NexusOut, partition.Charset); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Error("output is not gzipped")
	}
	m2, _, err := seq.Readfile(fname, seq.Auto, seq.DNA)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(m2) {
		t.Errorf("got back\n%s", m2)
	}
}

func TestWriteFilePartitions(t *testing.T) {
	m, h := small()
	parts := []partition.Partition{{Gene: "g-1", Start: 1, End: 2}, {Gene: "g2", Start: 3, End: 4}}
	dir := t.TempDir()

	inline := filepath.Join(dir, "inline.nex")
	if err := seq.WriteFile(inline, m, h, parts, seq.NexusOut, partition.Charset); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(inline)
	if !strings.HasSuffix(string(b), ";\nend;\n\nbegin sets;\ncharset 'g-1' = 1-2;\ncharset g2 = 3-4;\nend;\n") {
		t.Errorf("charsets not inline:\n%s", b)
	}
	got, err := partition.Parse(inline, partition.Charset, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(parts, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, _, err := seq.Readfile(inline, seq.Auto, seq.DNA); err != nil {
		t.Errorf("sets block upset the reader: %v", err)
	}

	fas := filepath.Join(dir, "comp.fas")
	if err := seq.WriteFile(fas, m, h, parts, seq.FastaOut, partition.Raxml); err != nil {
		t.Fatal(err)
	}
	b, err = os.ReadFile(filepath.Join(dir, "comp_partition.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "DNA, g-1 = 1-2\nDNA, g2 = 3-4\n"; string(b) != want {
		t.Errorf("got %q want %q", b, want)
	}
}
