// File formats and how to guess them.

package seq

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// InputFmt is the format of a file to be read. Auto is resolved from
// the file extension before a reader sees the file.
type InputFmt byte

const (
	Auto InputFmt = iota
	Fasta
	Nexus
	Phylip
)

func (f InputFmt) String() string {
	switch f {
	case Fasta:
		return "fasta"
	case Nexus:
		return "nexus"
	case Phylip:
		return "phylip"
	}
	return "auto"
}

// ParseInputFmt takes names as they come from the command line.
func ParseInputFmt(s string) (InputFmt, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "fasta", "fas", "fa":
		return Fasta, nil
	case "nexus", "nex":
		return Nexus, nil
	case "phylip", "phy":
		return Phylip, nil
	}
	return Auto, errors.Errorf("unknown input format %q", s)
}

// OutputFmt is the format to write.
type OutputFmt byte

const (
	FastaOut OutputFmt = iota
	FastaInt
	NexusOut
	NexusInt
	PhylipOut
	PhylipInt
)

var outNames = [...]string{
	FastaOut:  "fasta",
	FastaInt:  "fasta-int",
	NexusOut:  "nexus",
	NexusInt:  "nexus-int",
	PhylipOut: "phylip",
	PhylipInt: "phylip-int",
}

func (f OutputFmt) String() string { return outNames[f] }

// ParseOutputFmt takes names as they come from the command line.
func ParseOutputFmt(s string) (OutputFmt, error) {
	for i, n := range outNames {
		if strings.EqualFold(s, n) {
			return OutputFmt(i), nil
		}
	}
	return FastaOut, errors.Errorf("unknown output format %q", s)
}

// Interleaved says whether sequences are wrapped into rounds.
func (f OutputFmt) Interleaved() bool {
	return f == FastaInt || f == NexusInt || f == PhylipInt
}

// Ext is the file extension for output in this format.
func (f OutputFmt) Ext() string {
	switch f {
	case NexusOut, NexusInt:
		return ".nex"
	case PhylipOut, PhylipInt:
		return ".phy"
	}
	return ".fas"
}

var extFmt = map[string]InputFmt{
	".fa":     Fasta,
	".fas":    Fasta,
	".fasta":  Fasta,
	".fna":    Fasta,
	".faa":    Fasta,
	".afa":    Fasta,
	".aln":    Fasta,
	".nex":    Nexus,
	".nexus":  Nexus,
	".nxs":    Nexus,
	".phy":    Phylip,
	".phylip": Phylip,
	".ph":     Phylip,
}

// Detect infers a format from the file extension. A trailing .gz is
// looked through.
func Detect(fname string) (InputFmt, error) {
	base := strings.TrimSuffix(strings.ToLower(filepath.Base(fname)), ".gz")
	if f, ok := extFmt[filepath.Ext(base)]; ok {
		return f, nil
	}
	return Auto, errors.Wrapf(ErrFormat, "%s: cannot tell the format from the extension", fname)
}

// Resolve turns Auto into a real format.
func Resolve(fname string, f InputFmt) (InputFmt, error) {
	if f != Auto {
		return f, nil
	}
	return Detect(fname)
}
