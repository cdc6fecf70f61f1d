// 7 Oct 2026

// Package partition reads and writes the files that say where each
// gene sits in a concatenated alignment.
//
// Three dialects are understood:
//
//	charset gene1 = 1-300;          NEXUS charset statement
//	begin sets; charset ...; end;   the same, in a NEXUS sets block
//	DNA, gene1 = 1-300              RAxML
//
// Each may mark codon positions with a stride, as in "1-300\3". On
// reading, the three codon subsets of a gene are folded back into one
// partition. On writing, the codon variants split each gene into its
// three codon positions.
package partition

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPartition = errors.New("bad partition")
	ErrGeneName  = errors.New("bad gene name")
)

// Partition is one gene. Start and End count from 1 and are both
// included.
type Partition struct {
	Gene  string
	Start int
	End   int
}

// Len is the number of sites in the partition.
func (p Partition) Len() int { return p.End - p.Start + 1 }

// Fmt is a partition file dialect.
type Fmt byte

const (
	Charset Fmt = iota // inline in a NEXUS alignment, or a companion file
	CharsetCodon
	Nexus // companion NEXUS sets block
	NexusCodon
	Raxml
	RaxmlCodon
)

var fmtNames = [...]string{
	Charset:      "charset",
	CharsetCodon: "charset-codon",
	Nexus:        "nexus",
	NexusCodon:   "nexus-codon",
	Raxml:        "raxml",
	RaxmlCodon:   "raxml-codon",
}

func (f Fmt) String() string { return fmtNames[f] }

// ParseFmt takes names as they come from the command line.
func ParseFmt(s string) (Fmt, error) {
	for i, n := range fmtNames {
		if strings.EqualFold(s, n) {
			return Fmt(i), nil
		}
	}
	return Charset, errors.Errorf("unknown partition format %q", s)
}

// Codon says whether genes are split into codon positions on output.
func (f Fmt) Codon() bool {
	return f == CharsetCodon || f == NexusCodon || f == RaxmlCodon
}

// Base drops the codon variant.
func (f Fmt) Base() Fmt {
	switch f {
	case CharsetCodon:
		return Charset
	case NexusCodon:
		return Nexus
	case RaxmlCodon:
		return Raxml
	}
	return f
}

// Validate wants a non-empty list starting at 1, with each partition
// starting just after the one before.
func Validate(parts []Partition) error {
	if len(parts) == 0 {
		return errors.Wrap(ErrPartition, "no partitions")
	}
	if parts[0].Start != 1 {
		return errors.Wrapf(ErrPartition, "first partition %s starts at %d, not 1",
			parts[0].Gene, parts[0].Start)
	}
	for i, p := range parts {
		if p.End < p.Start {
			return errors.Wrapf(ErrPartition, "partition %s ends (%d) before it starts (%d)",
				p.Gene, p.End, p.Start)
		}
		if i > 0 && p.Start != parts[i-1].End+1 {
			const msg = "partition %s starts at %d, but %s ends at %d. Expected %d"
			q := parts[i-1]
			return errors.Wrapf(ErrPartition, msg, p.Gene, p.Start, q.Gene, q.End, q.End+1)
		}
	}
	return nil
}

// blocked are dropped from gene names.
const blocked = `()/\,"';:?!`

// SanitizeName cleans a gene name: punctuation goes, dots become
// underscores. A name with a blank in it is an error.
func SanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(blocked, r):
			return -1
		case r == '.':
			return '_'
		}
		return r
	}, name)
	if strings.ContainsAny(name, " \t") {
		return "", errors.Wrapf(ErrGeneName, "%q contains a space", name)
	}
	if name == "" {
		return "", errors.Wrap(ErrGeneName, "empty name")
	}
	return name, nil
}
