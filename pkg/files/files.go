// Package files finds alignment files, sorts them the way people
// number loci, reads plain ID lists and sets up output locations.
package files

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"

	"github.com/andrew-torda/msakit/pkg/seq"
)

// ErrExists is returned when output would overwrite something and the
// caller did not ask for that.
var ErrExists = errors.New("output exists (use force to overwrite)")

// Globs are the file patterns for each input format.
func Globs(f seq.InputFmt) []string {
	switch f {
	case seq.Fasta:
		return []string{"*.fa*", "*.fas*"}
	case seq.Nexus:
		return []string{"*.nex*"}
	case seq.Phylip:
		return []string{"*.phy*"}
	}
	return []string{"*.fa*", "*.nex*", "*.phy*"}
}

// SortNatural sorts names so "locus2" comes before "locus10".
func SortNatural(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})
}

// Find lists the alignment files in dir for format f, in natural
// order. Finding nothing is an error.
func Find(dir string, f seq.InputFmt) ([]string, error) {
	if fi, err := os.Stat(dir); err != nil {
		return nil, errors.Wrap(err, "input directory")
	} else if !fi.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}
	seen := make(map[string]bool)
	var names []string
	for _, g := range Globs(f) {
		m, err := filepath.Glob(filepath.Join(dir, g))
		if err != nil {
			return nil, errors.Wrapf(err, "pattern %s", g)
		}
		for _, name := range m {
			if fi, err := os.Stat(name); err == nil && fi.Mode().IsRegular() && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, errors.Errorf("no %s files in %s", f, dir)
	}
	SortNatural(names)
	return names, nil
}

// ReadIDList reads one ID per line. Blank lines and lines starting
// with # are skipped.
func ReadIDList(fname string) ([]string, error) {
	fp, err := xopen.Ropen(fname)
	if err == xopen.ErrNoContent {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, fname)
	}
	defer fp.Close()
	var ids []string
	sc := bufio.NewScanner(fp)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, fname)
	}
	return ids, nil
}

func exists(fname string) bool {
	_, err := os.Stat(fname)
	return err == nil
}

// CheckFile is called before writing fname. It fails if the file is
// already there, unless force is set.
func CheckFile(fname string, force bool) error {
	if !force && exists(fname) {
		return errors.Wrap(ErrExists, fname)
	}
	return nil
}

// PrepareDir makes an output directory. If it is already there, force
// must be set. Nothing inside it is removed. The working directory is
// always fine.
func PrepareDir(dir string, force bool) error {
	if dir == "" || filepath.Clean(dir) == "." {
		return nil
	}
	if err := CheckFile(dir, force); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, dir)
	}
	return nil
}
