// 29 Apr 2020
// 12 Oct 2026 symbols for partitioned alignments

package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const (
	GapChar     byte = '-' // a minus sign is always used for gaps
	MissingChar byte = '?' // and this pads taxa absent from a locus
)

// IsGapOrMissing is true for the symbols that carry no character
// information in a column.
func IsGapOrMissing(c byte) bool {
	return c == GapChar || c == MissingChar
}

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	return WrtTempSuffix(s, "")
}

// WrtTempSuffix is WrtTemp, but the filename ends with suffix.
// Readers that look at extensions need this.
func WrtTempSuffix(s, suffix string) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing*"+suffix)
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}

// Stem is the file name without directory and extension. A trailing
// .gz is dropped first, so "dir/locus1.nex.gz" gives "locus1".
func Stem(fname string) string {
	base := strings.TrimSuffix(filepath.Base(fname), ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
