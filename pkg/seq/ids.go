// 3 Aug 2020 counting by mmap
// 5 Oct 2026 taxon IDs only, for building the list of all taxa

package seq

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/shenwei356/xopen"

	"github.com/andrew-torda/msakit/pkg/pool"
)

// mapFile gives the contents of a file and a function to let them go.
// Plain files are mapped read only. Compressed files cannot be mapped,
// so they are read.
func mapFile(fname string) ([]byte, func(), error) {
	nothing := func() {}
	if strings.HasSuffix(fname, ".gz") {
		rdr, err := xopen.Ropen(fname)
		if err == xopen.ErrNoContent {
			return nil, nothing, nil
		}
		if err != nil {
			return nil, nothing, err
		}
		defer rdr.Close()
		b, err := io.ReadAll(rdr)
		return b, nothing, err
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nothing, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nothing, err
	}
	if fi.Size() == 0 { // mmap refuses zero length files
		fp.Close()
		return nil, nothing, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, nothing, err
	}
	return mm, func() { mm.Unmap(); fp.Close() }, nil
}

// fastaIDs picks out the comment lines.
func fastaIDs(data []byte) []string {
	var ids []string
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimLeft(line, " \t")
		if len(line) > 0 && line[0] == cmmtChar {
			ids = append(ids, fastaID(splitCmmt(line[1:])))
		}
	}
	return ids
}

// ReadIDs returns the taxon IDs of an alignment, without keeping the
// sequences. It is the cheap way to find out who is in a file.
func ReadIDs(fname string, f InputFmt) ([]string, error) {
	f, err := Resolve(fname, f)
	if err != nil {
		return nil, err
	}
	data, release, err := mapFile(fname)
	if err != nil {
		return nil, errorName(fname, err)
	}
	defer release()

	switch f {
	case Nexus:
		return nexusIDs(fname, data)
	case Phylip:
		return phylipIDs(fname, data)
	}
	return fastaIDs(data), nil
}

// IDUnion reads the IDs of every file on nWorker goroutines and merges
// them. Taxa come back in the order they are first seen, going through
// fnames in order.
func IDUnion(fnames []string, f InputFmt, nWorker int) ([]string, error) {
	idsets, err := pool.Map(fnames, nWorker, func(fname string) ([]string, error) {
		return ReadIDs(fname, f)
	})
	if err != nil {
		return nil, err
	}
	var all []string
	seen := make(map[string]bool)
	for _, ids := range idsets {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
	}
	return all, nil
}
