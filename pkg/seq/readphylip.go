// Reader for PHYLIP files, relaxed (IDs of any length, separated from
// the sequence by white space), sequential or interleaved.

package seq

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/white"
)

// phyLine is a non-blank line and where it was in the file.
type phyLine struct {
	n    int
	text string
}

// phylipLines reads all the non-blank lines.
func phylipLines(rdr io.Reader) ([]phyLine, error) {
	var lines []phyLine
	sc := bufio.NewScanner(rdr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024*1024)
	for n := 1; sc.Scan(); n++ {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			lines = append(lines, phyLine{n, t})
		}
	}
	return lines, sc.Err()
}

// phylipDims reads "ntax nchar" from the first line.
func phylipDims(fname string, lines []phyLine) (nexusDims, error) {
	if len(lines) == 0 {
		return nexusDims{}, errors.Wrapf(ErrFormat, "%s: empty file, expected \"ntax nchar\"", fname)
	}
	f := strings.Fields(lines[0].text)
	const msg = "%s: first line should be \"ntax nchar\", found %q"
	if len(f) != 2 {
		return nexusDims{}, errors.Wrapf(ErrFormat, msg, fname, lines[0].text)
	}
	ntax, err1 := strconv.Atoi(f[0])
	nchar, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil || ntax < 0 || nchar < 0 {
		return nexusDims{}, errors.Wrapf(ErrFormat, msg, fname, lines[0].text)
	}
	return nexusDims{ntax, nchar}, nil
}

// ReadPhylip reads a PHYLIP alignment. If there are more data lines
// than declared taxa, the file is taken to be interleaved.
func ReadPhylip(rdr io.Reader, fname string, dt DataType) (*Matrix, *Header, error) {
	lines, err := phylipLines(rdr)
	if err != nil {
		return nil, nil, errorName(fname, err)
	}
	dims, err := phylipDims(fname, lines)
	if err != nil {
		return nil, nil, err
	}
	data := lines[1:]
	var m *Matrix
	if len(data) > dims.ntax && dims.ntax > 0 {
		m, err = phylipInterleaved(fname, data, dims.ntax, dt)
	} else {
		m, err = phylipSequential(fname, data, dt)
	}
	if err != nil {
		return nil, nil, err
	}

	h := NewHeader()
	h.SetDataType(dt)
	h.fromMatrix(m)
	if err := checkDims(fname, dims, h.Ntax, h.Nchar); err != nil {
		return nil, nil, err
	}
	return m, h, nil
}

// phylipSequential wants exactly "id sequence" on each line.
func phylipSequential(fname string, data []phyLine, dt DataType) (*Matrix, error) {
	m := NewMatrix()
	for _, l := range data {
		f := strings.Fields(l.text)
		if len(f) != 2 {
			const msg = "%s: line %d has %d fields, expected 2 (ID and sequence). Did you mean interleaved?"
			return nil, errors.Wrapf(ErrFormat, msg, fname, l.n, len(f))
		}
		b := []byte(f[1])
		if err := checkSymbols(fname, f[0], b, dt); err != nil {
			return nil, err
		}
		if err := m.Insert(f[0], b); err != nil {
			return nil, errorName(fname, err)
		}
	}
	return m, nil
}

// phylipInterleaved takes the IDs from the first ntax lines. After
// that, line i belongs to taxon i mod ntax. A later line that starts
// with a known ID is a repeated taxon, not more sequence.
func phylipInterleaved(fname string, data []phyLine, ntax int, dt DataType) (*Matrix, error) {
	m := NewMatrix()
	ids := make([]string, ntax)
	for i, l := range data[:ntax] {
		id, rest := splitTaxonLine(l.text)
		b := []byte(rest)
		white.Remove(&b)
		if err := checkSymbols(fname, id, b, dt); err != nil {
			return nil, err
		}
		if err := m.Insert(id, b); err != nil {
			return nil, errorName(fname, err)
		}
		ids[i] = id
	}
	for i, l := range data[ntax:] {
		if f := strings.Fields(l.text); len(f) > 1 && m.Has(f[0]) {
			const msg = "%s: line %d starts with taxon %q a second time"
			return nil, errors.Wrapf(ErrDuplicateID, msg, fname, l.n, f[0])
		}
		id := ids[i%ntax]
		b := []byte(l.text)
		white.Remove(&b)
		if err := checkSymbols(fname, id, b, dt); err != nil {
			return nil, err
		}
		m.Append(id, b)
	}
	if len(data)%ntax != 0 {
		const msg = "%s: %d data lines for %d taxa leaves an incomplete block"
		return nil, errors.Wrapf(ErrFormat, msg, fname, len(data), ntax)
	}
	return m, nil
}

// phylipIDs takes the first word of the first ntax data lines.
func phylipIDs(fname string, data []byte) ([]string, error) {
	lines, err := phylipLines(bytes.NewReader(data))
	if err != nil {
		return nil, errorName(fname, err)
	}
	dims, err := phylipDims(fname, lines)
	if err != nil {
		return nil, err
	}
	if len(lines)-1 < dims.ntax {
		const msg = "%s: declared ntax=%d, but found %d taxon IDs"
		return nil, errors.Wrapf(ErrDimMismatch, msg, fname, dims.ntax, len(lines)-1)
	}
	ids := make([]string, dims.ntax)
	for i, l := range lines[1 : dims.ntax+1] {
		ids[i], _ = splitTaxonLine(l.text)
	}
	return ids, nil
}
