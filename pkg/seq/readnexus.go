// Reader for NEXUS files.
// A NEXUS file is a list of commands, each ending with a ";". We only
// care about three of them: dimensions, format and matrix. Everything
// else (begin, end, sets, trees, ...) is skipped.

package seq

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/andrew-torda/msakit/pkg/white"
)

const nexusMagic = "#nexus"

// cmdReader hands back one command at a time. Square bracket comments
// are dropped, but the newlines inside them are kept, since the matrix
// is read line by line. A ";" inside quotes does not end a command.
type cmdReader struct {
	rdr *bufio.Reader
	buf bytes.Buffer
}

func newCmdReader(rdr io.Reader) *cmdReader {
	return &cmdReader{rdr: bufio.NewReader(rdr)}
}

// next returns the next command without its ";". At the end of input
// it returns io.EOF, after handing back any unterminated text.
func (c *cmdReader) next() (string, error) {
	c.buf.Reset()
	depth := 0
	quoted := false
	for {
		b, err := c.rdr.ReadByte()
		if err != nil {
			if err == io.EOF && len(bytes.TrimSpace(c.buf.Bytes())) > 0 {
				return c.buf.String(), nil
			}
			return "", err
		}
		switch {
		case depth > 0:
			switch b {
			case '[':
				depth++
			case ']':
				depth--
			case '\n':
				c.buf.WriteByte(b)
			}
			continue
		case b == '\'':
			quoted = !quoted
		case b == '[' && !quoted:
			depth++
			continue
		case b == ';' && !quoted:
			return c.buf.String(), nil
		}
		c.buf.WriteByte(b)
	}
}

// splitKeyword splits "matrix\nA ACGT" into "matrix" and the rest.
func splitKeyword(cmd string) (string, string) {
	cmd = strings.TrimLeft(cmd, " \t\r\n")
	i := strings.IndexAny(cmd, " \t\r\n")
	if i < 0 {
		return strings.ToLower(cmd), ""
	}
	return strings.ToLower(cmd[:i]), cmd[i:]
}

var eqSpace = regexp.MustCompile(`\s*=\s*`)

// keyVals turns "ntax = 3 NCHAR=10" into {ntax: 3, nchar: 10}. Keys are
// lower case. A key without "=" gets an empty value.
func keyVals(s string) map[string]string {
	kv := make(map[string]string)
	for _, tok := range strings.Fields(eqSpace.ReplaceAllString(s, "=")) {
		k, v, _ := strings.Cut(tok, "=")
		kv[strings.ToLower(k)] = v
	}
	return kv
}

// nexusDims is what a dimensions command declares. -1 means not given.
type nexusDims struct {
	ntax, nchar int
}

// parseDims sets what s declares in d and leaves the rest alone, since
// ntax and nchar often come from separate taxa and characters blocks.
func parseDims(fname, s string, d *nexusDims) error {
	kv := keyVals(s)
	for _, k := range []string{"ntax", "nchar"} {
		v, ok := kv[k]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errors.Wrapf(ErrFormat, "%s: dimensions want an integer for %s, found %q", fname, k, v)
		}
		if k == "ntax" {
			d.ntax = n
		} else {
			d.nchar = n
		}
	}
	return nil
}

// parseFormat fills in h from a format command and says whether the
// matrix is interleaved.
func parseFormat(fname, s string, h *Header) (bool, error) {
	interleave := false
	for k, v := range keyVals(s) {
		switch k {
		case "datatype":
			h.Datatype = strings.ToLower(v)
		case "missing", "gap":
			if len(v) != 1 {
				return false, errors.Wrapf(ErrFormat, "%s: %s should be one symbol, found %q", fname, k, v)
			}
			if k == "missing" {
				h.Missing = v[0]
			} else {
				h.Gap = v[0]
			}
		case "interleave", "interleaved":
			switch strings.ToLower(v) {
			case "", "yes", "true":
				interleave = true
			case "no", "false":
				interleave = false
			default:
				return false, errors.Wrapf(ErrFormat, "%s: interleave=%s is neither yes nor no", fname, v)
			}
		}
	}
	return interleave, nil
}

// splitTaxonLine splits a matrix line into the taxon ID and the rest.
// IDs in single quotes may contain blanks, and a quote inside one is
// written twice, as in 'O''Brien'.
func splitTaxonLine(line string) (string, string) {
	if strings.HasPrefix(line, "'") {
		for j := 1; j < len(line); j++ {
			if line[j] != '\'' {
				continue
			}
			if j+1 < len(line) && line[j+1] == '\'' {
				j++
				continue
			}
			return strings.ReplaceAll(line[1:j], "''", "'"), line[j+1:]
		}
	}
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

// matrixLines calls f on each non-blank line of a matrix command.
func matrixLines(s string, f func(n int, line string) error) error {
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := f(n, line); err != nil {
			return err
		}
	}
	return nil
}

// checkMagic looks at the first line of a NEXUS file.
func checkMagic(fname, first string) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(first)), nexusMagic) {
		return errors.Wrapf(ErrFormat, "%s: expected #NEXUS on the first line, found %q",
			fname, strings.TrimSpace(first))
	}
	return nil
}

// checkDims compares what was declared with what was read.
func checkDims(fname string, d nexusDims, ntax, nchar int) error {
	const msg = "%s: declared %s=%d, but the matrix has %d"
	if d.ntax >= 0 && d.ntax != ntax {
		return errors.Wrapf(ErrDimMismatch, msg, fname, "ntax", d.ntax, ntax)
	}
	if d.nchar >= 0 && d.nchar != nchar {
		return errors.Wrapf(ErrDimMismatch, msg, fname, "nchar", d.nchar, nchar)
	}
	return nil
}

// ReadNexus reads a NEXUS alignment. fname is only used in error
// messages.
func ReadNexus(rdr io.Reader, fname string, dt DataType) (*Matrix, *Header, error) {
	br := bufio.NewReader(rdr)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, errorName(fname, err)
	}
	if err := checkMagic(fname, first); err != nil {
		return nil, nil, err
	}

	h := NewHeader()
	h.SetDataType(dt)
	dims := nexusDims{-1, -1}
	interleave := false
	m := NewMatrix()

	cr := newCmdReader(br)
	for {
		cmd, err := cr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errorName(fname, err)
		}
		keyword, rest := splitKeyword(cmd)
		switch keyword {
		case "dimensions":
			if err := parseDims(fname, rest, &dims); err != nil {
				return nil, nil, err
			}
		case "format":
			if interleave, err = parseFormat(fname, rest, h); err != nil {
				return nil, nil, err
			}
		case "matrix":
			if err := readMatrix(fname, rest, interleave, dt, m); err != nil {
				return nil, nil, err
			}
		}
	}

	h.fromMatrix(m)
	if err := checkDims(fname, dims, h.Ntax, h.Nchar); err != nil {
		return nil, nil, err
	}
	return m, h, nil
}

// readMatrix puts the lines of a matrix command into m. In sequential
// mode a taxon may only turn up once. In interleaved mode each block
// adds to the taxa seen before.
func readMatrix(fname, s string, interleave bool, dt DataType, m *Matrix) error {
	return matrixLines(s, func(n int, line string) error {
		id, rest := splitTaxonLine(line)
		b := []byte(rest)
		white.Remove(&b)
		if len(b) == 0 {
			return errors.Wrapf(ErrFormat, "%s: matrix line %d for taxon %q has no sequence", fname, n, id)
		}
		if err := checkSymbols(fname, id, b, dt); err != nil {
			return err
		}
		if interleave {
			m.Append(id, b)
			return nil
		}
		if err := m.Insert(id, b); err != nil {
			return errorName(fname, err)
		}
		return nil
	})
}

// nexusIDs only collects taxon IDs. It checks the count against the
// declared ntax, but does not look at sequences.
func nexusIDs(fname string, data []byte) ([]string, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errorName(fname, err)
	}
	if err := checkMagic(fname, first); err != nil {
		return nil, err
	}
	dims := nexusDims{-1, -1}
	var ids []string
	seen := make(map[string]bool)
	cr := newCmdReader(br)
	for {
		cmd, err := cr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errorName(fname, err)
		}
		keyword, rest := splitKeyword(cmd)
		switch keyword {
		case "dimensions":
			if err := parseDims(fname, rest, &dims); err != nil {
				return nil, err
			}
		case "matrix":
			matrixLines(rest, func(_ int, line string) error {
				id, _ := splitTaxonLine(line)
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
				return nil
			})
		}
	}
	if dims.ntax >= 0 && dims.ntax != len(ids) {
		const msg = "%s: declared ntax=%d, but found %d taxon IDs"
		return nil, errors.Wrapf(ErrDimMismatch, msg, fname, dims.ntax, len(ids))
	}
	return ids, nil
}
