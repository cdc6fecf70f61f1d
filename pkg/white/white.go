// Package white strips white space out of sequence data. Readers
// get lines like "ACGTACGTAC GTACGTACGT" and want the letters only.
package white

import (
	"bytes"
)

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func isWhite(c byte) bool { return asciiSpace[c] }

// Remove acts on a byte slice, in place and removes all the white
// space. The length is adjusted, but the capacity is unchanged.
func Remove(sIn *[]byte) {
	s := *sIn
	n := 0
	for _, c := range s {
		if !isWhite(c) {
			s[n] = c
			n++
		}
	}
	*sIn = s[:n]
}

// removeByBlock and removeByFields are kept to benchmark Remove against.

// removeByBlock copies runs of non-white bytes at a time.
func removeByBlock(sIn *[]byte) {
	s := *sIn
	n := 0
	for i := 0; i < len(s); {
		for i < len(s) && isWhite(s[i]) {
			i++
		}
		j := i
		for j < len(s) && !isWhite(s[j]) {
			j++
		}
		n += copy(s[n:], s[i:j])
		i = j
	}
	*sIn = s[:n]
}

// removeByFields is the obvious version. It allocates.
func removeByFields(sIn *[]byte) {
	*sIn = bytes.Join(bytes.Fields(*sIn), nil)
}
