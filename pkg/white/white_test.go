//
package white

import (
	"testing"
)

var ss = []string{
	"abcdefghijk",
	" a b c d e f g h i j k",
	"a b c de fgh ijk",
	"   abcdefghijk    ",
	"a   b      cdefghijk\n ",
	"a  b  c  d   e    f     ghijk",
	"a bcdefghij   k",
	"abcdefghij\nk",
	"abcdefghij\r\nk\t",
}

// TestWhiteRemove
func TestWhiteRemove(t *testing.T) {
	for _, s := range ss {
		b := []byte(s)
		Remove(&b)
		if string(b) != "abcdefghijk" {
			t.Fatalf("white remove broke on \"%s\"", s)
		}
	}
	b := []byte(" \t ")
	if Remove(&b); len(b) != 0 {
		t.Errorf("only blanks gave %q", b)
	}
}

func TestAllVersions(t *testing.T) {
	for name, f := range map[string]func(*[]byte){
		"byte":   Remove,
		"block":  removeByBlock,
		"fields": removeByFields,
	} {
		for _, s := range ss {
			b := []byte(s)
			f(&b)
			if string(b) != "abcdefghijk" {
				t.Errorf("%s version broke on %q got %q", name, s, b)
			}
		}
	}
}
