package brokenio_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/andrew-torda/msakit/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func TestReaderSimple(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	s := make([]byte, len(longstring))
	if n, err := rdr.Read(s); n != len(longstring) || err != nil || string(s) != longstring {
		t.Errorf("simple read got %q %d %v wanted %q", s, n, err, longstring)
	}
}

func TestZeroFile(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	rdr.SetProbZeroFile(1)
	tmp := make([]byte, len(longstring))
	if n, err := rdr.Read(tmp); n != 0 || err != io.EOF {
		t.Errorf("want 0, EOF got %d, %v", n, err)
	}
}

func TestFailAfter(t *testing.T) {
	for _, after := range []int{0, 5, 39} {
		rdr := brokenio.NewReader(strings.NewReader(longstring))
		rdr.SetFailAfter(after)
		b, err := io.ReadAll(rdr)
		if err != brokenio.ErrBroken {
			t.Errorf("after %d: want ErrBroken, got %v", after, err)
		}
		if string(b) != longstring[:after] {
			t.Errorf("after %d: got %q", after, b)
		}
	}
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	rdr.SetFailAfter(len(longstring))
	if b, err := io.ReadAll(rdr); err != nil || string(b) != longstring {
		t.Errorf("reading exactly to the limit got %q, %v", b, err)
	}
}

// TestTrashing wipes out different fractions of a read.
func TestTrashing(t *testing.T) {
	for _, frac := range []float32{0, 0.3, 1} {
		rdr := brokenio.NewReader(strings.NewReader(longstring))
		rdr.SetProbFail(1)
		rdr.SetFracFail(frac)
		s := make([]byte, len(longstring))
		n, err := rdr.Read(s)
		if err != brokenio.ErrBroken {
			t.Errorf("frac %g: no error", frac)
		}
		want := int(float32(len(longstring)) * (1 - frac))
		if n != want {
			t.Errorf("frac %g: kept %d, want %d", frac, n, want)
		}
		if nul := bytes.Count(s, []byte{0}); nul != len(s)-n {
			t.Errorf("frac %g: %d nul bytes, want %d", frac, nul, len(s)-n)
		}
		if string(s[:n]) != longstring[:n] {
			t.Errorf("frac %g: kept part changed to %q", frac, s[:n])
		}
	}
}

func ExampleReader_String() {
	rdr := brokenio.NewReader(strings.NewReader(longstring))
	io.ReadAll(rdr)
	fmt.Println(rdr)
	// Output: 2 calls and 40 bytes
}
