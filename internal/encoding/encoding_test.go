package encoding

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

func TestStringSequence(t *testing.T) {
	values := []string{"", "0001", "みずほ", "ﾐｽﾞﾎ", strings.Repeat("東京", 200)}

	var buf []byte
	for _, v := range values {
		buf = AppendString(buf, v)
	}
	buf = AppendUvarint(buf, 1<<40)

	r := NewReader(buf)
	for i, want := range values {
		if got := r.ReadString(); got != want {
			t.Errorf("value %d: got %q, want %q", i, got, want)
		}
	}
	if got := r.ReadUvarint(); got != 1<<40 {
		t.Errorf("ReadUvarint = %d, want %d", got, uint64(1)<<40)
	}
	if r.Err() != nil {
		t.Errorf("Err = %v", r.Err())
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d after reading everything", r.Len())
	}
}

func TestUvarintRandom(t *testing.T) {
	rng := newTestRNG(t)
	want := make([]uint64, 1000)
	var buf []byte
	for i := range want {
		want[i] = rng.Uint64() >> rng.UintN(64)
		buf = AppendUvarint(buf, want[i])
	}
	r := NewReader(buf)
	for i, w := range want {
		if got := r.ReadUvarint(); got != w {
			t.Fatalf("value %d: got %d, want %d", i, got, w)
		}
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestReaderErrors(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		r := NewReader(nil)
		r.ReadUvarint()
		if !errors.Is(r.Err(), ErrShortBuffer) {
			t.Errorf("got %v, want ErrShortBuffer", r.Err())
		}
	})

	t.Run("StringPastEnd", func(t *testing.T) {
		buf := AppendString(nil, "みずほ")
		r := NewReader(buf[:len(buf)-1])
		if got := r.ReadString(); got != "" {
			t.Errorf("got %q from truncated buffer", got)
		}
		if !errors.Is(r.Err(), ErrShortBuffer) {
			t.Errorf("got %v, want ErrShortBuffer", r.Err())
		}
	})

	t.Run("HugeLength", func(t *testing.T) {
		buf := AppendUvarint(nil, ^uint64(0))
		r := NewReader(buf)
		r.ReadString()
		if !errors.Is(r.Err(), ErrShortBuffer) {
			t.Errorf("got %v, want ErrShortBuffer", r.Err())
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
		r := NewReader(buf)
		r.ReadUvarint()
		if !errors.Is(r.Err(), ErrOverflow) {
			t.Errorf("got %v, want ErrOverflow", r.Err())
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		buf := AppendString(nil, "\xff\xfe")
		r := NewReader(buf)
		r.ReadString()
		if !errors.Is(r.Err(), ErrInvalidUTF8) {
			t.Errorf("got %v, want ErrInvalidUTF8", r.Err())
		}
	})

	t.Run("ErrorSticks", func(t *testing.T) {
		buf := AppendString(nil, "ok")
		r := NewReader(buf[:1])
		r.ReadString()
		first := r.Err()
		if got := r.ReadString(); got != "" {
			t.Errorf("read %q after an error", got)
		}
		if r.Err() != first {
			t.Errorf("error changed from %v to %v", first, r.Err())
		}
	})
}

func TestReadStringCopies(t *testing.T) {
	buf := AppendString(nil, "abc")
	r := NewReader(buf)
	s := r.ReadString()
	for i := range buf {
		buf[i] = 0
	}
	if s != "abc" {
		t.Errorf("string changed with backing buffer: %q", s)
	}
}
