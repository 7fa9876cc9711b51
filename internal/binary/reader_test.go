package binary

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/tagsync/internal/types"
)

func TestSafeReader_Bytes(t *testing.T) {
	sr := NewSafeReader([]byte{0x01, 0x02, 0x03, 0x04}, "test.m4a")

	b, err := sr.Bytes(1, 2, "middle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b[0] != 0x02 || b[1] != 0x03 {
		t.Errorf("Bytes() = %x, want 0203", b)
	}

	if _, err := sr.Bytes(4, 0, "empty tail"); err != nil {
		t.Errorf("zero-length read at end should succeed: %v", err)
	}
}

func TestSafeReader_OutOfBounds(t *testing.T) {
	sr := NewSafeReader([]byte{0x01, 0x02, 0x03, 0x04}, "test.m4a")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"past end", 10, 2},
		{"straddles end", 3, 2},
		{"negative offset", -1, 1},
		{"negative length", 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sr.Bytes(tc.off, tc.n, "atom header")
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var oob *types.OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("expected *types.OutOfBoundsError, got %T", err)
			}
			if !strings.Contains(err.Error(), "test.m4a") || !strings.Contains(err.Error(), "atom header") {
				t.Errorf("error should name file and context: %v", err)
			}
		})
	}
}

func TestRead_Endianness(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	sr := NewSafeReader(data, "test.flac")

	tests := []struct {
		name string
		read func() (uint64, error)
		want uint64
	}{
		{"uint8", func() (uint64, error) { v, err := Read[uint8](sr, 0, "u8"); return uint64(v), err }, 0x01},
		{"uint16 BE", func() (uint64, error) { v, err := Read[uint16](sr, 0, "u16"); return uint64(v), err }, 0x0102},
		{"uint32 BE", func() (uint64, error) { v, err := Read[uint32](sr, 4, "u32"); return uint64(v), err }, 0x05060708},
		{"uint64 BE", func() (uint64, error) { v, err := Read[uint64](sr, 0, "u64"); return v, err }, 0x0102030405060708},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.read()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got 0x%x, want 0x%x", got, tc.want)
			}
		})
	}

	if _, err := Read[uint32](sr, 6, "truncated"); err == nil {
		t.Error("expected error for read past end")
	}
}

func TestReader_Sequential(t *testing.T) {
	sr := NewSafeReader([]byte{0x01, 0x02, 0x03, 'a', 'b', 'c', 0xFF}, "test.m4a")
	r := NewReader(sr, 0)

	b, err := ReadValue[uint8](r, "first byte")
	if err != nil || b != 0x01 {
		t.Fatalf("ReadValue[uint8] = %x, %v", b, err)
	}

	w, err := ReadValue[uint16](r, "word")
	if err != nil || w != 0x0203 {
		t.Fatalf("ReadValue[uint16] = %x, %v", w, err)
	}

	s, err := r.ReadBytes(3, "name")
	if err != nil || string(s) != "abc" {
		t.Fatalf("ReadBytes = %q, %v", s, err)
	}

	if r.Offset() != 6 {
		t.Errorf("Offset() = %d, want 6", r.Offset())
	}

	if _, err := r.ReadBytes(2, "past end"); err == nil {
		t.Error("expected error reading past end")
	}
}

func TestReaderLE_Sequential(t *testing.T) {
	sr := NewSafeReader([]byte{0x04, 0x00, 0x00, 0x00, 't', 'e', 's', 't'}, "test.ogg")
	r := NewReaderLE(sr, 0)

	n, err := ReadValue[uint32](r, "length")
	if err != nil || n != 4 {
		t.Fatalf("ReadValue[uint32] = %d, %v", n, err)
	}
	s, err := r.ReadBytes(int(n), "vendor")
	if err != nil || string(s) != "test" {
		t.Fatalf("ReadBytes = %q, %v", s, err)
	}
}

func TestChainReader(t *testing.T) {
	sr := NewSafeReader([]byte{0x01, 0x02, 'O', 'g'}, "test.ogg")
	cr := NewChainReader(NewReader(sr, 0))

	v1 := ReadChained[uint8](cr, "first")
	v2 := ReadChained[uint8](cr, "second")
	tag := cr.String(2, "tag")

	if err := cr.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != 0x01 || v2 != 0x02 || tag != "Og" {
		t.Errorf("unexpected values: %02x %02x %q", v1, v2, tag)
	}

	_ = ReadChained[uint32](cr, "overflow")
	first := cr.Error()
	if first == nil {
		t.Fatal("expected error, got nil")
	}

	// Later reads are skipped and keep the first error.
	if got := ReadChained[uint8](cr, "after"); got != 0 {
		t.Errorf("read after failure returned %d", got)
	}
	if cr.Error() != first {
		t.Error("first error should be preserved")
	}
}

func TestSynchsafe(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint32
	}{
		{[]byte{0x00, 0x00, 0x02, 0x01}, 257},
		{[]byte{0x7F, 0x7F, 0x7F, 0x7F}, 0x0FFFFFFF},
		{[]byte{0x00, 0x00, 0x00}, 0},
	}

	for _, tc := range tests {
		if got := Synchsafe(tc.in); got != tc.want {
			t.Errorf("Synchsafe(%x) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func BenchmarkRead_Uint32(b *testing.B) {
	data := make([]byte, 1024*1024)
	sr := NewSafeReader(data, "bench.m4a")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		offset := int64((i % (len(data) / 4)) * 4)
		_, _ = Read[uint32](sr, offset, "benchmark")
	}
}
