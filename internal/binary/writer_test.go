package binary

import (
	"bytes"
	"testing"
)

func TestAppend_ByteOrder(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"uint8", Append[uint8](nil, 0x42, BigEndian), []byte{0x42}},
		{"uint16 BE", Append[uint16](nil, 0xABCD, BigEndian), []byte{0xAB, 0xCD}},
		{"uint32 BE", Append[uint32](nil, 0x12345678, BigEndian), []byte{0x12, 0x34, 0x56, 0x78}},
		{"uint64 BE", Append[uint64](nil, 0x0102030405060708, BigEndian), []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"uint16 LE", Append[uint16](nil, 0x1234, LittleEndian), []byte{0x34, 0x12}},
		{"uint32 LE", Append[uint32](nil, 0x12345678, LittleEndian), []byte{0x78, 0x56, 0x34, 0x12}},
		{"uint64 LE", Append[uint64](nil, 0x0102030405060708, LittleEndian), []byte{8, 7, 6, 5, 4, 3, 2, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !bytes.Equal(tc.got, tc.want) {
				t.Errorf("Append() = %x, want %x", tc.got, tc.want)
			}
		})
	}
}

func TestSafeWriter_WriteBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	_ = sw.WriteBytes(Append[uint32](nil, 16, BigEndian))
	_ = sw.WriteBytes([]byte("data"))
	_ = sw.WriteBytes([]byte{0xFF, 0xFE})

	want := []byte{0, 0, 0, 16, 'd', 'a', 't', 'a', 0xFF, 0xFE}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("wrote %x, want %x", buf.Bytes(), want)
	}
}

func TestAppend(t *testing.T) {
	b := Append[uint16](nil, 0x0102, BigEndian)
	b = Append[uint32](b, 0x0A0B0C0D, LittleEndian)

	want := []byte{0x01, 0x02, 0x0D, 0x0C, 0x0B, 0x0A}
	if !bytes.Equal(b, want) {
		t.Errorf("Append() = %x, want %x", b, want)
	}
}

func TestPut(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	Put[uint32](b[1:], 0x01020304, BigEndian)
	Put[uint16](b, 0x0A0B, LittleEndian)

	want := []byte{0x0B, 0x0A, 0x02, 0x03, 0x04, 0xFF}
	if !bytes.Equal(b, want) {
		t.Errorf("Put() = %x, want %x", b, want)
	}
}
