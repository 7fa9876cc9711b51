package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian is used by MP4 atoms, ID3v2 and FLAC block headers.
	BigEndian Endianness = iota

	// LittleEndian is used by Vorbis comments and Ogg page headers.
	LittleEndian
)

// Unsigned is the set of integer widths the readers and writers handle.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func sizeOf[T Unsigned]() int {
	var zero T
	switch any(zero).(type) {
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	default:
		return 1
	}
}

func decode[T Unsigned](b []byte, e Endianness) T {
	order := e.order()
	switch len(b) {
	case 2:
		return T(order.Uint16(b))
	case 4:
		return T(order.Uint32(b))
	case 8:
		return T(order.Uint64(b))
	default:
		return T(b[0])
	}
}

func encode[T Unsigned](v T, e Endianness) []byte {
	order := e.order()
	buf := make([]byte, sizeOf[T]())
	switch len(buf) {
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, uint64(v))
	default:
		buf[0] = byte(v)
	}
	return buf
}

// Synchsafe decodes a 4-byte ID3v2 synchsafe integer (7 bits per byte).
func Synchsafe(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
