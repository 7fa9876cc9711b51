package ogg

// Page checksums are CRC-32 with polynomial 0x04C11DB7, no reflection,
// zero initial value and no final XOR.
const crcPoly = 0x04C11DB7

var crcTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ crcPoly
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func crcUpdate(crc uint32, b []byte) uint32 {
	for _, v := range b {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^v]
	}
	return crc
}

// checksum computes the CRC of a serialized page whose checksum field
// is zero.
func checksum(page []byte) uint32 {
	return crcUpdate(0, page)
}
