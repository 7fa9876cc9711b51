package testfixture

import "encoding/binary"

// M4A data atom type codes.
const (
	DataImplicit = 0
	DataUTF8     = 1
	DataJPEG     = 13
	DataPNG      = 14
)

// M4AAudio is the payload of the mdat atom.
var M4AAudio = []byte("\x21\x10\x05\x20\xa4\x1b\xff\xc0 fixture audio sample data")

// M4ALayout describes the file M4A builds.
type M4ALayout struct {
	// Items are the children of ilst.
	Items [][]byte

	// NoMeta omits udta, meta and ilst entirely.
	NoMeta bool

	// MdatFirst places mdat before moov.
	MdatFirst bool

	// CO64 uses a 64-bit chunk offset table instead of stco.
	CO64 bool
}

// Atom returns an atom with a 32-bit size.
func Atom(name string, payload ...[]byte) []byte {
	body := concat(payload...)
	return concat(be32(uint32(8+len(body))), []byte(name), body)
}

// DataAtom returns a data atom: type, locale, value.
func DataAtom(typ uint32, value []byte) []byte {
	return Atom("data", be32(typ), be32(0), value)
}

// Item returns an ilst item holding a single data atom.
func Item(name string, typ uint32, value []byte) []byte {
	return Atom(name, DataAtom(typ, value))
}

// TextItem returns a UTF-8 ilst item.
func TextItem(name, text string) []byte {
	return Item(name, DataUTF8, []byte(text))
}

// TrackItem returns a trkn item holding track and total.
func TrackItem(track, total uint16) []byte {
	v := []byte{0, 0, byte(track >> 8), byte(track), byte(total >> 8), byte(total), 0, 0}
	return Item("trkn", DataImplicit, v)
}

// Handler returns the iTunes metadata handler atom.
func Handler() []byte {
	return Atom("hdlr", make([]byte, 8), []byte("mdirappl"), make([]byte, 9))
}

// M4A returns an ftyp, moov and mdat file laid out per l. The chunk offset
// table points at the start of the mdat payload.
func M4A(l M4ALayout) []byte {
	ftyp := Atom("ftyp", []byte("M4A "), be32(0), []byte("M4A mp42isom"))
	mdat := Atom("mdat", M4AAudio)

	// The offset value does not change moov's size, so build it twice.
	moov := m4aMoov(l, 0)
	var chunk uint64
	if l.MdatFirst {
		chunk = uint64(len(ftyp) + 8)
	} else {
		chunk = uint64(len(ftyp) + len(moov) + 8)
	}
	moov = m4aMoov(l, chunk)

	if l.MdatFirst {
		return concat(ftyp, mdat, moov)
	}
	return concat(ftyp, moov, mdat)
}

func m4aMoov(l M4ALayout, chunk uint64) []byte {
	var offsets []byte
	if l.CO64 {
		offsets = Atom("co64", be32(0), be32(1), binary.BigEndian.AppendUint64(nil, chunk))
	} else {
		offsets = Atom("stco", be32(0), be32(1), be32(uint32(chunk)))
	}

	trak := Atom("trak",
		Atom("tkhd", make([]byte, 84)),
		Atom("mdia",
			Atom("mdhd", make([]byte, 24)),
			Atom("minf",
				Atom("stbl",
					Atom("stsd", be32(0), be32(0)),
					offsets,
				),
			),
		),
	)

	children := [][]byte{Atom("mvhd", make([]byte, 100)), trak}
	if !l.NoMeta {
		meta := Atom("meta", be32(0), Handler(), Atom("ilst", l.Items...))
		children = append(children, Atom("udta", meta))
	}
	return Atom("moov", children...)
}

// ChunkOffsets returns the entries of the first stco or co64 table in data.
func ChunkOffsets(data []byte) []uint64 {
	for i := 4; i+8 <= len(data); i++ {
		name := string(data[i : i+4])
		if name != "stco" && name != "co64" {
			continue
		}
		count := int(binary.BigEndian.Uint32(data[i+8:]))
		pos := i + 12
		out := make([]uint64, 0, count)
		for range count {
			if name == "stco" {
				out = append(out, uint64(binary.BigEndian.Uint32(data[pos:])))
				pos += 4
			} else {
				out = append(out, binary.BigEndian.Uint64(data[pos:]))
				pos += 8
			}
		}
		return out
	}
	return nil
}
