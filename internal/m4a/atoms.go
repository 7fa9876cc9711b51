// Package m4a reads and writes the canonical tags and cover of MP4/M4A
// files through the iTunes item list at moov/udta/meta/ilst.
package m4a

import (
	"fmt"

	"github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

// maxDepth bounds container nesting.
const maxDepth = 16

// Atom is one box of an MP4 file.
type Atom struct {
	Type   string
	Offset int64 // position of the size field
	Size   int64 // total size including header
	Header int64 // 8, or 16 when a 64-bit size follows the type

	// Skip is the number of bytes between the header and the first child:
	// the version and flags of a full-box meta atom.
	Skip int64

	// Children holds the parsed children of container atoms.
	Children []*Atom
}

// DataOffset returns the file offset where the atom's payload starts.
func (a *Atom) DataOffset() int64 {
	return a.Offset + a.Header
}

// DataSize returns the payload size, excluding the header.
func (a *Atom) DataSize() int64 {
	return a.Size - a.Header
}

// End returns the offset just past the atom.
func (a *Atom) End() int64 {
	return a.Offset + a.Size
}

// Find returns the descendant reached by following path, or nil.
func (a *Atom) Find(path ...string) *Atom {
	cur := a
	for _, typ := range path {
		cur = find(cur.Children, typ)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func find(atoms []*Atom, typ string) *Atom {
	for _, a := range atoms {
		if a.Type == typ {
			return a
		}
	}
	return nil
}

var containers = map[string]bool{
	"moov": true, // movie
	"trak": true, // track
	"edts": true, // edit list
	"mdia": true, // media
	"minf": true, // media information
	"dinf": true, // data information
	"stbl": true, // sample table
	"udta": true, // user data
	"meta": true, // metadata
	"ilst": true, // iTunes item list
}

// isContainer reports whether an atom of typ found under parent holds
// child atoms. Every ilst item holds data atoms.
func isContainer(typ, parent string) bool {
	return containers[typ] || parent == "ilst"
}

func parseError(path string, offset int64, reason string, err error) *types.ParseError {
	return &types.ParseError{
		Err:    err,
		Path:   path,
		Reason: reason,
		Offset: offset,
		Kind:   types.KindAtomBox,
	}
}

// readAtomHeader reads the atom header at offset. A size of 0 extends the
// atom to end, the end of its parent.
func readAtomHeader(sr *binary.SafeReader, offset, end int64) (*Atom, error) {
	r := binary.NewChainReader(binary.NewReader(sr, offset))
	size32 := binary.ReadChained[uint32](r, "atom size")
	typ := r.String(4, "atom type")
	if err := r.Error(); err != nil {
		return nil, err
	}

	atom := &Atom{Type: typ, Offset: offset, Header: 8}
	switch size32 {
	case 0:
		atom.Size = end - offset
	case 1:
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		atom.Header = 16
		atom.Size = int64(size64)
	default:
		atom.Size = int64(size32)
	}

	if atom.Size < atom.Header {
		return nil, fmt.Errorf("atom %q: invalid size %d (minimum is %d)", typ, atom.Size, atom.Header)
	}
	if atom.Size > end-offset {
		return nil, fmt.Errorf("atom %q: size %d exceeds its parent by %d bytes", typ, atom.Size, atom.Size-(end-offset))
	}
	return atom, nil
}

// metaSkip returns the length of the version and flags prefix of a meta
// atom. QuickTime-style meta atoms start directly with their hdlr child.
func metaSkip(sr *binary.SafeReader, a *Atom) int64 {
	if a.DataSize() >= 8 {
		if b, err := sr.Bytes(a.DataOffset()+4, 4, "meta child type"); err == nil && string(b) == "hdlr" {
			return 0
		}
	}
	return 4
}

// parseAtoms reads the atoms between start and end, descending into
// containers. Fewer than eight trailing bytes are ignored.
func parseAtoms(sr *binary.SafeReader, start, end int64, parent string, depth int) ([]*Atom, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("atoms nested deeper than %d levels", maxDepth)
	}

	var atoms []*Atom
	for offset := start; end-offset >= 8; {
		atom, err := readAtomHeader(sr, offset, end)
		if err != nil {
			return nil, err
		}

		if isContainer(atom.Type, parent) {
			if atom.Type == "meta" {
				atom.Skip = metaSkip(sr, atom)
			}
			first := atom.DataOffset() + atom.Skip
			if first > atom.End() {
				return nil, fmt.Errorf("atom %q too short for its header", atom.Type)
			}
			if atom.Children, err = parseAtoms(sr, first, atom.End(), atom.Type, depth+1); err != nil {
				return nil, err
			}
		}

		atoms = append(atoms, atom)
		offset = atom.End()
	}
	return atoms, nil
}

// Parse returns the top-level atoms of an MP4 file with container
// children expanded.
func Parse(data []byte, path string) ([]*Atom, error) {
	sr := binary.NewSafeReader(data, path)
	atoms, err := parseAtoms(sr, 0, sr.Size(), "", 0)
	if err != nil {
		return nil, parseError(path, 0, "malformed atom tree", err)
	}
	if len(atoms) == 0 {
		return nil, parseError(path, 0, "no atoms", nil)
	}
	return atoms, nil
}

// Walk calls fn for every atom in depth-first order.
func Walk(atoms []*Atom, fn func(a *Atom, depth int)) {
	var walk func([]*Atom, int)
	walk = func(list []*Atom, depth int) {
		for _, a := range list {
			fn(a, depth)
			walk(a.Children, depth+1)
		}
	}
	walk(atoms, 0)
}
