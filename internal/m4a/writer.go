package m4a

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

// node is an atom staged for serialization. Leaves keep their original
// bytes; containers are rebuilt from their children.
type node struct {
	typ      string
	raw      []byte
	prefix   []byte // bytes between header and first child
	children []*node
	tail     []byte // bytes after the last child
}

// stage converts a parsed container into a node tree. Items of ilst stay
// raw so that unmanaged items are copied byte for byte.
func stage(data []byte, a *Atom) *node {
	if !containers[a.Type] {
		return &node{typ: a.Type, raw: data[a.Offset:a.End()]}
	}

	first := a.DataOffset() + a.Skip
	n := &node{
		typ:    a.Type,
		prefix: data[a.DataOffset():first],
	}

	last := first
	for _, c := range a.Children {
		if a.Type == "ilst" {
			n.children = append(n.children, &node{typ: c.Type, raw: data[c.Offset:c.End()]})
		} else {
			n.children = append(n.children, stage(data, c))
		}
		last = c.End()
	}
	n.tail = data[last:a.End()]
	return n
}

func (n *node) size() int64 {
	if n.raw != nil {
		return int64(len(n.raw))
	}
	payload := int64(len(n.prefix) + len(n.tail))
	for _, c := range n.children {
		payload += c.size()
	}
	if payload+8 > math.MaxUint32 {
		return payload + 16
	}
	return payload + 8
}

func (n *node) appendTo(b []byte) []byte {
	if n.raw != nil {
		return append(b, n.raw...)
	}

	size := n.size()
	if size > math.MaxUint32 {
		b = binary.Append[uint32](b, 1, binary.BigEndian)
		b = append(b, n.typ...)
		b = binary.Append(b, uint64(size), binary.BigEndian)
	} else {
		b = binary.Append(b, uint32(size), binary.BigEndian)
		b = append(b, n.typ...)
	}

	b = append(b, n.prefix...)
	for _, c := range n.children {
		b = c.appendTo(b)
	}
	return append(b, n.tail...)
}

func (n *node) child(typ string) *node {
	for _, c := range n.children {
		if c.typ == typ {
			return c
		}
	}
	return nil
}

// ensure returns the child container typ, appending an empty one when
// it is missing.
func (n *node) ensure(typ string, prefix ...[]byte) *node {
	if c := n.child(typ); c != nil {
		return c
	}
	c := &node{typ: typ, prefix: bytes.Join(prefix, nil)}
	n.children = append(n.children, c)
	return c
}

// remove drops every child of type typ.
func (n *node) remove(typ string) {
	kept := n.children[:0]
	for _, c := range n.children {
		if c.typ != typ {
			kept = append(kept, c)
		}
	}
	n.children = kept
}

// leaf returns a serialized atom of typ around payload.
func leaf(typ string, payload ...[]byte) *node {
	body := bytes.Join(payload, nil)
	raw := binary.Append(nil, uint32(8+len(body)), binary.BigEndian)
	raw = append(raw, typ...)
	return &node{typ: typ, raw: append(raw, body...)}
}

// item returns an ilst item holding one data atom.
func item(typ string, dataType uint32, value []byte) *node {
	d := leaf("data", binary.Append(nil, dataType, binary.BigEndian), make([]byte, 4), value)
	return leaf(typ, d.raw)
}

// handler is the hdlr atom that marks meta as iTunes metadata.
func handler() *node {
	return leaf("hdlr", make([]byte, 8), []byte("mdirappl"), make([]byte, 9))
}

// itemList returns the ilst node under moov, creating udta, meta, hdlr
// and ilst as needed.
func itemList(moov *node) *node {
	meta := moov.ensure("udta").child("meta")
	if meta == nil {
		meta = moov.child("udta").ensure("meta", make([]byte, 4))
		meta.children = append(meta.children, handler())
	}
	return meta.ensure("ilst")
}

// shiftChunkOffsets adds delta to every stco and co64 entry at or past
// from.
func shiftChunkOffsets(n *node, from, delta int64) error {
	if n.raw == nil {
		for _, c := range n.children {
			if err := shiftChunkOffsets(c, from, delta); err != nil {
				return err
			}
		}
		return nil
	}
	if n.typ != "stco" && n.typ != "co64" {
		return nil
	}

	raw := bytes.Clone(n.raw)
	sr := binary.NewSafeReader(raw, "")
	header := int64(8)
	if size, err := binary.Read[uint32](sr, 0, n.typ+" size"); err != nil {
		return err
	} else if size == 1 {
		header = 16
	}

	// version and flags (4), entry count (4), entries
	count, err := binary.Read[uint32](sr, header+4, n.typ+" entry count")
	if err != nil {
		return err
	}
	width := int64(4)
	if n.typ == "co64" {
		width = 8
	}
	if held := (sr.Size() - header - 8) / width; int64(count) > held {
		return fmt.Errorf("%s atom declares %d entries but holds %d", n.typ, count, held)
	}

	for i := range int64(count) {
		at := header + 8 + i*width
		if width == 4 {
			v, err := binary.Read[uint32](sr, at, "stco entry")
			if err != nil {
				return err
			}
			off := int64(v)
			if off < from {
				continue
			}
			off += delta
			if off < 0 || off > math.MaxUint32 {
				return fmt.Errorf("chunk offset %d does not fit stco", off)
			}
			binary.Put(raw[at:], uint32(off), binary.BigEndian)
		} else {
			off, err := binary.Read[uint64](sr, at, "co64 entry")
			if err != nil {
				return err
			}
			if off < uint64(from) {
				continue
			}
			binary.Put(raw[at:], uint64(int64(off)+delta), binary.BigEndian)
		}
	}
	n.raw = raw
	return nil
}

// rewrite applies edit to the item list and returns the file with moov
// rebuilt. Chunk offsets that point past the old moov are shifted by its
// change in size.
func rewrite(data []byte, path string, edit func(ilst *node) error) ([]byte, error) {
	atoms, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	moov := find(atoms, "moov")
	if moov == nil {
		return nil, parseError(path, 0, "no moov atom", nil)
	}

	tree := stage(data, moov)
	if err := edit(itemList(tree)); err != nil {
		return nil, err
	}

	if delta := tree.size() - moov.Size; delta != 0 {
		if err := shiftChunkOffsets(tree, moov.End(), delta); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, int64(len(data))+tree.size()-moov.Size)
	out = append(out, data[:moov.Offset]...)
	out = tree.appendTo(out)
	return append(out, data[moov.End():]...), nil
}

// parseTrack reads the track number of a canonical track value. "N/M"
// yields N.
func parseTrack(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("track %q is not a number between 0 and 65535", s)
	}
	return uint16(n), nil
}

// setItems replaces every canonical item of ilst with the non-empty
// values of tags. Other items are kept in order.
func setItems(ilst *node, tags types.Tags) error {
	var track uint16
	if tags.Track != "" {
		n, err := parseTrack(tags.Track)
		if err != nil {
			return err
		}
		track = n
	}

	for f, v := range tags.All() {
		name, ok := textItems[f]
		if f == types.FieldTrack {
			name, ok = itemTrack, true
		}
		if !ok {
			continue
		}

		ilst.remove(name)
		switch {
		case v == "":
		case f == types.FieldTrack:
			value := []byte{0, 0, byte(track >> 8), byte(track), 0, 0, 0, 0}
			ilst.children = append(ilst.children, item(itemTrack, dataImplicit, value))
		default:
			ilst.children = append(ilst.children, item(name, dataUTF8, []byte(v)))
		}
	}
	return nil
}

// setCover replaces the covr item with one holding cover.
func setCover(ilst *node, cover types.Cover) {
	ilst.remove(itemCover)
	if cover.Valid() {
		ilst.children = append(ilst.children, item(itemCover, mimeToType(cover), cover.Data))
	}
}
