package tiff

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// subIFDTags are pointer-typed tags that cause the walker to recurse into
// another directory (§3: "Each directory may in turn point ... at a
// sub-directory"). tSubIFDs may hold more than one offset; tExifIFD holds
// exactly one.
var subIFDTags = []uint16{tExifIFD, tSubIFDs}

// walker builds a CompoundDirectory by following the classic TIFF header
// and IFD chain (§4.1).
type walker struct {
	in      *input
	visited map[int64]bool
	warn    func(string)
}

func newWalker(in *input, warn func(string)) *walker {
	if warn == nil {
		warn = func(string) {}
	}
	return &walker{in: in, visited: make(map[int64]bool), warn: warn}
}

// walk reads the 8-byte header, latches the byte order onto in, and walks
// the IFD chain starting at the header's IFD0 offset.
func (w *walker) walk() (*CompoundDirectory, error) {
	var hdr [8]byte
	if err := w.in.readExact(0, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "read TIFF header")
	}

	switch string(hdr[0:4]) {
	case leHeader:
		w.in.setByteOrder(binary.LittleEndian)
	case beHeader:
		w.in.setByteOrder(binary.BigEndian)
	default:
		var got [4]byte
		copy(got[:], hdr[0:4])
		return nil, BadMagicError{Got: got}
	}

	magic := w.in.order().Uint16(hdr[2:4])
	if magic != classicMagic {
		var got [4]byte
		copy(got[:], hdr[0:4])
		return nil, BadMagicError{Got: got}
	}

	ifdOffset := int64(w.in.order().Uint32(hdr[4:8]))

	c := &CompoundDirectory{}
	for ifdOffset != 0 {
		if w.visited[ifdOffset] {
			return nil, CyclicIFDError{Offset: ifdOffset}
		}
		w.visited[ifdOffset] = true

		dir, next, err := w.readIFD(ifdOffset)
		if err != nil {
			return nil, err
		}
		c.Directories = append(c.Directories, dir)
		ifdOffset = next
	}
	return c, nil
}

// readIFD reads one IFD at offset: entry count, the entries themselves,
// and the next-IFD offset that terminates the chain at 0.
func (w *walker) readIFD(offset int64) (*Directory, int64, error) {
	var countBuf [2]byte
	if err := w.in.readExact(offset, countBuf[:]); err != nil {
		return nil, 0, FormatError("truncated IFD entry count")
	}
	n := int(w.in.order().Uint16(countBuf[:]))

	buf := make([]byte, n*ifdEntrySize+4)
	if err := w.in.readExact(offset+2, buf); err != nil {
		return nil, 0, FormatError("truncated IFD")
	}

	dir := newDirectory()
	for i := 0; i < n; i++ {
		rec := buf[i*ifdEntrySize : (i+1)*ifdEntrySize]
		entry, err := w.parseEntry(rec)
		if err != nil {
			if _, ok := err.(UnsupportedError); ok {
				w.warn(err.Error())
				continue
			}
			return nil, 0, err
		}
		dir.add(entry)

		for _, sub := range subIFDTags {
			if entry.Tag != sub {
				continue
			}
			if err := w.walkSubIFDs(dir, sub, entry.Value); err != nil {
				return nil, 0, err
			}
		}
	}

	next := int64(w.in.order().Uint32(buf[n*ifdEntrySize:]))
	return dir, next, nil
}

// walkSubIFDs recurses into every offset named by a SubIFD/Exif pointer
// tag, tracking visited offsets to detect cycles across the whole tree,
// not just the top-level chain.
func (w *walker) walkSubIFDs(parent *Directory, tag uint16, v TypedValue) error {
	for _, off64 := range v.AsLongArray() {
		offset := int64(off64)
		if w.visited[offset] {
			return CyclicIFDError{Offset: offset}
		}
		w.visited[offset] = true

		sub, _, err := w.readIFD(offset)
		if err != nil {
			return err
		}
		parent.SubIFDs[tag] = append(parent.SubIFDs[tag], sub)
	}
	return nil
}

// parseEntry decodes one 12-byte IFD record into an Entry.
func (w *walker) parseEntry(rec []byte) (Entry, error) {
	order := w.in.order()
	tag := order.Uint16(rec[0:2])
	typ := order.Uint16(rec[2:4])
	count := order.Uint32(rec[4:8])

	size, ok := typeSizes[typ]
	if !ok {
		return Entry{}, UnsupportedError("IFD entry type")
	}
	dataLen := uint64(size) * uint64(count)

	var raw []byte
	if dataLen <= 4 {
		raw = rec[8 : 8+dataLen]
	} else {
		raw = make([]byte, dataLen)
		offset := int64(order.Uint32(rec[8:12]))
		if err := w.in.readExact(offset, raw); err != nil {
			return Entry{}, FormatError("truncated IFD entry value")
		}
	}

	val, err := decodeTypedValue(order, typ, count, raw)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Tag: tag, Value: val}, nil
}
