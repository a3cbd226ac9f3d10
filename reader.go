package tiff

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// input is the byte-level abstraction the decode pipeline is built on
// (§6 "Input contract"): random-access, with a byte order latched once
// during header parsing and then immutable for the session.
type input struct {
	r         io.ReaderAt
	byteOrder binary.ByteOrder
}

func newInput(r io.ReaderAt) *input {
	return &input{r: r}
}

func (in *input) setByteOrder(order binary.ByteOrder) { in.byteOrder = order }

// order returns the byte order latched during header parsing.
func (in *input) order() binary.ByteOrder { return in.byteOrder }

// readExact reads exactly len(buf) bytes at offset, or returns an error.
func (in *input) readExact(offset int64, buf []byte) error {
	_, err := in.r.ReadAt(buf, offset)
	if err != nil {
		return errors.Wrapf(err, "read %d bytes at offset %d", len(buf), offset)
	}
	return nil
}

// section returns a bounded io.SectionReader over [offset, offset+n), the
// "length-bounded view of the file" codecs read from.
func (in *input) section(offset, n int64) *io.SectionReader {
	return io.NewSectionReader(in.r, offset, n)
}

// rowReader reads one row of `count` samples at a given bits-per-sample
// width from a byte stream, in the session's byte order (§4.10). It is the
// "row-reader object parameterised by transfer type" called for in the §9
// design notes: the pipeline builder produces one of these per image and the
// inner per-row loop only ever deals in uint32 sample values, regardless of
// whether the underlying samples are bit-packed (1/2/4 bits, MSB-first,
// flushed to a byte boundary at end of row — the teacher's decoder.go
// readBits/flushBits pattern, also used by prl900-gocog's decoder) or
// byte-aligned (8/16/32 bits).
type rowReader struct {
	order         binary.ByteOrder
	bitsPerSample int
}

func newRowReader(order binary.ByteOrder, bitsPerSample int) (rowReader, error) {
	if bitsPerSample <= 0 || bitsPerSample > 32 {
		return rowReader{}, InconsistentMetadataError{Reason: "BitsPerSample out of range"}
	}
	return rowReader{order: order, bitsPerSample: bitsPerSample}, nil
}

// maxSample returns (1<<bitsPerSample)-1.
func (r rowReader) maxSample() uint32 { return uint32(1)<<uint(r.bitsPerSample) - 1 }

// rowByteSize returns the number of bytes one row of `count` samples
// occupies on the wire, rounding up to a byte boundary (rows always start
// byte-aligned, per the TIFF bit-packing convention).
func (r rowReader) rowByteSize(count int) int {
	return (count*r.bitsPerSample + 7) / 8
}

// readRow reads exactly one row of `count` samples from src, widened to
// uint32 regardless of packing.
func (r rowReader) readRow(src io.Reader, count int) ([]uint32, error) {
	buf := make([]byte, r.rowByteSize(count))
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	switch r.bitsPerSample {
	case 8:
		for i := range out {
			out[i] = uint32(buf[i])
		}
	case 16:
		for i := range out {
			out[i] = uint32(r.order.Uint16(buf[2*i : 2*i+2]))
		}
	case 32:
		for i := range out {
			out[i] = r.order.Uint32(buf[4*i : 4*i+4])
		}
	default:
		var v uint32
		var nbits uint
		pos := 0
		for i := range out {
			for nbits < uint(r.bitsPerSample) {
				v = v<<8 | uint32(buf[pos])
				pos++
				nbits += 8
			}
			nbits -= uint(r.bitsPerSample)
			out[i] = v >> nbits
			v &^= out[i] << nbits
		}
	}
	return out, nil
}

func minInt(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
