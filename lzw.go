package tiff

import (
	"bufio"
	"io"

	xlzw "golang.org/x/image/tiff/lzw"
)

// newLZWReader wraps golang.org/x/image/tiff/lzw, the same dependency the
// teacher decoder reaches for (decoder.go: "lzw.NewReader(..., lzw.MSB,
// 8)"). That package already implements both TIFF bit orders (§4.4); this
// adapter adds the order-sniffing the spec requires: modern TIFF LZW packs
// MSB-first, but a legacy variant packs LSB-first, distinguishable by
// peeking at the first two bytes of the stream.
func newLZWReader(r *io.SectionReader) (streamDecoder, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(2)
	order := xlzw.MSB
	if err == nil && looksLikeLSB(peek) {
		order = xlzw.LSB
	}
	return xlzw.NewReader(br, order, 8), nil
}

// looksLikeLSB sniffs the legacy LSB-first bit packing: the first byte is
// 0x00 and the first LZW code (the CLEAR code, 256) packed LSB-first at 9
// bits has its high bit set in the second byte, unlike the MSB-packed
// form where byte 0 carries the top bits of the CLEAR code directly.
func looksLikeLSB(peek []byte) bool {
	if len(peek) < 2 {
		return false
	}
	return peek[0] == 0x00 && peek[1]&0x01 != 0
}
