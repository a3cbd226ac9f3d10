package tiff

import (
	"bufio"
	"bytes"
	"io"
)

// newPackBitsReader decodes PackBits (§4.5), adapted from the teacher's
// compress.go unpackBits. The original decoded eagerly into a slice; here
// that slice is exposed as an io.Reader so it composes with the rest of
// the codec pipeline like every other streamDecoder.
//
// Header byte n: 0..127 copies the next n+1 literal bytes; 129..255 (i.e.
// -127..-1 signed) repeats the next byte 1-n times; 128 (-128) is a no-op.
// On underrun the decoder stops and returns what it has decoded so far,
// rather than an error (§4.5: "the decoder must not read past the end of
// the bounded input; on underrun, return a short read").
func newPackBitsReader(r io.Reader) streamDecoder {
	dst, _ := unpackBits(r)
	return bytes.NewReader(dst)
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

func unpackBits(r io.Reader) ([]byte, error) {
	var n int
	buf := make([]byte, 128)
	dst := make([]byte, 0, 1024)
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	for {
		b, err := br.ReadByte()
		if err != nil {
			return dst, nil // Underrun: short read, not an error.
		}
		code := int(int8(b))
		switch {
		case code >= 0:
			n, err = io.ReadFull(br, buf[:code+1])
			dst = append(dst, buf[:n]...)
			if err != nil {
				return dst, nil
			}
		case code == -128:
			// No-op.
		default:
			if b, err = br.ReadByte(); err != nil {
				return dst, nil
			}
			for j := 0; j < 1-code; j++ {
				buf[j] = b
			}
			dst = append(dst, buf[:1-code]...)
		}
	}
}
