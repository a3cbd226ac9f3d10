package tiff

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// newDeflateReader wraps the klauspost/compress zlib reader (§4.3, ids 8
// and 32946 are identical Deflate/Adobe-Deflate streams). klauspost's
// compress/zlib package is API-compatible with the standard library's and
// is already a transitive requirement of the teacher's module graph,
// promoted here to a direct dependency per the domain-stack expansion.
func newDeflateReader(r io.Reader) (streamDecoder, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, wrapCodecErr("deflate", err)
	}
	return zr, nil
}
