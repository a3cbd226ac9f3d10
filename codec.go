package tiff

import "io"

// streamDecoder is the interface every codec in the registry exposes
// (§4.3): a streaming decoder over a length-bounded view of the file.
type streamDecoder interface {
	io.Reader
}

// newCodecReader attaches the decoder named by compression over a bounded
// section of the input. For cNone (and 0) the section itself is returned,
// so uncompressed data is read directly with no codec adapter in between.
func newCodecReader(compression uint16, section *io.SectionReader) (streamDecoder, error) {
	switch compression {
	case cNone, 0:
		// Some writers omit Compression and mean "none" (§4.3 note).
		return section, nil
	case cLZW:
		return newLZWReader(section)
	case cPackBits:
		return newPackBitsReader(section), nil
	case cDeflateAdobe, cDeflate:
		return newDeflateReader(section)
	default:
		return nil, UnsupportedCompressionError{ID: compression}
	}
}
