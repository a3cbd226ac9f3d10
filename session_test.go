package tiff_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tiff "github.com/kalbhor/tiffcore"
)

func writeShortEntry(buf *bytes.Buffer, tag, value uint16) {
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, uint16(3)) // SHORT
	binary.Write(buf, binary.LittleEndian, uint32(1))
	binary.Write(buf, binary.LittleEndian, value)
	binary.Write(buf, binary.LittleEndian, uint16(0)) // padding to fill the 4-byte value slot.
}

func writeLongEntry(buf *bytes.Buffer, tag uint16, value uint32) {
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, uint16(4)) // LONG
	binary.Write(buf, binary.LittleEndian, uint32(1))
	binary.Write(buf, binary.LittleEndian, value)
}

func writeOffsetEntry(buf *bytes.Buffer, tag, typ uint16, count, offset uint32) {
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, typ)
	binary.Write(buf, binary.LittleEndian, count)
	binary.Write(buf, binary.LittleEndian, offset)
}

// buildMinimalGray builds a 2x2, 8 bits-per-sample, uncompressed grayscale
// classic TIFF with the given photometric interpretation and pixel bytes.
func buildMinimalGray(photometric uint16, pixels []byte) []byte {
	const ifdOffset = 8
	const n = 8
	const ifdSize = 2 + n*12 + 4
	dataOffset := uint32(ifdOffset + ifdSize)

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(ifdOffset))

	binary.Write(&buf, binary.LittleEndian, uint16(n))
	writeShortEntry(&buf, 256, 2) // ImageWidth
	writeShortEntry(&buf, 257, 2) // ImageLength
	writeShortEntry(&buf, 258, 8) // BitsPerSample
	writeShortEntry(&buf, 259, 1) // Compression: none
	writeShortEntry(&buf, 262, photometric)
	writeLongEntry(&buf, 273, dataOffset)          // StripOffsets
	writeShortEntry(&buf, 278, 2)                  // RowsPerStrip
	writeLongEntry(&buf, 279, uint32(len(pixels))) // StripByteCounts
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	buf.Write(pixels)
	return buf.Bytes()
}

func TestDecodeMinimalGrayscale(t *testing.T) {
	raw := buildMinimalGray(1, []byte{0x00, 0xFF, 0xFF, 0x00})
	s, err := tiff.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 1, s.NumImages())

	r, err := s.Decode(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0xFF, 0x00}, r.Pix)
}

func TestDecodeWhiteIsZeroInversion(t *testing.T) {
	raw := buildMinimalGray(0, []byte{0x00, 0xFF, 0xFF, 0x00})
	s, err := tiff.Open(bytes.NewReader(raw))
	require.NoError(t, err)

	r, err := s.Decode(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00, 0xFF}, r.Pix)
}

// TestDecodePackBitsRGBStrip is the PackBits RGB scenario: a 3x1 RGB strip
// whose single 10-byte literal-run packet decodes to three RGB triplets.
func TestDecodePackBitsRGBStrip(t *testing.T) {
	const ifdOffset = 8
	const n = 9
	const ifdSize = 2 + n*12 + 4
	bpsOffset := uint32(ifdOffset + ifdSize)
	bpsData := []byte{8, 0, 8, 0, 8, 0} // BitsPerSample [8,8,8], little-endian.
	stripData := []byte{0x08, 'R', 'G', 'B', 'R', 'G', 'B', 'R', 'G', 'B'}
	stripOffset := bpsOffset + uint32(len(bpsData))

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(ifdOffset))

	binary.Write(&buf, binary.LittleEndian, uint16(n))
	writeShortEntry(&buf, 256, 3)                               // ImageWidth
	writeShortEntry(&buf, 257, 1)                               // ImageLength
	writeOffsetEntry(&buf, 258, 3, 3, bpsOffset)                // BitsPerSample
	writeShortEntry(&buf, 259, 32773)                           // Compression: PackBits
	writeShortEntry(&buf, 262, 2)                                // Photometric: RGB
	writeLongEntry(&buf, 273, stripOffset)                      // StripOffsets
	writeShortEntry(&buf, 277, 3)                               // SamplesPerPixel
	writeShortEntry(&buf, 278, 1)                               // RowsPerStrip
	writeLongEntry(&buf, 279, uint32(len(stripData)))           // StripByteCounts
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	buf.Write(bpsData)
	buf.Write(stripData)

	s, err := tiff.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	r, err := s.Decode(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("RGBRGBRGB"), r.Pix)
}

// TestDecodeLZWPredictorGradient is the LZW+horizontal-predictor scenario:
// an 8-sample gradient row [0..7], horizontally differenced to
// [0,1,1,1,1,1,1,1] and LZW-packed, decodes back to the gradient.
func TestDecodeLZWPredictorGradient(t *testing.T) {
	const ifdOffset = 8
	const n = 9
	const ifdSize = 2 + n*12 + 4
	dataOffset := uint32(ifdOffset + ifdSize)
	lzwData := []byte{0x80, 0x00, 0x00, 0x30, 0x38, 0x20, 0x06, 0x02}

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(ifdOffset))

	binary.Write(&buf, binary.LittleEndian, uint16(n))
	writeShortEntry(&buf, 256, 8)                     // ImageWidth
	writeShortEntry(&buf, 257, 1)                     // ImageLength
	writeShortEntry(&buf, 258, 8)                     // BitsPerSample
	writeShortEntry(&buf, 259, 5)                     // Compression: LZW
	writeShortEntry(&buf, 262, 1)                     // Photometric: BlackIsZero
	writeLongEntry(&buf, 273, dataOffset)             // StripOffsets
	writeShortEntry(&buf, 278, 1)                     // RowsPerStrip
	writeLongEntry(&buf, 279, uint32(len(lzwData)))   // StripByteCounts
	writeShortEntry(&buf, 317, 2)                     // Predictor: horizontal
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	buf.Write(lzwData)

	s, err := tiff.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	r, err := s.Decode(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, r.Pix)
}

// TestDecodePaletteImage is the palette scenario: a 1x1 image with pixel
// index 3 against a ColorMap whose index-3 entry is pure red.
func TestDecodePaletteImage(t *testing.T) {
	const ifdOffset = 8
	const n = 9
	const ifdSize = 2 + n*12 + 4
	cmOffset := uint32(ifdOffset + ifdSize)

	var cmData bytes.Buffer
	reds := []uint16{0, 0, 0, 0xFF00}
	greens := []uint16{0, 0, 0, 0}
	blues := []uint16{0, 0, 0, 0}
	for _, v := range append(append(reds, greens...), blues...) {
		binary.Write(&cmData, binary.LittleEndian, v)
	}
	stripOffset := cmOffset + uint32(cmData.Len())

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(ifdOffset))

	binary.Write(&buf, binary.LittleEndian, uint16(n))
	writeShortEntry(&buf, 256, 1)                    // ImageWidth
	writeShortEntry(&buf, 257, 1)                    // ImageLength
	writeShortEntry(&buf, 258, 8)                     // BitsPerSample
	writeShortEntry(&buf, 259, 1)                     // Compression: none
	writeShortEntry(&buf, 262, 3)                     // Photometric: Palette
	writeLongEntry(&buf, 273, stripOffset)            // StripOffsets
	writeShortEntry(&buf, 278, 1)                     // RowsPerStrip
	writeLongEntry(&buf, 279, 1)                      // StripByteCounts
	writeOffsetEntry(&buf, 320, 3, 12, cmOffset)      // ColorMap
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	buf.Write(cmData.Bytes())
	buf.WriteByte(3) // pixel index

	s, err := tiff.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	r, err := s.Decode(0, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00}, r.Pix)
}

// TestTwoIFDChain is the two-IFD EXIF-thumbnail-style scenario: IFD0 carries
// ImageWidth, ImageLength and Compression plus an ASCII Software tag, IFD1
// carries Compression and JPEGInterchangeFormat and lacks
// ImageWidth/ImageLength.
func TestTwoIFDChain(t *testing.T) {
	const ifd0Offset = 8
	const n0 = 4
	const ifd0Size = 2 + n0*12 + 4
	softwareOffset := uint32(ifd0Offset + ifd0Size)
	software := append([]byte("Adobe Photoshop CS2 Macintosh"), 0)
	ifd1Offset := softwareOffset + uint32(len(software))
	if ifd1Offset%2 != 0 {
		ifd1Offset++
	}

	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(ifd0Offset))

	binary.Write(&buf, binary.LittleEndian, uint16(n0))
	writeOffsetEntry(&buf, 305, 2, uint32(len(software)), softwareOffset) // Software
	writeShortEntry(&buf, 256, 3601)                                     // ImageWidth
	writeShortEntry(&buf, 257, 4176)                                     // ImageLength
	writeShortEntry(&buf, 259, 1)                                        // Compression
	binary.Write(&buf, binary.LittleEndian, ifd1Offset)

	buf.Write(software)
	for uint32(buf.Len()) < ifd1Offset {
		buf.WriteByte(0)
	}

	const n1 = 2
	binary.Write(&buf, binary.LittleEndian, uint16(n1))
	writeShortEntry(&buf, 259, 6)         // Compression: old-style JPEG
	writeLongEntry(&buf, 513, 999)        // JPEGInterchangeFormat (unread by this test)
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	s, err := tiff.Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumImages())

	w0, err := s.Width(0)
	require.NoError(t, err)
	h0, err := s.Height(0)
	require.NoError(t, err)
	assert.Equal(t, 3601, w0)
	assert.Equal(t, 4176, h0)

	_, err = s.ImageDescriptor(1)
	assert.Error(t, err) // IFD1 has no ImageWidth/ImageLength.
	_, ok := err.(tiff.MissingTagError)
	assert.True(t, ok)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	_, err := tiff.Open(bytes.NewReader([]byte("not a tiff file at all")))
	assert.Error(t, err)
	_, ok := err.(tiff.BadMagicError)
	assert.True(t, ok)
}

func TestDecodeParamsRejectNonDefaultSubsample(t *testing.T) {
	raw := buildMinimalGray(1, []byte{0x00, 0xFF, 0xFF, 0x00})
	s, err := tiff.Open(bytes.NewReader(raw))
	require.NoError(t, err)

	_, err = s.Decode(0, &tiff.DecodeParams{Subsample: 2})
	assert.Error(t, err)
	_, ok := err.(tiff.UnsupportedParamError)
	assert.True(t, ok)
}
