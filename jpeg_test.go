package tiff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLeadingSOI(t *testing.T) {
	assert.Equal(t, []byte{0xAA, 0xBB}, stripLeadingSOI([]byte{0xFF, mSOI, 0xAA, 0xBB}))
	assert.Equal(t, []byte{0xAA, 0xBB}, stripLeadingSOI([]byte{0xAA, 0xBB}))
}

func TestStripSOIEOI(t *testing.T) {
	in := []byte{0xFF, mSOI, 0x01, 0x02, 0xFF, mEOI}
	assert.Equal(t, []byte{0x01, 0x02}, stripSOIEOI(in))
}

func TestWriteDQTLength(t *testing.T) {
	var buf bytes.Buffer
	writeDQT(&buf, [][]byte{make([]byte, canonicalQTableSize)})
	got := buf.Bytes()
	assert.Equal(t, byte(0xFF), got[0])
	assert.Equal(t, byte(mDQT), got[1])
	length := int(got[2])<<8 | int(got[3])
	assert.Equal(t, 2+1+canonicalQTableSize, length)
	assert.Equal(t, 2+length, len(got)) // the length field counts itself but not the marker.
}

func TestWriteSOF0Dimensions(t *testing.T) {
	var buf bytes.Buffer
	writeSOF0(&buf, 100, 50, 3, 0, 0, [][]byte{make([]byte, canonicalQTableSize)})
	got := buf.Bytes()
	h := int(got[5])<<8 | int(got[6])
	w := int(got[7])<<8 | int(got[8])
	assert.Equal(t, 50, h)
	assert.Equal(t, 100, w)
	assert.Equal(t, byte(3), got[9])   // number of components
	assert.Equal(t, byte(0x11), got[11]) // no subsampling resolved: component 0 is 1x1
}

// TestWriteSOF0YCbCrSubsampling is the §4.9 2x2-subsampled case: component
// 0 (luma) carries the resolved 0x22 sampling factor, chroma components
// stay 1x1.
func TestWriteSOF0YCbCrSubsampling(t *testing.T) {
	var buf bytes.Buffer
	writeSOF0(&buf, 100, 50, 3, 2, 2, [][]byte{make([]byte, canonicalQTableSize)})
	got := buf.Bytes()
	assert.Equal(t, byte(0x22), got[11]) // component 0 (luma) sampling
	assert.Equal(t, byte(0x11), got[14]) // component 1 (Cb) sampling
	assert.Equal(t, byte(0x11), got[17]) // component 2 (Cr) sampling
}

func TestReadHuffTableSumsCounts(t *testing.T) {
	var buf bytes.Buffer
	counts := make([]byte, 16)
	counts[0] = 2
	counts[1] = 1
	buf.Write(counts)
	buf.Write([]byte{0x01, 0x02, 0x03}) // 3 symbol values, matching sum(counts)=3
	in := newInput(bytes.NewReader(buf.Bytes()))

	full, err := readHuffTable(in, 0)
	assert.NoError(t, err)
	assert.Len(t, full, 16+3)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, full[16:])
}
