package tiff

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"github.com/orcaman/writerseeker"
)

// decodeJPEG handles PhotometricInterpretation/Compression combinations
// that hand pixel decoding off to a real JPEG decoder (§4.9), rather than
// this core's own strip/tile sample pipeline. Two wire shapes exist:
//
//   - cJPEG (new-style, TTN2): every tile/strip is an "abbreviated" JPEG
//     stream missing its tables; JPEGTables holds the shared DQT/DHT
//     segments all tiles share.
//   - cJPEGOld (old-style): either JPEGInterchangeFormat points at one
//     complete JFIF stream for the whole image, or (rarer) each
//     strip/tile is raw entropy-coded scan data with the tables spread
//     across JPEGQTables/JPEGDCTables/JPEGACTables, requiring a
//     synthesized JFIF header per tile.
func (a *assembler) decodeJPEG() (*Raster, error) {
	if a.desc.Photometric == pCIELab {
		return nil, UnsupportedPhotometricError{ID: a.desc.Photometric}
	}

	dst := newRaster(a.desc)

	if a.desc.Compression == cJPEGOld {
		if v, ok := a.dir.Get(tJPEGInterchangeFormat); ok {
			return a.decodeOldStyleInterchange(v, dst)
		}
		return a.decodeOldStyleSynthesized(dst)
	}
	return a.decodeNewStyle(dst)
}

// decodeOldStyleInterchange decodes a complete JFIF stream living at a
// single file offset, used by the whole image regardless of tiling.
func (a *assembler) decodeOldStyleInterchange(offsetVal TypedValue, dst *Raster) (*Raster, error) {
	offset := int64(offsetVal.First())
	length := int64(a.dir.FirstLong(tJPEGInterchangeFormatLen))
	if length <= 0 {
		length = 1 << 30
	}
	img, err := jpeg.Decode(io.NewSectionReader(a.in.r, offset, length))
	if err != nil {
		return nil, wrapCodecErr("jpeg", err)
	}
	blitJPEGImage(img, dst, 0, 0)
	return dst, nil
}

// decodeOldStyleSynthesized reconstructs, for every tile, a standalone
// baseline JFIF stream from the scattered quantization/Huffman tables and
// the tile's raw entropy-coded bytes, then decodes it with the stdlib
// JPEG decoder (§9 design notes).
func (a *assembler) decodeOldStyleSynthesized(dst *Raster) (*Raster, error) {
	if v := uint16(a.dir.FirstLong(tJPEGProc)); v == jpegProcLossless {
		return nil, UnsupportedError("lossless JPEGProc")
	}

	qTables, err := a.readJPEGTableSet(tJPEGQTables, readQuantTable)
	if err != nil {
		return nil, err
	}
	dcTables, err := a.readJPEGTableSet(tJPEGDCTables, readHuffTable)
	if err != nil {
		return nil, err
	}
	acTables, err := a.readJPEGTableSet(tJPEGACTables, readHuffTable)
	if err != nil {
		return nil, err
	}

	g := a.desc.Geometry
	bands := a.desc.bandsPerPixel()

	for ty := 0; ty < g.tilesDown; ty++ {
		if a.cancel != nil && a.cancel() {
			return dst, nil
		}
		for tx := 0; tx < g.tilesAcross; tx++ {
			idx := g.index(tx, ty)
			x0, y0, w, h := g.bounds(tx, ty, a.desc.Width, a.desc.Height)
			if w <= 0 || h <= 0 {
				continue
			}

			offset := int64(g.offsets[idx])
			var n int64 = 1 << 30
			if !g.byteCountsMissing {
				n = int64(g.byteCounts[idx])
			}
			scan := make([]byte, n)
			if err := a.in.readExact(offset, scan); err != nil {
				return nil, err
			}

			stream, err := synthesizeJFIF(w, h, bands, a.desc.YCbCr.subH, a.desc.YCbCr.subV, qTables, dcTables, acTables, scan)
			if err != nil {
				return nil, err
			}
			img, err := jpeg.Decode(bytes.NewReader(stream))
			if err != nil {
				return nil, wrapCodecErr("jpeg", err)
			}
			blitJPEGImage(img, dst, x0, y0)
		}
	}
	return dst, nil
}

// decodeNewStyle splices the shared JPEGTables segment with each tile's
// abbreviated stream and decodes the result (§4.9 TTN2 path).
func (a *assembler) decodeNewStyle(dst *Raster) (*Raster, error) {
	var tablesBody []byte
	if v, ok := a.dir.Get(tJPEGTables); ok {
		tablesBody = stripSOIEOI(v.Raw())
	}

	g := a.desc.Geometry

	for ty := 0; ty < g.tilesDown; ty++ {
		if a.cancel != nil && a.cancel() {
			return dst, nil
		}
		for tx := 0; tx < g.tilesAcross; tx++ {
			idx := g.index(tx, ty)
			x0, y0, w, h := g.bounds(tx, ty, a.desc.Width, a.desc.Height)
			if w <= 0 || h <= 0 {
				continue
			}

			offset := int64(g.offsets[idx])
			var n int64 = 1 << 30
			if !g.byteCountsMissing {
				n = int64(g.byteCounts[idx])
			}
			tileStream := make([]byte, n)
			if err := a.in.readExact(offset, tileStream); err != nil {
				return nil, err
			}

			ws := &writerseeker.WriterSeeker{}
			ws.Write([]byte{0xFF, mSOI})
			ws.Write(tablesBody)
			ws.Write(stripLeadingSOI(tileStream))

			img, err := jpeg.Decode(ws.BytesReader())
			if err != nil {
				return nil, wrapCodecErr("jpeg", err)
			}
			blitJPEGImage(img, dst, x0, y0)
		}
	}
	return dst, nil
}

// readJPEGTableSet resolves one JPEGQTables/JPEGDCTables/JPEGACTables tag
// (an array of file offsets, one per table) into raw table bytes.
func (a *assembler) readJPEGTableSet(tag uint16, read func(in *input, offset int64) ([]byte, error)) ([][]byte, error) {
	v, ok := a.dir.Get(tag)
	if !ok {
		return nil, nil
	}
	offsets := v.AsLongArray()
	out := make([][]byte, len(offsets))
	for i, off := range offsets {
		b, err := read(a.in, int64(off))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// readQuantTable reads one canonical 64-entry, 8-bit-precision
// quantization table (§9 design notes: canonical table lengths).
func readQuantTable(in *input, offset int64) ([]byte, error) {
	buf := make([]byte, canonicalQTableSize)
	if err := in.readExact(offset, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readHuffTable reads one Huffman table definition: 16 symbol-count bytes
// followed by sum(counts) value bytes, per the JPEG DHT segment layout.
func readHuffTable(in *input, offset int64) ([]byte, error) {
	counts := make([]byte, 16)
	if err := in.readExact(offset, counts); err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += int(c)
	}
	full := make([]byte, 16+total)
	if err := in.readExact(offset, full); err != nil {
		return nil, err
	}
	return full, nil
}

// synthesizeJFIF builds a complete baseline JFIF stream around one tile's
// raw entropy-coded scan data, for the old-style JPEG path with no
// JPEGInterchangeFormat (§4.9, §9 design notes).
func synthesizeJFIF(w, h, bands, subH, subV int, qTables, dcTables, acTables [][]byte, scan []byte) ([]byte, error) {
	if len(qTables) == 0 || len(dcTables) == 0 || len(acTables) == 0 {
		return nil, MissingTagError{Tag: tJPEGQTables}
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, mSOI})

	writeDQT(&buf, qTables)
	writeSOF0(&buf, w, h, bands, subH, subV, qTables)
	writeDHT(&buf, 0, dcTables)
	writeDHT(&buf, 1, acTables)
	writeSOS(&buf, bands)

	buf.Write(scan)
	buf.Write([]byte{0xFF, mEOI})
	return buf.Bytes(), nil
}

func writeDQT(buf *bytes.Buffer, tables [][]byte) {
	length := 2
	for range tables {
		length += 1 + canonicalQTableSize
	}
	buf.Write([]byte{0xFF, mDQT, byte(length >> 8), byte(length)})
	for i, t := range tables {
		buf.WriteByte(byte(i)) // 8-bit precision, table id i.
		buf.Write(t)
	}
}

// writeSOF0 writes a baseline SOF0 segment. Component 0 (luma) carries the
// resolved YCbCrSubSampling factors (§4.9: "component 0 gets 0x22 sampling,
// others 0x11" for the common 2x2-subsampled case); every other component
// is 1x1, matching how chroma is never itself subsampled relative to
// itself. subH/subV are 0 for non-YCbCr sources (grayscale, CMYK), where
// 1x1 for every component is the only sensible value.
func writeSOF0(buf *bytes.Buffer, w, h, bands, subH, subV int, qTables [][]byte) {
	length := 8 + 3*bands
	buf.Write([]byte{0xFF, mSOF0, byte(length >> 8), byte(length)})
	buf.WriteByte(8) // Sample precision.
	buf.WriteByte(byte(h >> 8))
	buf.WriteByte(byte(h))
	buf.WriteByte(byte(w >> 8))
	buf.WriteByte(byte(w))
	buf.WriteByte(byte(bands))

	lumaSampling := byte(0x11)
	if subH > 0 && subV > 0 {
		lumaSampling = byte(subH<<4 | subV)
	}

	for c := 0; c < bands; c++ {
		qsel := c
		if qsel >= len(qTables) {
			qsel = len(qTables) - 1
		}
		sampling := byte(0x11)
		if c == 0 {
			sampling = lumaSampling
		}
		buf.WriteByte(byte(c + 1)) // Component id.
		buf.WriteByte(sampling)
		buf.WriteByte(byte(qsel))
	}
}

func writeDHT(buf *bytes.Buffer, class int, tables [][]byte) {
	length := 2
	for _, t := range tables {
		length += 1 + len(t)
	}
	buf.Write([]byte{0xFF, mDHT, byte(length >> 8), byte(length)})
	for i, t := range tables {
		buf.WriteByte(byte(class<<4 | i))
		buf.Write(t)
	}
}

func writeSOS(buf *bytes.Buffer, bands int) {
	length := 6 + 2*bands
	buf.Write([]byte{0xFF, mSOS, byte(length >> 8), byte(length)})
	buf.WriteByte(byte(bands))
	for c := 0; c < bands; c++ {
		sel := c
		if sel >= 4 {
			sel = 3
		}
		buf.WriteByte(byte(c + 1))
		buf.WriteByte(byte(sel<<4 | sel))
	}
	buf.Write([]byte{0x00, 0x3F, 0x00}) // Ss, Se, Ah/Al: fixed for baseline sequential.
}

// stripSOIEOI drops a stream's leading SOI and trailing EOI marker,
// leaving only its table/segment body.
func stripSOIEOI(b []byte) []byte {
	b = stripLeadingSOI(b)
	if len(b) >= 2 && b[len(b)-2] == 0xFF && b[len(b)-1] == mEOI {
		b = b[:len(b)-2]
	}
	return b
}

func stripLeadingSOI(b []byte) []byte {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == mSOI {
		return b[2:]
	}
	return b
}

// blitJPEGImage converts a decoded JPEG image into dst's pixel layout and
// blits it at (x0, y0). The concrete color model varies with the source
// (YCbCr for color JPEG, Gray for grayscale, CMYK for Adobe 4-component
// JPEGs); dst.Layout says what this core normalized the descriptor to.
func blitJPEGImage(img image.Image, dst *Raster, x0, y0 int) {
	b := img.Bounds()
	row := make([]byte, b.Dx()*dst.Bands)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			switch dst.Layout {
			case LayoutGray8:
				g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				row[x] = g.Y
			case LayoutCMYK8:
				c := color.CMYKModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.CMYK)
				off := x * 4
				row[off], row[off+1], row[off+2], row[off+3] = c.C, c.M, c.Y, c.K
			default:
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				off := x * dst.Bands
				row[off], row[off+1], row[off+2] = uint8(r>>8), uint8(g>>8), uint8(bl>>8)
			}
		}
		dst.SetRow(x0, y0+y, row)
	}
}
