package tiff

import (
	"io"
)

// Raster is the "Output contract" destination (§6): a writable raster
// with a known shape and a row-blit method. Unlike the teacher, which
// dispatches on a handful of concrete *hdr.RGB/*hdr.XYZ types, §4.11's
// pixel-layout selection is mechanical and exhaustive, so one concrete
// Raster type serves every supported layout; Layout records which one.
type Raster struct {
	Width, Height  int
	Bands          int
	BytesPerSample int // 1 for every layout except LayoutGray16.
	Layout         ImageType
	Pix            []byte // Row-major, band-interleaved.
}

func newRaster(d *ImageDescriptor) *Raster {
	bands := d.outputBands()
	bps := 1
	if d.Layout == LayoutGray16 {
		bps = 2
	}
	return &Raster{
		Width:          d.Width,
		Height:         d.Height,
		Bands:          bands,
		BytesPerSample: bps,
		Layout:         d.Layout,
		Pix:            make([]byte, d.Width*d.Height*bands*bps),
	}
}

// SetRow blits an already band-interleaved row of `cols` pixels into the
// raster at (x, y), clipping to the raster's bounds. row's sample width
// must match r.BytesPerSample.
func (r *Raster) SetRow(x, y int, row []byte) {
	if y < 0 || y >= r.Height {
		return
	}
	stride := r.Bands * r.BytesPerSample
	cols := len(row) / stride
	maxCols := minInt(cols, r.Width-x)
	if maxCols <= 0 {
		return
	}
	start := (y*r.Width + x) * stride
	copy(r.Pix[start:start+maxCols*stride], row[:maxCols*stride])
}

// assembler drives the raster decode (§4.10's top-level pseudocode) for
// one IFD. It owns the cancellation flag and warning callback for the
// duration of a single Decode call.
type assembler struct {
	in     *input
	dir    *Directory
	desc   *ImageDescriptor
	warn   func(string)
	cancel func() bool
}

// decode runs the strip/tile loop and returns the assembled raster.
func (a *assembler) decode() (*Raster, error) {
	if a.desc.Compression == cJPEG || a.desc.Compression == cJPEGOld {
		return a.decodeJPEG()
	}

	rr, err := newRowReader(a.in.order(), a.desc.BitsPerSample[0])
	if err != nil {
		return nil, err
	}

	dst := newRaster(a.desc)
	g := a.desc.Geometry

	planes := 1
	bandsPerPlane := a.desc.bandsPerPixel()
	if a.desc.Planar == pcPlanar {
		planes = a.desc.bandsPerPixel()
		bandsPerPlane = 1
	}
	tilesPerPlane := g.tilesAcross * g.tilesDown

	var cm colorMap
	if a.desc.Layout == LayoutPalette8 {
		cm, err = buildColorMap(a.desc.ColorMap)
		if err != nil {
			return nil, err
		}
	}

	for plane := 0; plane < planes; plane++ {
		for ty := 0; ty < g.tilesDown; ty++ {
			if a.cancel != nil && a.cancel() {
				return dst, nil
			}
			for tx := 0; tx < g.tilesAcross; tx++ {
				idx := plane*tilesPerPlane + g.index(tx, ty)
				x0, y0, w, h := g.bounds(tx, ty, a.desc.Width, a.desc.Height)
				if w <= 0 || h <= 0 {
					continue
				}

				stream, err := a.openTile(idx)
				if err != nil {
					return nil, err
				}

				if err := a.decodeTileRows(stream, rr, x0, y0, w, h, bandsPerPlane, plane, cm, dst); err != nil {
					return nil, err
				}
			}
		}
	}
	return dst, nil
}

// openTile seeks to the tile's offset and returns a codec stream bounded
// to its byte count (or unbounded to end-of-file when byte counts are
// missing, per §4.2's "recoverable warning" case).
func (a *assembler) openTile(idx int) (streamDecoder, error) {
	g := a.desc.Geometry
	offset := int64(g.offsets[idx])
	var n int64 = 1 << 62
	if !g.byteCountsMissing {
		n = int64(g.byteCounts[idx])
	}
	section := a.in.section(offset, n)
	dec, err := newCodecReader(a.desc.Compression, section)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// decodeTileRows reads, un-predicts, normalizes and blits every row of
// one tile/plane (§4.10's inner loop).
func (a *assembler) decodeTileRows(stream streamDecoder, rr rowReader, x0, y0, w, h, bands, plane int, cm colorMap, dst *Raster) error {
	if a.desc.Layout == LayoutYCbCrAsRGB8 {
		return a.decodeYCbCrTile(stream, x0, y0, w, h, dst)
	}

	mod := uint64(rr.maxSample()) + 1

	for j := 0; j < h; j++ {
		if a.cancel != nil && a.cancel() {
			return nil
		}
		row, err := rr.readRow(stream, w*bands)
		if err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				break // Short strip; stop, leaving the remainder unwritten.
			}
			return wrapCodecErr("row read", err)
		}

		if err := reversePredictor(a.desc.Predictor, row, w, bands, mod); err != nil {
			return err
		}

		out := a.normalizeRow(row, rr.maxSample(), cm)
		a.blitRow(dst, x0, y0+j, plane, out)
	}
	return nil
}

// normalizeRow applies photometric normalization to one decoded row and
// returns the band-interleaved output samples ready to blit: 8-bit for
// every layout except LayoutGray16, which keeps its native 16-bit samples.
func (a *assembler) normalizeRow(row []uint32, maxSample uint32, cm colorMap) []byte {
	switch a.desc.Layout {
	case LayoutGray8, LayoutGrayAlpha8, LayoutRGB8, LayoutRGBA8, LayoutCMYK8:
		if a.desc.Photometric == pWhiteIsZero {
			normalizeWhiteIsZero(row, maxSample)
		}
		return scaleTo8(row, maxSample)
	case LayoutGray16:
		if a.desc.Photometric == pWhiteIsZero {
			normalizeWhiteIsZero(row, maxSample)
		}
		out := make([]byte, len(row)*2)
		for i, v := range row {
			a.in.order().PutUint16(out[2*i:2*i+2], uint16(v))
		}
		return out
	case LayoutPalette8:
		return expandPalette(row, cm)
	default:
		out := make([]byte, len(row))
		for i, v := range row {
			out[i] = uint8(v)
		}
		return out
	}
}

// blitRow writes one normalized row into dst, routing planar-config-2
// data into the correct band of the (already chunky) destination.
func (a *assembler) blitRow(dst *Raster, x0, y0, plane int, row []byte) {
	if a.desc.Planar != pcPlanar {
		dst.SetRow(x0, y0, row)
		return
	}
	// Planar: row holds one band's worth of samples; interleave them into
	// the chunky destination at band offset `plane`.
	stride := dst.Bands * dst.BytesPerSample
	bps := dst.BytesPerSample
	cols := len(row) / bps
	for x := 0; x < cols; x++ {
		px := x0 + x
		if px >= dst.Width || y0 >= dst.Height {
			continue
		}
		dstOff := (y0*dst.Width+px)*stride + plane*bps
		copy(dst.Pix[dstOff:dstOff+bps], row[x*bps:x*bps+bps])
	}
}

// decodeYCbCrTile reads the tile's raw MCU stream and upsamples it to RGB
// (§4.8). It reads one row of MCUs (subV luma rows) at a time, since
// chroma spans subV luma rows and so can't be processed strictly one
// output row at a time.
func (a *assembler) decodeYCbCrTile(stream streamDecoder, x0, y0, w, h int, dst *Raster) error {
	p := a.desc.YCbCr
	mcusAcross := ceilDiv(w, p.subH)
	mcuRows := ceilDiv(h, p.subV)
	mcuSize := p.subH*p.subV + 2

	rowBytes := mcusAcross * mcuSize
	mcuRow := make([]byte, rowBytes)
	outRow := make([]byte, w*3)

	for my := 0; my < mcuRows; my++ {
		if a.cancel != nil && a.cancel() {
			return nil
		}
		if _, err := io.ReadFull(stream, mcuRow); err != nil {
			return nil // Short tile: stop, leaving the remainder unwritten.
		}

		rowsHere := minInt(p.subV, h-my*p.subV)
		for sv := 0; sv < rowsHere; sv++ {
			for mx := 0; mx < mcusAcross; mx++ {
				mcu := mcuRow[mx*mcuSize : (mx+1)*mcuSize]
				n := p.subH * p.subV
				cb, cr := mcu[n], mcu[n+1]
				colsHere := minInt(p.subH, w-mx*p.subH)
				for sh := 0; sh < colsHere; sh++ {
					y := mcu[sv*p.subH+sh]
					r, g, b := p.ycbcrToRGB(y, cb, cr)
					off := (mx*p.subH + sh) * 3
					outRow[off], outRow[off+1], outRow[off+2] = r, g, b
				}
			}
			dst.SetRow(x0, y0+my*p.subV+sv, outRow)
		}
	}
	return nil
}
