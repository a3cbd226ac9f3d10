package tiff

// tileGeometry is the unified strip/tile abstraction of §3/§4.2: a
// rectangular tiling of the image. Strips are modeled as tiles of width
// equal to the image width and height RowsPerStrip.
type tileGeometry struct {
	tileWidth, tileHeight   int
	tilesAcross, tilesDown  int
	offsets, byteCounts     []uint64
	byteCountsMissing       bool
}

// index returns the row-major tile index for tile column/row (i, j).
func (g tileGeometry) index(tx, ty int) int { return ty*g.tilesAcross + tx }

// bounds returns the valid pixel region covered by tile (tx, ty), clipped
// to the image's actual width/height for edge tiles.
func (g tileGeometry) bounds(tx, ty, imgWidth, imgHeight int) (x0, y0, w, h int) {
	x0 = tx * g.tileWidth
	y0 = ty * g.tileHeight
	w = minInt(g.tileWidth, imgWidth-x0)
	h = minInt(g.tileHeight, imgHeight-y0)
	return
}

// resolveGeometry reads ImageWidth/ImageLength plus either the tile tags
// or the strip tags (tile tags win when both are present, per §4.2) and
// builds the unified tile geometry.
func resolveGeometry(dir *Directory, imgWidth, imgHeight int, warn func(string)) (tileGeometry, error) {
	hasTiles := dir.Has(tTileWidth) && dir.Has(tTileLength)
	hasStrips := dir.Has(tStripOffsets)

	if hasTiles && hasStrips {
		warn("both strip and tile tags present; using tile tags")
	}

	var g tileGeometry
	if hasTiles {
		g.tileWidth = int(dir.FirstLong(tTileWidth))
		g.tileHeight = int(dir.FirstLong(tTileLength))
		if g.tileWidth <= 0 || g.tileHeight <= 0 {
			return g, InconsistentMetadataError{Reason: "zero tile dimension"}
		}
		g.tilesAcross = ceilDiv(imgWidth, g.tileWidth)
		g.tilesDown = ceilDiv(imgHeight, g.tileHeight)
		g.offsets = dir.LongArray(tTileOffsets)
		g.byteCounts = dir.LongArray(tTileByteCounts)
	} else {
		rowsPerStrip := int(dir.FirstLong(tRowsPerStrip))
		if rowsPerStrip <= 0 {
			rowsPerStrip = imgHeight
		}
		g.tileWidth = imgWidth
		g.tileHeight = rowsPerStrip
		g.tilesAcross = 1
		g.tilesDown = ceilDiv(imgHeight, rowsPerStrip)
		g.offsets = dir.LongArray(tStripOffsets)
		g.byteCounts = dir.LongArray(tStripByteCounts)
	}

	if len(g.byteCounts) == 0 {
		warn("missing byte counts; strips/tiles will be read unbounded")
		g.byteCountsMissing = true
	}

	n := g.tilesAcross * g.tilesDown
	if len(g.offsets) < n {
		return g, FormatError("inconsistent strip/tile offset count")
	}
	if !g.byteCountsMissing && len(g.byteCounts) < n {
		return g, FormatError("inconsistent strip/tile byte-count count")
	}
	return g, nil
}
