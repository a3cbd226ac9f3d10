package tiff

// reversePredictor undoes horizontal differencing in place on one decoded
// row of samples (§4.6). bands is the number of samples per pixel (1 for
// a planar plane, SamplesPerPixel for chunky data). For x from 1 to
// cols-1, for each band b: pixel[x,b] += pixel[x-1,b], wrapping modulo the
// sample's bit width.
//
// Grounded on prl900-gocog/reader.go's predictor loop, generalized from
// its 8/16-bit-only byte arithmetic to every bit width the §4.6 identity
// law requires, by operating on the already-widened []uint32 row rather
// than raw bytes.
func reversePredictor(predictor uint16, row []uint32, cols, bands int, mod uint64) error {
	switch predictor {
	case prNone, 0:
		return nil
	case prHorizontal:
	default:
		return UnsupportedPredictorError{Value: predictor}
	}

	for x := 1; x < cols; x++ {
		for b := 0; b < bands; b++ {
			cur := x*bands + b
			prev := cur - bands
			if cur >= len(row) {
				return nil
			}
			row[cur] = uint32((uint64(row[cur]) + uint64(row[prev])) % mod)
		}
	}
	return nil
}
