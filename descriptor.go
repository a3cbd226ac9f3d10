package tiff

// ImageDescriptor is the set of decode-relevant facts derived from one
// IFD (§3 "Image descriptor"). It is recomputed on every Decode call, not
// stored in the directory itself.
type ImageDescriptor struct {
	Width, Height    int
	BitsPerSample    []int
	SamplesPerPixel  int
	Photometric      uint16
	Compression      uint16
	Predictor        uint16
	Planar           uint16
	ExtraSamples     []uint16
	SampleFormat     uint16
	ColorMap         []uint64
	Geometry         tileGeometry
	YCbCr            ycbcrParams
	Layout           ImageType
}

// ImageType names the destination pixel layout chosen by §4.11's
// mechanical, exhaustive classification.
type ImageType int

const (
	LayoutUnknown ImageType = iota
	LayoutGray8
	LayoutGray16
	LayoutGrayAlpha8
	LayoutPalette8
	LayoutRGB8
	LayoutRGBA8
	LayoutCMYK8
	LayoutYCbCrAsRGB8
)

// buildDescriptor validates and derives the ImageDescriptor for dir,
// resolving strip/tile geometry and, for YCbCr images, the chroma
// upsampling parameters.
func buildDescriptor(dir *Directory, warn func(string)) (*ImageDescriptor, error) {
	d := &ImageDescriptor{}

	if !dir.Has(tImageWidth) {
		return nil, MissingTagError{Tag: tImageWidth}
	}
	if !dir.Has(tImageLength) {
		return nil, MissingTagError{Tag: tImageLength}
	}
	d.Width = int(dir.FirstLong(tImageWidth))
	d.Height = int(dir.FirstLong(tImageLength))

	if !dir.Has(tBitsPerSample) {
		return nil, MissingTagError{Tag: tBitsPerSample}
	}
	for _, v := range dir.LongArray(tBitsPerSample) {
		d.BitsPerSample = append(d.BitsPerSample, int(v))
	}
	for _, b := range d.BitsPerSample[1:] {
		if b != d.BitsPerSample[0] {
			return nil, InconsistentMetadataError{Reason: "varying per-sample BitsPerSample"}
		}
	}

	d.SamplesPerPixel = int(dir.FirstLong(tSamplesPerPixel))
	if d.SamplesPerPixel == 0 {
		d.SamplesPerPixel = 1 // Default per spec when absent.
	}

	d.Photometric = uint16(dir.FirstLong(tPhotometricInterpretation))
	d.Compression = uint16(dir.FirstLong(tCompression))
	if d.Compression == 0 {
		d.Compression = cNone
	}
	d.Predictor = uint16(dir.FirstLong(tPredictor))
	if d.Predictor == 0 {
		d.Predictor = prNone
	}
	d.Planar = uint16(dir.FirstLong(tPlanarConfiguration))
	if d.Planar == 0 {
		d.Planar = pcChunky
	}
	d.SampleFormat = uint16(dir.FirstLong(tSampleFormat))
	if d.SampleFormat == 0 {
		d.SampleFormat = sfUint
	}
	if d.SampleFormat != sfUint {
		return nil, UnsupportedError("non-uint SampleFormat")
	}

	if v, ok := dir.Get(tExtraSamples); ok {
		for _, e := range v.AsLongArray() {
			d.ExtraSamples = append(d.ExtraSamples, uint16(e))
		}
	}
	d.ColorMap = dir.LongArray(tColorMap)

	if d.Photometric == pYCbCr {
		params, err := resolveYCbCrParams(dir)
		if err != nil {
			if _, ok := err.(InconsistentMetadataError); ok {
				warn(err.Error())
				params = defaultYCbCrParams()
			} else {
				return nil, err
			}
		}
		d.YCbCr = params
	}

	geo, err := resolveGeometry(dir, d.Width, d.Height, warn)
	if err != nil {
		return nil, err
	}
	d.Geometry = geo

	layout, err := selectImageType(d)
	if err != nil {
		return nil, err
	}
	d.Layout = layout

	return d, nil
}

// selectImageType classifies (photometric, samples-per-pixel,
// bits-per-sample, planar config, extra samples) into a destination pixel
// layout, per §4.11: "every combination is classified as supported layout
// or error."
func selectImageType(d *ImageDescriptor) (ImageType, error) {
	bps := d.BitsPerSample[0]

	switch d.Photometric {
	case pWhiteIsZero, pBlackIsZero:
		switch {
		case d.SamplesPerPixel == 1 && bps <= 8:
			return LayoutGray8, nil
		case d.SamplesPerPixel == 1 && bps <= 16:
			return LayoutGray16, nil
		case d.SamplesPerPixel == 2 && bps <= 8 && len(d.ExtraSamples) == 1:
			return LayoutGrayAlpha8, nil
		}
	case pRGB:
		switch {
		case d.SamplesPerPixel == 3 && bps == 8:
			return LayoutRGB8, nil
		case d.SamplesPerPixel == 4 && bps == 8 && len(d.ExtraSamples) == 1:
			return LayoutRGBA8, nil
		}
	case pPalette:
		if d.SamplesPerPixel == 1 && bps <= 16 && len(d.ColorMap) > 0 {
			return LayoutPalette8, nil
		}
	case pCMYK:
		if d.SamplesPerPixel == 4 && bps == 8 {
			return LayoutCMYK8, nil
		}
	case pYCbCr:
		if d.SamplesPerPixel == 3 && bps == 8 {
			return LayoutYCbCrAsRGB8, nil
		}
	default:
		return LayoutUnknown, UnsupportedPhotometricError{ID: d.Photometric}
	}
	return LayoutUnknown, UnsupportedLayoutError{Reason: "no layout for this photometric/samples/bits/extra-samples combination"}
}

// bandsPerPixel returns the number of bands the transfer-type row reader
// must decode per pixel (source bands, before any photometric expansion).
func (d *ImageDescriptor) bandsPerPixel() int {
	return d.SamplesPerPixel
}

// outputBands returns the number of bands the destination Raster carries
// per pixel, after photometric normalization.
func (d *ImageDescriptor) outputBands() int {
	switch d.Layout {
	case LayoutPalette8, LayoutRGB8, LayoutYCbCrAsRGB8:
		return 3
	case LayoutRGBA8:
		return 4
	case LayoutGrayAlpha8:
		return 2
	case LayoutCMYK8:
		return 4
	default:
		return 1
	}
}
