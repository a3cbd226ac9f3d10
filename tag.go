package tiff

import "fmt"

// tagName returns the common name of a tag, for error messages.
func tagName(t uint16) string {
	switch t {
	case tNewSubfileType:
		return "NewSubfileType"
	case tImageWidth:
		return "ImageWidth"
	case tImageLength:
		return "ImageLength"
	case tBitsPerSample:
		return "BitsPerSample"
	case tCompression:
		return "Compression"
	case tPhotometricInterpretation:
		return "PhotometricInterpretation"
	case tImageDescription:
		return "ImageDescription"
	case tStripOffsets:
		return "StripOffsets"
	case tSamplesPerPixel:
		return "SamplesPerPixel"
	case tRowsPerStrip:
		return "RowsPerStrip"
	case tStripByteCounts:
		return "StripByteCounts"
	case tXResolution:
		return "XResolution"
	case tYResolution:
		return "YResolution"
	case tPlanarConfiguration:
		return "PlanarConfiguration"
	case tResolutionUnit:
		return "ResolutionUnit"
	case tSoftware:
		return "Software"
	case tDateTime:
		return "DateTime"
	case tPredictor:
		return "Predictor"
	case tColorMap:
		return "ColorMap"
	case tTileWidth:
		return "TileWidth"
	case tTileLength:
		return "TileLength"
	case tTileOffsets:
		return "TileOffsets"
	case tTileByteCounts:
		return "TileByteCounts"
	case tSubIFDs:
		return "SubIFDs"
	case tExtraSamples:
		return "ExtraSamples"
	case tSampleFormat:
		return "SampleFormat"
	case tJPEGProc:
		return "JPEGProc"
	case tJPEGInterchangeFormat:
		return "JPEGInterchangeFormat"
	case tJPEGInterchangeFormatLen:
		return "JPEGInterchangeFormatLength"
	case tJPEGQTables:
		return "JPEGQTables"
	case tJPEGDCTables:
		return "JPEGDCTables"
	case tJPEGACTables:
		return "JPEGACTables"
	case tJPEGTables:
		return "JPEGTables"
	case tYCbCrCoefficients:
		return "YCbCrCoefficients"
	case tYCbCrSubSampling:
		return "YCbCrSubSampling"
	case tYCbCrPositioning:
		return "YCbCrPositioning"
	case tExifIFD:
		return "ExifIFD"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}
