package tiff

// A TIFF file contains one or more images. The metadata of each image is
// held in an Image File Directory (IFD): an ordered list of tagged entries
// described on page 14-16 of the TIFF 6.0 specification. An IFD entry is
// 12 bytes:
//
//  - a tag, which describes the signification of the entry,
//  - the data type and length of the entry,
//  - the data itself, or a pointer to it if it is more than 4 bytes.

const (
	leHeader = "II\x2A\x00" // Header for little-endian files.
	beHeader = "MM\x00\x2A" // Header for big-endian files.

	ifdEntrySize = 12 // Length of one IFD entry in bytes.
	classicMagic = 42
)

// Data types (p. 14-16 of the spec).
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
	dtLong8     = 16 // BigTIFF type; decoded if a classic IFD entry declares it.
)

// typeSizes gives the length of one instance of each data type in bytes.
var typeSizes = map[uint16]uint32{
	dtByte:      1,
	dtASCII:     1,
	dtShort:     2,
	dtLong:      4,
	dtRational:  8,
	dtSByte:     1,
	dtUndefined: 1,
	dtSShort:    2,
	dtSLong:     4,
	dtSRational: 8,
	dtFloat:     4,
	dtDouble:    8,
	dtLong8:     8,
}

// Tags (see p. 28-41 of the spec, plus Adobe/EXIF supplements).
const (
	tNewSubfileType            = 254
	tImageWidth                = 256
	tImageLength               = 257
	tBitsPerSample             = 258
	tCompression               = 259
	tPhotometricInterpretation = 262
	tImageDescription          = 270

	tStripOffsets    = 273
	tSamplesPerPixel = 277
	tRowsPerStrip    = 278
	tStripByteCounts = 279

	tTileWidth      = 322
	tTileLength     = 323
	tTileOffsets    = 324
	tTileByteCounts = 325

	tXResolution         = 282
	tYResolution         = 283
	tPlanarConfiguration = 284
	tResolutionUnit      = 296

	tSoftware  = 305
	tDateTime  = 306

	tPredictor    = 317
	tColorMap     = 320
	tSubIFDs      = 330
	tExtraSamples = 338
	tSampleFormat = 339

	tJPEGProc                 = 512
	tJPEGInterchangeFormat    = 513
	tJPEGInterchangeFormatLen = 514
	tJPEGQTables              = 519
	tJPEGDCTables             = 520
	tJPEGACTables             = 521
	tJPEGTables               = 347

	tYCbCrCoefficients = 529
	tYCbCrSubSampling  = 530
	tYCbCrPositioning  = 531

	tExifIFD = 0x8769

	tStonits = 37439
)

// Compression ids (§4.3).
const (
	cNone         = 1
	cCCITT        = 2
	cG3           = 3
	cG4           = 4
	cLZW          = 5
	cJPEGOld      = 6 // Superseded by cJPEG.
	cJPEG         = 7
	cDeflateAdobe = 8 // zlib compression.
	cPackBits     = 32773
	cDeflate      = 32946 // Superseded-by-but-identical-to cDeflateAdobe.
	cJBIG         = 34661
	cJPEG2000     = 34712
)

// Photometric interpretation values (see p. 37 of the spec).
const (
	pWhiteIsZero = 0
	pBlackIsZero = 1
	pRGB         = 2
	pPalette     = 3
	pMask        = 4 // transparency mask, unsupported.
	pCMYK        = 5
	pYCbCr       = 6
	pCIELab      = 8
)

// Values for the tPredictor tag (page 64-65 of the spec).
const (
	prNone          = 1
	prHorizontal    = 2
	prFloatingPoint = 3 // Unsupported: floating-point samples are a non-goal.
)

// Values for the tPlanarConfiguration tag.
const (
	pcChunky = 1
	pcPlanar = 2
)

// Values for the tSampleFormat tag. Only sfUint is in scope.
const (
	sfUint      = 1
	sfInt       = 2
	sfFloat     = 3
	sfUndefined = 4
)

// Values for the tExtraSamples tag.
const (
	esUnspecified       = 0
	esAssociatedAlpha   = 1
	esUnassociatedAlpha = 2
)

// Values for the tYCbCrPositioning tag.
const (
	ycbcrCentered = 1
	ycbcrCosited  = 2
)

// Values for the tJPEGProc tag.
const (
	jpegProcBaseline = 1
	jpegProcLossless = 14
)

// JPEG markers used by the interop path (§4.9), named as in
// garyhouston/jpegsegs: a byte immediately following a 0xFF marker prefix.
const (
	mSOI  = 0xD8
	mEOI  = 0xD9
	mSOF0 = 0xC0
	mDHT  = 0xC4
	mDQT  = 0xDB
	mSOS  = 0xDA
)

// canonicalQTableSize is the byte size of one baseline quantization table
// (64 entries, 8-bit precision). readQuantTable always reads this many
// bytes at each JPEGQTables offset; the distance between offsets is not
// consulted.
const canonicalQTableSize = 64
