package tiff

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError reports that the input is not a valid TIFF image and is
// fatal for the whole session.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("tiff: invalid format: %s", string(e))
}

// BadMagicError reports a header whose byte-order mark or magic number
// doesn't match classic TIFF.
type BadMagicError struct {
	Got [4]byte
}

func (e BadMagicError) Error() string {
	return fmt.Sprintf("tiff: bad header magic: % x", e.Got[:])
}

// CyclicIFDError reports that the IFD chain or a SubIFD reference revisits
// an offset already visited earlier in the same walk.
type CyclicIFDError struct {
	Offset int64
}

func (e CyclicIFDError) Error() string {
	return fmt.Sprintf("tiff: cyclic IFD reference at offset %d", e.Offset)
}

// MissingTagError reports that a tag required to decode the current image
// is absent. Other images in the same session remain decodable.
type MissingTagError struct {
	Tag uint16
}

func (e MissingTagError) Error() string {
	return fmt.Sprintf("tiff: missing required tag %s", tagName(e.Tag))
}

// UnsupportedError reports that the input uses a valid but unimplemented
// feature. Fatal for the current image only.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("tiff: unsupported feature: %s", string(e))
}

// UnsupportedCompressionError reports an unhandled Compression id.
type UnsupportedCompressionError struct {
	ID uint16
}

func (e UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("tiff: unsupported compression %d", e.ID)
}

// UnsupportedPhotometricError reports an unhandled PhotometricInterpretation.
type UnsupportedPhotometricError struct {
	ID uint16
}

func (e UnsupportedPhotometricError) Error() string {
	return fmt.Sprintf("tiff: unsupported photometric interpretation %d", e.ID)
}

// UnsupportedLayoutError reports that no destination pixel layout could be
// chosen for the image's descriptor (§4.11).
type UnsupportedLayoutError struct {
	Reason string
}

func (e UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("tiff: unsupported pixel layout: %s", e.Reason)
}

// UnsupportedParamError reports a DecodeParams request the assembler
// cannot honor (non-default region, band subset, subsampling, ...).
type UnsupportedParamError struct {
	Reason string
}

func (e UnsupportedParamError) Error() string {
	return fmt.Sprintf("tiff: unsupported decode parameter: %s", e.Reason)
}

// UnsupportedPredictorError reports a Predictor value this core cannot
// reverse (only prNone and prHorizontal are implemented).
type UnsupportedPredictorError struct {
	Value uint16
}

func (e UnsupportedPredictorError) Error() string {
	return fmt.Sprintf("tiff: unsupported predictor %d", e.Value)
}

// InconsistentMetadataError reports contradictory or malformed metadata,
// e.g. per-sample BitsPerSample values that differ.
type InconsistentMetadataError struct {
	Reason string
}

func (e InconsistentMetadataError) Error() string {
	return fmt.Sprintf("tiff: inconsistent metadata: %s", e.Reason)
}

// CodecError wraps a failure from an underlying streaming decoder (LZW,
// inflate, JPEG). It is fatal for the current image, not the session.
type CodecError struct {
	Kind string
	Err  error
}

func (e CodecError) Error() string {
	return fmt.Sprintf("tiff: %s codec error: %v", e.Kind, e.Err)
}

func (e CodecError) Unwrap() error { return e.Err }

func wrapCodecErr(kind string, err error) error {
	if err == nil {
		return nil
	}
	return CodecError{Kind: kind, Err: errors.Wrapf(err, "%s stream", kind)}
}
