package tiff

import (
	"image"
	"io"
)

// Session is an opened TIFF file: the parsed IFD chain plus the
// cancellation flag and warning callback shared across Decode calls
// (§6 "Decoder session API").
type Session struct {
	in     *input
	dirs   *CompoundDirectory
	onWarn func(string)
	cancel bool
}

// Open parses the TIFF header and IFD chain from r without decoding any
// pixel data (§4.1). r must support random access; a bytes.Reader or
// os.File satisfies this.
func Open(r io.ReaderAt) (*Session, error) {
	s := &Session{in: newInput(r)}
	w := newWalker(s.in, s.warn)
	dirs, err := w.walk()
	if err != nil {
		return nil, err
	}
	s.dirs = dirs
	return s, nil
}

// OnWarning installs a callback invoked for every recoverable condition
// encountered while resolving an image's metadata or decoding it (§7):
// malformed-but-recoverable metadata, missing byte counts, conflicting
// strip/tile tags, and similar. Nil (the default) discards warnings.
// Warnings raised while Open walks the IFD chain (such as entries of an
// unknown type being skipped) occur before any callback can be installed
// and are discarded.
func (s *Session) OnWarning(f func(string)) { s.onWarn = f }

func (s *Session) warn(msg string) {
	if s.onWarn != nil {
		s.onWarn(msg)
	}
}

// NumImages returns the number of top-level images (IFD0, IFD1, ...) in
// the file.
func (s *Session) NumImages() int { return s.dirs.Len() }

func (s *Session) dir(index int) (*Directory, error) {
	if index < 0 || index >= s.dirs.Len() {
		return nil, UnsupportedParamError{Reason: "image index out of range"}
	}
	return s.dirs.Directories[index], nil
}

// Width returns the pixel width of image index.
func (s *Session) Width(index int) (int, error) {
	d, err := s.dir(index)
	if err != nil {
		return 0, err
	}
	return int(d.FirstLong(tImageWidth)), nil
}

// Height returns the pixel height of image index.
func (s *Session) Height(index int) (int, error) {
	d, err := s.dir(index)
	if err != nil {
		return 0, err
	}
	return int(d.FirstLong(tImageLength)), nil
}

// ImageDescriptor resolves and returns the decode-relevant metadata for
// image index (§3), without decoding any pixel data.
func (s *Session) ImageDescriptor(index int) (*ImageDescriptor, error) {
	d, err := s.dir(index)
	if err != nil {
		return nil, err
	}
	return buildDescriptor(d, s.warn)
}

// Cancel aborts any Decode call in progress and any started afterward.
// A cancelled Decode returns the Raster filled so far with no error
// (§6): cancellation is not treated as a failure.
func (s *Session) Cancel() { s.cancel = true }

// DecodeParams narrows a Decode call. Only the zero value of each field
// is currently honored; any other value rejects the call with
// UnsupportedParamError rather than silently decoding something other
// than what was asked for (§6, §7).
type DecodeParams struct {
	Region    *image.Rectangle // Non-nil requests a sub-region; unsupported.
	Bands     []int            // Non-nil requests a band subset; unsupported.
	Subsample int               // >1 requests output subsampling; unsupported.
	Dest      *Raster          // Non-nil requests reuse of a caller Raster; unsupported.
}

func validateParams(p *DecodeParams) error {
	if p == nil {
		return nil
	}
	if p.Region != nil {
		return UnsupportedParamError{Reason: "region subsetting"}
	}
	if p.Bands != nil {
		return UnsupportedParamError{Reason: "band subsetting"}
	}
	if p.Subsample > 1 {
		return UnsupportedParamError{Reason: "output subsampling"}
	}
	if p.Dest != nil {
		return UnsupportedParamError{Reason: "destination raster reuse"}
	}
	return nil
}

// Decode decodes image index into a freshly allocated Raster, honoring
// params (§6). Pass a nil params for the default (whole image, every
// band, no subsampling).
func (s *Session) Decode(index int, params *DecodeParams) (*Raster, error) {
	d, err := s.dir(index)
	if err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	desc, err := buildDescriptor(d, s.warn)
	if err != nil {
		return nil, err
	}

	a := &assembler{
		in:     s.in,
		dir:    d,
		desc:   desc,
		warn:   s.warn,
		cancel: func() bool { return s.cancel },
	}
	return a.decode()
}
