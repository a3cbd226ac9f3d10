// Package tiff decodes Baseline TIFF images: classic and tiled layouts,
// LZW/PackBits/Deflate compression, horizontal prediction, and the
// common photometric interpretations (gray, RGB, palette, CMYK, YCbCr),
// plus JPEG-in-TIFF (old and new style).
package tiff
