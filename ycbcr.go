package tiff

import "image/color"

// ycbcrParams holds the subsampling, positioning and coefficients read
// from the IFD for PhotometricInterpretation 6 (§4.8).
type ycbcrParams struct {
	subH, subV int // YCbCrSubSampling; default [2,2].
	positioning  uint16
	lr, lg, lb   float64 // YCbCrCoefficients; default CCIR 601-1.
}

func defaultYCbCrParams() ycbcrParams {
	return ycbcrParams{subH: 2, subV: 2, positioning: ycbcrCentered, lr: 0.299, lg: 0.587, lb: 0.114}
}

func resolveYCbCrParams(dir *Directory) (ycbcrParams, error) {
	p := defaultYCbCrParams()

	if v, ok := dir.Get(tYCbCrSubSampling); ok {
		a := v.AsLongArray()
		if len(a) != 2 {
			return p, InconsistentMetadataError{Reason: "YCbCrSubSampling must have 2 values"}
		}
		p.subH, p.subV = int(a[0]), int(a[1])
		if p.subH < p.subV || !validSubsample(p.subH) || !validSubsample(p.subV) {
			return p, InconsistentMetadataError{Reason: "unusual YCbCr subsampling"}
		}
	}
	if v, ok := dir.Get(tYCbCrPositioning); ok {
		p.positioning = uint16(v.First())
	}
	if v, ok := dir.Get(tYCbCrCoefficients); ok && v.Count == 3 {
		p.lr = v.Float64(0)
		p.lg = v.Float64(1)
		p.lb = v.Float64(2)
	}
	return p, nil
}

func validSubsample(n int) bool { return n == 1 || n == 2 || n == 4 }

// ycbcrToRGB converts one (Y, Cb, Cr) triplet to RGB using the resolved
// coefficients (§4.8):
//
//	R = Y + 2*(1-Lr)*(Cr-128)
//	B = Y + 2*(1-Lb)*(Cb-128)
//	G = (Y - Lr*R - Lb*B) / Lg
//
// clamped to 0..255. The default-coefficient case (CCIR 601-1) uses
// image/color.YCbCrToRGB directly, since no third-party YCbCr conversion
// exists anywhere in the retrieval pack. It is the same transform at the
// default coefficients, but computed in fixed point with rounding, while
// the explicit formula below truncates, so the two can differ by 1 per
// channel.
func (p ycbcrParams) ycbcrToRGB(y, cb, cr uint8) (r, g, b uint8) {
	if p.lr == 0.299 && p.lg == 0.587 && p.lb == 0.114 {
		return color.YCbCrToRGB(y, cb, cr)
	}

	fy, fcb, fcr := float64(y), float64(cb)-128, float64(cr)-128
	fr := fy + 2*(1-p.lr)*fcr
	fb := fy + 2*(1-p.lb)*fcb
	fg := (fy - p.lr*fr - p.lb*fb) / p.lg

	return clamp8(fr), clamp8(fg), clamp8(fb)
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// upsampleMCU expands one MCU block (subH x subV luma samples, 1 Cb, 1 Cr)
// into subH*subV RGB pixels written to out, which must be at least
// subH*subV*3 bytes. The MCU layout is subH*subV Y samples in row-major
// order within the block, followed by one Cb, then one Cr (§4.8).
func (p ycbcrParams) upsampleMCU(mcu []byte, out []byte) {
	n := p.subH * p.subV
	cb, cr := mcu[n], mcu[n+1]
	for i := 0; i < n; i++ {
		r, g, b := p.ycbcrToRGB(mcu[i], cb, cr)
		out[i*3+0], out[i*3+1], out[i*3+2] = r, g, b
	}
}
