// Package enhance implements the quality-boost chain applied to the focus
// region: contrast, sharpness, then an unsharp mask. Stages with identity
// parameters are skipped outright so identity settings are exact no-ops.
package enhance

import (
	"image"
	"math"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
	"github.com/disintegration/imaging"
)

// smoothKernel is the 3×3 low-pass used as the reference for the sharpness
// blend (normalized by Convolve3x3).
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// Apply runs the enhancement chain on img and returns a buffer of the same
// dimensions. Order is significant: contrast, then sharpness, then unsharp;
// each stage consumes the previous stage's output. Alpha is left untouched.
func Apply(img *image.NRGBA, s settings.Settings) *image.NRGBA {
	out := adjustContrast(img, s.Contrast)
	out = adjustSharpness(out, s.Sharpness)
	out = unsharpMask(out, s.UnsharpRadius, s.UnsharpPercent, s.UnsharpThreshold)
	return out
}

// adjustContrast scales each channel's deviation from mid-gray (128) by
// factor. 1.0 is identity.
func adjustContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return img
	}
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = clampByte((float64(out.Pix[i])-128)*factor + 128)
		out.Pix[i+1] = clampByte((float64(out.Pix[i+1])-128)*factor + 128)
		out.Pix[i+2] = clampByte((float64(out.Pix[i+2])-128)*factor + 128)
	}
	return out
}

// adjustSharpness blends the image against a smoothed copy of itself:
// out = smooth + factor*(orig - smooth). Factors above 1 amplify local
// contrast at edges; 1.0 is identity.
func adjustSharpness(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return img
	}
	smooth := imaging.Convolve3x3(img, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			o := float64(img.Pix[i+c])
			b := float64(smooth.Pix[i+c])
			out.Pix[i+c] = clampByte(b + factor*(o-b))
		}
	}
	return out
}

// unsharpMask adds percent% of the difference between the image and a
// Gaussian-blurred copy back onto the image, but only where the absolute
// difference exceeds threshold. The threshold keeps near-flat regions from
// having their noise amplified.
func unsharpMask(img *image.NRGBA, radius float64, percent, threshold int) *image.NRGBA {
	if percent <= 0 || radius <= 0 {
		return img
	}
	blurred := imaging.Blur(img, radius)
	amount := float64(percent) / 100
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			o := float64(img.Pix[i+c])
			d := o - float64(blurred.Pix[i+c])
			if math.Abs(d) > float64(threshold) {
				out.Pix[i+c] = clampByte(o + d*amount)
			}
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
