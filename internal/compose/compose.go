// Package compose builds the stylized frame: a blurred full-size background
// with the enhanced center region blended back in through a feathered
// rounded-rectangle mask.
package compose

import (
	"image"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/enhance"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/mask"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// FocusRect computes the centered focus rectangle for a w×h frame. The
// rectangle is always at least 1×1 and wholly contained in the frame for any
// scale in (0, 1].
func FocusRect(w, h int, scale float64) image.Rectangle {
	fw := int(float64(w) * scale)
	fh := int(float64(h) * scale)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	if fw > w {
		fw = w
	}
	if fh > h {
		fh = h
	}
	left := (w - fw) / 2
	top := (h - fh) / 2
	return image.Rect(left, top, left+fw, top+fh)
}

// Frame renders the composite for src: blur the whole frame, crop the focus
// rectangle from the unblurred original, enhance it, and paste it back
// through the feathered mask. The result is NRGBA with fully opaque alpha;
// any source alpha is dropped here since only the final composite carries
// alpha.
func Frame(src image.Image, s settings.Settings) *image.NRGBA {
	base := imaging.Clone(src)
	flatten(base)

	var bg *image.NRGBA
	if s.BlurRadius > 0 {
		bg = imaging.Clone(blur.Gaussian(base, s.BlurRadius))
	} else {
		bg = imaging.Clone(base)
	}

	b := base.Bounds()
	focus := FocusRect(b.Dx(), b.Dy(), s.CenterScale)
	fw, fh := focus.Dx(), focus.Dy()

	fg := imaging.Crop(base, focus)
	fg = enhance.Apply(fg, s)

	// Cap the corner radius so the quarter-circles can never overlap, no
	// matter how large the configured roundness is.
	radius := s.CenterRoundness
	if radius > fw/4 {
		radius = fw / 4
	}
	if radius > fh/4 {
		radius = fh / 4
	}
	m := mask.RoundedRect(fw, fh, radius)
	m = mask.Feather(m, s.Feather)

	// Per-pixel blend: mask 255 selects the enhanced focus pixel, 0 the
	// blurred background, intermediates mix proportionally.
	pasteMasked(bg, fg, m, focus.Min.X, focus.Min.Y)
	return bg
}

// pasteMasked blends src over dst at (left, top) using the mask value as the
// per-pixel weight. Both buffers are opaque, so only RGB is mixed. The
// rounding is exact: blending two equal values always returns that value,
// which keeps the focus/background seam invisible on flat regions.
func pasteMasked(dst, src *image.NRGBA, m *image.Alpha, left, top int) {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	for y := 0; y < h; y++ {
		srcRow := y * src.Stride
		dstRow := (top+y)*dst.Stride + left*4
		maskRow := y * m.Stride
		for x := 0; x < w; x++ {
			a := uint32(m.Pix[maskRow+x])
			if a == 0 {
				continue
			}
			so := srcRow + x*4
			do := dstRow + x*4
			if a == 255 {
				dst.Pix[do] = src.Pix[so]
				dst.Pix[do+1] = src.Pix[so+1]
				dst.Pix[do+2] = src.Pix[so+2]
				continue
			}
			inv := 255 - a
			dst.Pix[do] = uint8((uint32(src.Pix[so])*a + uint32(dst.Pix[do])*inv + 127) / 255)
			dst.Pix[do+1] = uint8((uint32(src.Pix[so+1])*a + uint32(dst.Pix[do+1])*inv + 127) / 255)
			dst.Pix[do+2] = uint8((uint32(src.Pix[so+2])*a + uint32(dst.Pix[do+2])*inv + 127) / 255)
		}
	}
}

// flatten forces the alpha channel opaque in place.
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}
