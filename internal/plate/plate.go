// Package plate renders the logo plate: a rounded panel anchored to the
// bottom-right corner of the frame, in one of three styles (light, dark,
// frosted), with the logo alpha-composited on top.
package plate

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/mask"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
	"github.com/disintegration/imaging"
)

const borderWidth = 2

// Overlay composites the logo plate onto a copy of frame and returns the
// copy. A nil logo is not an error: the frame is returned unchanged. The
// frame itself is never mutated.
func Overlay(frame *image.NRGBA, logo image.Image, s settings.Settings) *image.NRGBA {
	if logo == nil {
		return frame
	}

	fb := frame.Bounds()
	fw, fh := fb.Dx(), fb.Dy()

	scaled := resizeLogo(logo, fw, s.LogoScale)
	if s.LogoOpacity < 1.0 {
		applyOpacity(scaled, s.LogoOpacity)
	}

	lb := scaled.Bounds()
	plateW := lb.Dx() + 2*s.PlatePadding
	plateH := lb.Dy() + 2*s.PlatePadding

	// The plate cannot fit at all: leave the frame alone rather than
	// rendering a clipped panel.
	if plateW > fw || plateH > fh {
		return frame
	}

	x := fw - plateW - s.LogoPadding
	y := fh - plateH - s.LogoPadding
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	p := background(frame, x, y, plateW, plateH, s)

	// Rounded outline on top of the plate background, every style.
	ring := mask.Outline(plateW, plateH, s.PlateRadius, borderWidth)
	border := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: s.PlateBorderAlpha})
	draw.DrawMask(p, p.Bounds(), border, image.Point{}, ring, image.Point{}, draw.Over)

	// Logo alpha-over onto the plate.
	logoRect := image.Rect(s.PlatePadding, s.PlatePadding, s.PlatePadding+lb.Dx(), s.PlatePadding+lb.Dy())
	draw.Draw(p, logoRect, scaled, lb.Min, draw.Over)

	// Plate alpha-over onto a copy of the frame.
	out := imaging.Clone(frame)
	draw.Draw(out, image.Rect(x, y, x+plateW, y+plateH), p, image.Point{}, draw.Over)
	return out
}

// background builds the plate backdrop per style. Every style is clipped to
// the rounded plate shape; outside it the plate is transparent.
func background(frame *image.NRGBA, x, y, w, h int, s settings.Settings) *image.NRGBA {
	switch s.PlateStyle {
	case settings.PlateDark:
		return solid(w, h, color.NRGBA{A: s.PlateAlpha}, s.PlateRadius)
	case settings.PlateLight:
		return solid(w, h, color.NRGBA{R: 255, G: 255, B: 255, A: s.PlateAlpha}, s.PlateRadius)
	default:
		return frosted(frame, x, y, w, h, s)
	}
}

// solid renders a single-color rounded panel.
func solid(w, h int, c color.NRGBA, radius int) *image.NRGBA {
	clip := mask.RoundedRect(w, h, radius)
	p := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(p, p.Bounds(), image.NewUniform(c), image.Point{}, clip, image.Point{}, draw.Src)
	return p
}

// frosted blurs the frame region the plate will cover, darkens it with a
// black tint, and clips the result to the rounded plate shape so it reads as
// a glass panel over the live background.
func frosted(frame *image.NRGBA, x, y, w, h int, s settings.Settings) *image.NRGBA {
	region := imaging.Crop(frame, image.Rect(x, y, x+w, y+h))
	if s.PlateBlurRadius > 0 {
		region = imaging.Blur(region, s.PlateBlurRadius)
	}

	tint := image.NewUniform(color.NRGBA{A: s.PlateTintAlpha})
	draw.Draw(region, region.Bounds(), tint, image.Point{}, draw.Over)

	clip := mask.RoundedRect(w, h, s.PlateRadius)
	clipped := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.DrawMask(clipped, clipped.Bounds(), region, image.Point{}, clip, image.Point{}, draw.Src)
	return clipped
}

// resizeLogo scales the logo, preserving aspect ratio, so its longer side is
// max(48, floor(frameW*scale)). The 48 px floor keeps logos legible on very
// narrow frames.
func resizeLogo(logo image.Image, frameW int, scale float64) *image.NRGBA {
	target := int(float64(frameW) * scale)
	if target < 48 {
		target = 48
	}
	b := logo.Bounds()
	if b.Dx() >= b.Dy() {
		return imaging.Resize(logo, target, 0, imaging.Lanczos)
	}
	return imaging.Resize(logo, 0, target, imaging.Lanczos)
}

// applyOpacity scales the alpha channel multiplicatively, preserving the
// relative transparency within the logo asset itself.
func applyOpacity(img *image.NRGBA, opacity float64) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i]) * opacity)
	}
}
