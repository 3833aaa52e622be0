// Package mask builds the alpha stencils used by the compositor: rounded
// rectangles, feathered (blurred) variants, and outline rings. Masks are
// plain *image.Alpha so they plug straight into draw.DrawMask.
package mask

import (
	"image"
	"math"
)

// RoundedRect returns a w×h mask that is fully opaque (255) except at the
// four corners, where opacity follows a filled quarter-circle of the given
// radius. The edge is crisp; softening is Feather's job. radius <= 0 yields
// a fully opaque mask.
func RoundedRect(w, h, radius int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))

	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}
	if radius <= 0 {
		for i := range m.Pix {
			m.Pix[i] = 255
		}
		return m
	}

	r := radius
	rr := r * r
	for y := 0; y < h; y++ {
		row := y * m.Stride
		for x := 0; x < w; x++ {
			// Distance to the nearest corner-circle center; pixels outside
			// the four corner squares are always opaque.
			var dx, dy int
			switch {
			case x < r && y < r:
				dx, dy = r-x, r-y
			case x >= w-r && y < r:
				dx, dy = x-(w-1-r), r-y
			case x < r && y >= h-r:
				dx, dy = r-x, y-(h-1-r)
			case x >= w-r && y >= h-r:
				dx, dy = x-(w-1-r), y-(h-1-r)
			default:
				m.Pix[row+x] = 255
				continue
			}
			if dx*dx+dy*dy <= rr {
				m.Pix[row+x] = 255
			}
		}
	}
	return m
}

// Outline returns a stencil covering a width-pixel rounded-rectangle ring
// drawn just inside the w×h bounds: the outer rounded shape minus the same
// shape inset by width.
func Outline(w, h, radius, width int) *image.Alpha {
	outer := RoundedRect(w, h, radius)
	if width <= 0 {
		return outer
	}
	iw, ih := w-2*width, h-2*width
	if iw <= 0 || ih <= 0 {
		return outer
	}
	ir := radius - width
	if ir < 0 {
		ir = 0
	}
	inner := RoundedRect(iw, ih, ir)
	for y := 0; y < ih; y++ {
		srcRow := y * inner.Stride
		dstRow := (y+width)*outer.Stride + width
		for x := 0; x < iw; x++ {
			if inner.Pix[srcRow+x] == 255 {
				outer.Pix[dstRow+x] = 0
			}
		}
	}
	return outer
}

// Feather softens the mask edge with an isotropic Gaussian blur of sigma
// feather, run as two separable passes over the alpha plane. feather <= 0
// returns the mask unchanged. This gradient is what makes the focus region
// fade into the background instead of ending in a visible seam.
func Feather(m *image.Alpha, feather int) *image.Alpha {
	if feather <= 0 {
		return m
	}

	kernel := gaussianKernel(float64(feather))
	radius := len(kernel) / 2
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	tmp := image.NewAlpha(b)
	out := image.NewAlpha(b)

	// Horizontal pass, edges clamped.
	for y := 0; y < h; y++ {
		row := y * m.Stride
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				px := x + k
				if px < 0 {
					px = 0
				} else if px >= w {
					px = w - 1
				}
				sum += kernel[k+radius] * float64(m.Pix[row+px])
			}
			tmp.Pix[y*tmp.Stride+x] = clampByte(sum)
		}
	}

	// Vertical pass.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				py := y + k
				if py < 0 {
					py = 0
				} else if py >= h {
					py = h - 1
				}
				sum += kernel[k+radius] * float64(tmp.Pix[py*tmp.Stride+x])
			}
			out.Pix[y*out.Stride+x] = clampByte(sum)
		}
	}
	return out
}

// gaussianKernel builds a normalized 1D kernel truncated at 3 sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
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
