package compose

import (
	"image"
	"testing"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
)

func TestFocusRectContainment(t *testing.T) {
	scales := []float64{0.01, 0.1, 0.5, 0.72, 0.99, 1.0}
	for w := 4; w <= 64; w += 7 {
		for h := 4; h <= 64; h += 7 {
			for _, scale := range scales {
				r := FocusRect(w, h, scale)
				if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > w || r.Max.Y > h {
					t.Fatalf("focus rect %v escapes %dx%d at scale %g", r, w, h, scale)
				}
				if r.Dx() < 1 || r.Dy() < 1 {
					t.Fatalf("focus rect %v degenerate at %dx%d scale %g", r, w, h, scale)
				}
			}
		}
	}
}

func TestFocusRectGeometry(t *testing.T) {
	// 400x300 at the default scale: fw=288, fh=216, centered at (56,42).
	r := FocusRect(400, 300, 0.72)
	want := image.Rect(56, 42, 56+288, 42+216)
	if r != want {
		t.Errorf("FocusRect(400,300,0.72) = %v, want %v", r, want)
	}
}

// TestFrameUniformField is the constant-field regression check: blurring a
// uniform image is the identity and enhancement does not move mid-gray, so
// the focus region and the background must come out numerically equal.
func TestFrameUniformField(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 255
	}

	out := Frame(src, settings.Default())

	b := out.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("output is %dx%d, want 400x300", b.Dx(), b.Dy())
	}

	// Every pixel identical to the first, alpha fully opaque.
	r0, g0, b0 := out.Pix[0], out.Pix[1], out.Pix[2]
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != r0 || out.Pix[i+1] != g0 || out.Pix[i+2] != b0 {
			t.Fatalf("pixel at offset %d = (%d,%d,%d), want (%d,%d,%d): center and background diverged on a uniform input",
				i, out.Pix[i], out.Pix[i+1], out.Pix[i+2], r0, g0, b0)
		}
		if out.Pix[i+3] != 255 {
			t.Fatalf("alpha at offset %d = %d, want 255", i+3, out.Pix[i+3])
		}
	}
}

func TestFrameDropsSourceAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 10, 200, 30, 17
	}

	out := Frame(src, settings.Default())
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			t.Fatalf("alpha at offset %d = %d, want 255", i, out.Pix[i])
		}
	}
}

func TestFrameTinyImage(t *testing.T) {
	// Degenerate geometry must clamp, not crash.
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}
	out := Frame(src, settings.Default())
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 4 {
		t.Errorf("tiny frame resized to %v", out.Bounds())
	}
}
