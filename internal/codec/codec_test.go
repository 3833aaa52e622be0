package codec

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			img.Pix[i] = uint8(x * 7)
			img.Pix[i+1] = uint8(y * 11)
			img.Pix[i+2] = 90
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestEncodeDecodePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	src := testImage(20, 12)
	if err := Encode(path, src); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(path)
	if err != nil {
		t.Fatal(err)
	}
	b := got.Bounds()
	if b.Dx() != 20 || b.Dy() != 12 {
		t.Fatalf("decoded %dx%d, want 20x12", b.Dx(), b.Dy())
	}
	// PNG is lossless: spot-check a pixel.
	r, g, bl, _ := got.At(3, 5).RGBA()
	if uint8(r>>8) != 21 || uint8(g>>8) != 55 || uint8(bl>>8) != 90 {
		t.Errorf("pixel (3,5) = (%d,%d,%d), want (21,55,90)", r>>8, g>>8, bl>>8)
	}
}

func TestEncodeDecodeJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Encode(path, testImage(20, 12)); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 20 || got.Bounds().Dy() != 12 {
		t.Fatalf("decoded %v, want 20x12", got.Bounds())
	}
}

func TestDimensionsReadsHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dims.png")
	if err := Encode(path, testImage(33, 17)); err != nil {
		t.Fatal(err)
	}
	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatal(err)
	}
	if w != 33 || h != 17 {
		t.Errorf("Dimensions = %dx%d, want 33x17", w, h)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDecodeGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("this is not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); err == nil {
		t.Error("expected a decode error for garbage input")
	}
}
