// Package pipeline ties the stages together for a single image: decode,
// compose the frame, overlay the logo plate, encode. There is no state
// shared between images; every buffer lives and dies inside ProcessOne.
package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/codec"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/compose"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/plate"
	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
)

// ProcessOne transforms the image at inputPath and writes the composite to
// outputPath, creating parent directories as needed. logoPath may be empty
// or point at a missing file; both mean "no logo". A logo file that exists
// but cannot be decoded is an error.
func ProcessOne(inputPath, outputPath, logoPath string, s settings.Settings) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	src, err := codec.Decode(inputPath)
	if err != nil {
		return err
	}

	out := compose.Frame(src, s)

	logo, err := loadLogo(logoPath)
	if err != nil {
		return err
	}
	if logo != nil {
		out = plate.Overlay(out, logo, s)
	}

	return codec.Encode(outputPath, out)
}

// loadLogo returns (nil, nil) when no logo was requested or the file does
// not exist.
func loadLogo(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	logo, err := codec.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	return logo, nil
}
