package settings

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PlateStyle selects how the logo plate background is rendered.
// It is a closed set; unknown tags are rejected at configuration time.
type PlateStyle string

const (
	PlateLight   PlateStyle = "light"
	PlateDark    PlateStyle = "dark"
	PlateFrosted PlateStyle = "frosted"
)

// ParsePlateStyle validates a user-supplied style tag.
func ParsePlateStyle(s string) (PlateStyle, error) {
	switch PlateStyle(s) {
	case PlateLight, PlateDark, PlateFrosted:
		return PlateStyle(s), nil
	}
	return "", fmt.Errorf("invalid plate style %q: must be one of light, dark, frosted", s)
}

// Settings holds every tunable of the compositing pipeline. It is built once
// per run and read-only afterwards; no pipeline stage mutates it.
type Settings struct {
	BlurRadius      float64 // background Gaussian sigma
	CenterScale     float64 // fraction of width/height kept sharp
	CenterRoundness int     // px corner radius of the focus mask
	Feather         int     // px, mask edge softening

	Contrast         float64
	Sharpness        float64
	UnsharpRadius    float64
	UnsharpPercent   int
	UnsharpThreshold int

	LogoScale   float64 // fraction of frame width
	LogoOpacity float64
	LogoPadding int // px between plate and frame edge

	PlatePadding     int // px between logo and plate edge
	PlateAlpha       uint8
	PlateStyle       PlateStyle
	PlateBlurRadius  float64 // frosted style only
	PlateTintAlpha   uint8   // frosted style only, higher = darker
	PlateBorderAlpha uint8
	PlateRadius      int // px corner radius of the plate, independent of CenterRoundness
}

// Default returns the stock look.
func Default() Settings {
	return Settings{
		BlurRadius:       18.0,
		CenterScale:      0.72,
		CenterRoundness:  28,
		Feather:          18,
		Contrast:         1.06,
		Sharpness:        1.10,
		UnsharpRadius:    1.4,
		UnsharpPercent:   140,
		UnsharpThreshold: 2,
		LogoScale:        0.13,
		LogoOpacity:      0.88,
		LogoPadding:      24,
		PlatePadding:     14,
		PlateAlpha:       215,
		PlateStyle:       PlateFrosted,
		PlateBlurRadius:  10.0,
		PlateTintAlpha:   110,
		PlateBorderAlpha: 210,
		PlateRadius:      18,
	}
}

// Validate rejects configurations that cannot produce a valid composite.
// Called before any image is touched.
func (s Settings) Validate() error {
	if s.CenterScale <= 0 || s.CenterScale > 1.0 {
		return fmt.Errorf("center scale must be in (0, 1], got %g", s.CenterScale)
	}
	if s.BlurRadius < 0 {
		return fmt.Errorf("blur radius must be >= 0, got %g", s.BlurRadius)
	}
	if s.Feather < 0 {
		return fmt.Errorf("feather must be >= 0, got %d", s.Feather)
	}
	if s.LogoScale <= 0 || s.LogoScale > 1.0 {
		return fmt.Errorf("logo scale must be in (0, 1], got %g", s.LogoScale)
	}
	if s.LogoOpacity < 0 || s.LogoOpacity > 1.0 {
		return fmt.Errorf("logo opacity must be in [0, 1], got %g", s.LogoOpacity)
	}
	if s.LogoPadding < 0 || s.PlatePadding < 0 {
		return fmt.Errorf("paddings must be >= 0")
	}
	if s.PlateBlurRadius < 0 {
		return fmt.Errorf("plate blur radius must be >= 0, got %g", s.PlateBlurRadius)
	}
	if _, err := ParsePlateStyle(string(s.PlateStyle)); err != nil {
		return err
	}
	return nil
}

// Fingerprint returns a stable hash of every tunable. Two runs with the same
// fingerprint produce pixel-identical output for the same source, which is
// what lets the processing ledger skip unchanged work.
func (s Settings) Fingerprint() string {
	canonical := fmt.Sprintf(
		"blur=%g;scale=%g;round=%d;feather=%d;contrast=%g;sharp=%g;ur=%g;up=%d;ut=%d;ls=%g;lo=%g;lp=%d;pp=%d;pa=%d;ps=%s;pb=%g;pt=%d;pba=%d;pr=%d",
		s.BlurRadius, s.CenterScale, s.CenterRoundness, s.Feather,
		s.Contrast, s.Sharpness, s.UnsharpRadius, s.UnsharpPercent, s.UnsharpThreshold,
		s.LogoScale, s.LogoOpacity, s.LogoPadding,
		s.PlatePadding, s.PlateAlpha, s.PlateStyle, s.PlateBlurRadius,
		s.PlateTintAlpha, s.PlateBorderAlpha, s.PlateRadius,
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
