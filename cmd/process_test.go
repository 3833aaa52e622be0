package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/settings"
)

func defaultOpts() Options {
	d := settings.Default()
	return Options{
		DryRunLimit:    30,
		NumEngines:     1,
		Blur:           d.BlurRadius,
		CenterScale:    d.CenterScale,
		Feather:        d.Feather,
		LogoScale:      d.LogoScale,
		PlateStyle:     string(d.PlateStyle),
		PlateBlur:      d.PlateBlurRadius,
		PlateTintAlpha: int(d.PlateTintAlpha),
	}
}

func TestBuildSettingsDefaults(t *testing.T) {
	s, err := buildSettings(defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if s != settings.Default() {
		t.Errorf("buildSettings with stock flags = %+v, want defaults", s)
	}
}

func TestBuildSettingsOverrides(t *testing.T) {
	opts := defaultOpts()
	opts.Blur = 5
	opts.CenterScale = 0.5
	opts.PlateStyle = "dark"
	opts.PlateTintAlpha = 200

	s, err := buildSettings(opts)
	if err != nil {
		t.Fatal(err)
	}
	if s.BlurRadius != 5 || s.CenterScale != 0.5 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.PlateStyle != settings.PlateDark {
		t.Errorf("plate style = %q, want dark", s.PlateStyle)
	}
	if s.PlateTintAlpha != 200 {
		t.Errorf("tint alpha = %d, want 200", s.PlateTintAlpha)
	}
}

func TestBuildSettingsRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"UnknownPlateStyle", func(o *Options) { o.PlateStyle = "glass" }},
		{"TintAlphaOutOfRange", func(o *Options) { o.PlateTintAlpha = 300 }},
		{"NegativeTintAlpha", func(o *Options) { o.PlateTintAlpha = -1 }},
		{"CenterScaleAboveOne", func(o *Options) { o.CenterScale = 1.5 }},
		{"NegativeBlur", func(o *Options) { o.Blur = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOpts()
			tt.mutate(&opts)
			if _, err := buildSettings(opts); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestValidateProcessFlagsModes(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.png")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"NoMode", func(o *Options) {}, true},
		{"SingleMode", func(o *Options) {
			o.InputPath = file
			o.OutputPath = filepath.Join(dir, "out.png")
		}, false},
		{"BatchMode", func(o *Options) {
			o.InputDir = dir
			o.OutputDir = filepath.Join(dir, "out")
		}, false},
		{"BothModes", func(o *Options) {
			o.InputPath = file
			o.OutputPath = "out.png"
			o.InputDir = dir
			o.OutputDir = "out"
		}, true},
		{"SingleMissingInput", func(o *Options) {
			o.InputPath = filepath.Join(dir, "nope.png")
			o.OutputPath = "out.png"
		}, true},
		{"SingleInputIsDirectory", func(o *Options) {
			o.InputPath = dir
			o.OutputPath = "out.png"
		}, true},
		{"BatchMissingDir", func(o *Options) {
			o.InputDir = filepath.Join(dir, "nope")
			o.OutputDir = "out"
		}, true},
		{"BatchInputDirIsFile", func(o *Options) {
			o.InputDir = file
			o.OutputDir = "out"
		}, true},
		{"TrackWithDryRun", func(o *Options) {
			o.InputDir = dir
			o.OutputDir = "out"
			o.Track = true
			o.DryRun = true
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOpts()
			tt.mutate(&opts)
			err := validateProcessFlags(&opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProcessFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProcessFlagsClamps(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOpts()
	opts.InputDir = dir
	opts.OutputDir = filepath.Join(dir, "out")
	opts.NumEngines = 0
	opts.DryRunLimit = -5

	if err := validateProcessFlags(&opts); err != nil {
		t.Fatal(err)
	}
	if opts.NumEngines != 1 {
		t.Errorf("engines clamped to %d, want 1", opts.NumEngines)
	}
	if opts.DryRunLimit != 1 {
		t.Errorf("dry-run limit clamped to %d, want 1", opts.DryRunLimit)
	}
}
