// Package walk enumerates source images for batch mode and mirrors them
// onto the output tree.
package walk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// supportedExts are the image formats the pipeline accepts.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Pair is one unit of batch work: a source image and its mirrored
// destination path.
type Pair struct {
	Src string
	Dst string
}

// Supported reports whether path has a processable image extension.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Excluded reports whether path matches any exclusion pattern. Patterns are
// matched against both the slashed path relative to root and the bare file
// name, so "logo.*" catches logos at any depth without needing "**/".
func Excluded(path, root string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	name := filepath.Base(path)

	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Pairs walks inputDir recursively, filters supported images through the
// exclusion patterns, and mirrors each relative path onto outputDir. The
// result is sorted by source path so runs are deterministic and no two pairs
// ever share a destination.
func Pairs(inputDir, outputDir string, excludes []string) ([]Pair, error) {
	var sources []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}
		if Excluded(path, inputDir, excludes) {
			return nil
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)

	pairs := make([]Pair, 0, len(sources))
	for _, src := range sources {
		rel, err := filepath.Rel(inputDir, src)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Src: src, Dst: filepath.Join(outputDir, rel)})
	}
	return pairs, nil
}
