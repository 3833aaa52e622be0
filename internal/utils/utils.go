package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// ShowError prints a formatted error box without exiting. Batch mode uses it
// to report per-image failures while the run continues.
func ShowError(context string, err error) {
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "🚨 ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
}

// Die is the unified exit strategy for unrecoverable failures.
func Die(context string, err error) {
	ShowError(context, err)
	os.Exit(1)
}

// GenerateImageID creates a deterministic hash for a source image file based
// on its path, size, and modification time. A re-exported or touched file
// gets a new ID, which is exactly when it needs re-processing.
func GenerateImageID(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	input := fmt.Sprintf("%s-%d-%d", path, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:]), nil
}
