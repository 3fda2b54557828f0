// =============================================================================
// SAF-T Financial - File Utilities
// =============================================================================
//
// This module provides the file-system helpers the CLI commands share:
//   - Output directory management
//   - Output file naming
//   - Atomic-ish output writing (temp file + rename)
//
// The library packages under pkg/saft and internal/ never touch the file
// system; everything that does lives here or in cmd/.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format
// string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//     {name}      - Base name of the input file, extension stripped
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//   - inputPath: The input file the output derives from.
//   - extension: The extension to append, with leading dot.
//
// EXAMPLE:
//
//	format: "{name}_{uuid}", inputPath: "books/2024.xml", extension: ".html"
//	output: "2024_a1b2c3d4-e5f6-7890-abcd-ef1234567890.html"
func GenerateOutputFileName(format, inputPath, extension string) string {
	now := time.Now()

	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	replacements := map[string]string{
		"{name}":      base,
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteOutputFile writes data to path via a temp file in the same
// directory, so readers never observe a half-written file.
func WriteOutputFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".saft-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
