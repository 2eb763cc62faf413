package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChartWriter saves chart answers as PNG files inside a single directory.
type ChartWriter struct {
	Dir string // absolute path
}

func NewChartWriter(dir string) (*ChartWriter, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("could not determine absolute path for %s: %w", dir, err)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("could not create chart directory: %w", err)
	}
	return &ChartWriter{Dir: absPath}, nil
}

// sanitizeFilename keeps the file inside Dir, so "../../x.png" becomes Dir/x.png.
func (w *ChartWriter) sanitizeFilename(filename string) (string, error) {
	if !strings.HasSuffix(filename, ".png") {
		return "", fmt.Errorf("filename must end with .png")
	}
	cleanPath := filepath.Join(w.Dir, filepath.Base(filename))
	if filepath.Dir(cleanPath) != filepath.Clean(w.Dir) {
		return "", fmt.Errorf("invalid filename, attempts to escape chart directory")
	}
	return cleanPath, nil
}

// Write stores img under the kind's name and returns the path written.
func (w *ChartWriter) Write(kind QuestionKind, img []byte) (string, error) {
	if len(img) == 0 {
		return "", fmt.Errorf("no image for %s", kind)
	}
	path, err := w.sanitizeFilename(kind.String() + ".png")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return "", fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return path, nil
}
