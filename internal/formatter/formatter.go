// package formatter writes the aggregate track document to disk with collision-safe naming
package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvaidy/spotify-track-info/internal/models"
	"github.com/vvaidy/spotify-track-info/internal/shared"
)

// DefaultOutputName is used when the input was an inline identifier list
// rather than a file.
const DefaultOutputName = "trackinfo.json"

// OutputPath derives the output document path from the input source: the
// input file's stem with a .json extension, or [DefaultOutputName] for inline
// input.
func OutputPath(input string) string {
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		base := filepath.Base(input)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}
	return DefaultOutputName
}

// Relocate moves an existing file at path out of the way by renaming it with
// the first free incrementing numeric suffix (stem_1.json, stem_2.json, ...).
// Returns the new name, or "" when nothing existed at path. Output is never
// written over prior content without relocating it first.
func Relocate(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); err == nil {
			continue
		}
		if err := os.Rename(path, candidate); err != nil {
			return "", fmt.Errorf("failed to relocate existing output: %w", err)
		}
		return candidate, nil
	}
}

// WriteResultSet serializes the result set as indented UTF-8 JSON at path.
// Non-ASCII characters are preserved literally.
func WriteResultSet(path string, rs *models.ResultSet) error {
	data, err := shared.MarshalJSON(rs, true)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
