// Utilities for reading and normalizing track identifier lists.
package shared

import (
	"fmt"
	"os"
	"strings"
)

// MaxTracks caps the number of identifiers accepted per run.
const MaxTracks = 100

// ReadTrackIDs reads track identifiers from the given source.
//
// When source names an existing file it is read line by line, one identifier
// per non-blank line. Otherwise source is treated as a comma-separated inline
// list. Entries are whitespace-trimmed, blanks dropped, and order preserved.
// The count is validated against [MaxTracks] before any network access occurs.
func ReadTrackIDs(source string) ([]string, error) {
	var ids []string

	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read track ID file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if id := strings.TrimSpace(line); id != "" {
				ids = append(ids, id)
			}
		}
	} else {
		for _, part := range strings.Split(source, ",") {
			if id := strings.TrimSpace(part); id != "" {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) > MaxTracks {
		return nil, fmt.Errorf("%w: got %d, maximum allowed is %d", ErrTooManyTracks, len(ids), MaxTracks)
	}

	return ids, nil
}

// NormalizeTrackID strips a URI-style prefix ("spotify:track:4uLU6hMC...")
// down to the bare catalog ID. Bare IDs pass through unchanged, so the
// operation is idempotent.
func NormalizeTrackID(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
