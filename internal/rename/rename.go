// Package rename builds target file names from lookup results. The name
// format is fixed: "anime - episode - title [group]".
package rename

import (
	"fmt"
	"strings"

	"github.com/Ennea/shisho/anidb"
)

// NewName returns the target file name for a looked-up file, keeping the
// original suffixes.
func NewName(meta anidb.FileMetadata, suffixes string) string {
	name := fmt.Sprintf("%s - %s - %s [%s]",
		meta.AnimeName, meta.EpisodeNumber, meta.EpisodeName, meta.GroupName)
	return Sanitize(name) + suffixes
}

// Sanitize replaces characters that make poor file names: AniDB uses
// backticks where titles have apostrophes, and slashes would be path
// separators (swapped for the unicode division slash).
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "`", "'")
	return strings.ReplaceAll(name, "/", "∕")
}

// Suffixes returns every dot-suffix of a file name, so multi-part
// extensions survive a rename ("episode.ja.mkv" keeps ".ja.mkv").
func Suffixes(name string) string {
	base := strings.TrimPrefix(name, ".")
	if i := strings.Index(base, "."); i >= 0 {
		return base[i:]
	}
	return ""
}
