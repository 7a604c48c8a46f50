package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ennea/shisho/anidb"
)

func TestNewName(t *testing.T) {
	meta := anidb.FileMetadata{
		AnimeName:     "AnimeX",
		EpisodeNumber: "01",
		EpisodeName:   "EpName",
		GroupName:     "GroupY",
	}
	assert.Equal(t, "AnimeX - 01 - EpName [GroupY].mkv", NewName(meta, ".mkv"))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Some Title", want: "Some Title"},
		{name: "backtick becomes apostrophe", input: "Ao Haru Ride: Hero`s Path", want: "Ao Haru Ride: Hero's Path"},
		{name: "slash becomes division slash", input: "Fate/stay night", want: "Fate∕stay night"},
		{name: "both", input: "A`s / B`s", want: "A's ∕ B's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSuffixes(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "episode.mkv", want: ".mkv"},
		{name: "episode.ja.mkv", want: ".ja.mkv"},
		{name: "noextension", want: ""},
		{name: ".hidden", want: ""},
		{name: ".hidden.mkv", want: ".mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suffixes(tt.name))
		})
	}
}
