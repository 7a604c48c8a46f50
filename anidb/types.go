package anidb

// Credentials is the stored AniDB login info. Both fields are opaque
// strings; the client never interprets them.
type Credentials struct {
	User string
	Pass string
}

// FileMetadata is the result of a successful file lookup: four display
// strings, exactly as the server returned them.
type FileMetadata struct {
	AnimeName     string `json:"anime_name"`
	EpisodeNumber string `json:"episode_number"`
	EpisodeName   string `json:"episode_name"`
	GroupName     string `json:"group_name"`
}

// Store is the persistence the client needs: login info and the lookup
// cache. Cache entries are pure memoization, keyed by ed2k hash, never
// expired or invalidated. Implemented by package store; the backing
// technology is an implementation detail behind this interface.
type Store interface {
	// Credentials returns the stored login info, reporting whether a
	// complete record is present.
	Credentials() (Credentials, bool, error)

	// File returns the cached metadata for an ed2k hash, reporting
	// whether an entry exists.
	File(ed2k string) (FileMetadata, bool, error)

	// PutFile stores the metadata for an ed2k hash.
	PutFile(ed2k string, meta FileMetadata) error

	Close() error
}
