package audio

import "time"

// Record is a stored audio clip served through inline search.
// Name is unique, trimmed, and lowercased before storage. FileID is the
// opaque Telegram file identifier of a previously uploaded voice/audio blob.
type Record struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	FileID   string `db:"file_id"`
	Duration int    `db:"duration"`
	// CreatedBy and CreatedAt are provenance metadata, never mutated after creation.
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
