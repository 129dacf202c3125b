package audio

import (
	"context"
	"strconv"
	"strings"
)

// Store owns persisted audio records. Implementations must keep the
// case-insensitive name uniqueness invariant; conflicting writes are
// serialized by the backing engine, not by callers.
type Store interface {
	// Create persists a new record and returns it with id and timestamps set.
	// Fails with ErrDuplicateName on a name collision and ErrEmptyName when
	// the name is blank after normalization.
	Create(ctx context.Context, name, fileID string, duration int, createdBy int64) (Record, error)
	// ByID returns the record with the given id or ErrNotFound.
	ByID(ctx context.Context, id int64) (Record, error)
	// ByName returns the record with the given normalized name or ErrNotFound.
	ByName(ctx context.Context, name string) (Record, error)
	// Resolve looks a record up by the id-or-name policy, see ParseID.
	Resolve(ctx context.Context, identifier string) (Record, error)
	// Rename changes the record name. Renaming to a name held by a different
	// record fails with ErrDuplicateName and applies nothing; renaming a
	// record to its own current name succeeds as a no-op.
	Rename(ctx context.Context, id int64, name string) error
	// SetFileID replaces the stored media reference.
	SetFileID(ctx context.Context, id int64, fileID string) error
	// Delete removes the record with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// List returns all records ordered by id ascending.
	List(ctx context.Context) ([]Record, error)
	// Search returns up to limit records whose name contains the normalized
	// query, ordered by name ascending.
	Search(ctx context.Context, query string, limit int) ([]Record, error)
	// Recent returns up to limit most-recently-created records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// NormalizeName folds a candidate name the way it is stored: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseID reports whether the identifier parses entirely as a non-negative
// base-10 integer. Numeric-looking identifiers always resolve by id, with no
// fallback to name lookup, even when a record is literally named like one.
func ParseID(identifier string) (int64, bool) {
	s := strings.TrimSpace(identifier)
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied queries.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes a substring for use inside a LIKE pattern with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
