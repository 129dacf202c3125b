package audio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"log/slog"

	"github.com/m3rciful/audiobot/logger"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore implements Store on a pooled sqlx connection. Name uniqueness
// is enforced by the audios_name_unique constraint, so racing writers cannot
// break the invariant regardless of interleaving.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an already connected database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, name, fileID string, duration int, createdBy int64) (Record, error) {
	name = NormalizeName(name)
	if name == "" {
		return Record{}, ErrEmptyName
	}

	rec := Record{
		Name:      name,
		FileID:    fileID,
		Duration:  duration,
		CreatedBy: createdBy,
	}
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO audios (name, file_id, duration, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rec.Name, rec.FileID, rec.Duration, rec.CreatedBy,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Record{}, ErrDuplicateName
		}
		logger.SVCAudios.Error("create failed",
			slog.String("event", "audios.create"),
			slog.String("name", name),
			slog.String("err", err.Error()),
		)
		return Record{}, fmt.Errorf("create audio: %w", err)
	}

	logger.SVCAudios.Info("audio created",
		slog.String("event", "audios.create"),
		slog.Int64("record_id", rec.ID),
		slog.String("name", rec.Name),
	)
	return rec, nil
}

func (s *PostgresStore) ByID(ctx context.Context, id int64) (Record, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec,
		`SELECT id, name, file_id, duration, created_by, created_at FROM audios WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get audio by id: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ByName(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.db.GetContext(ctx, &rec,
		`SELECT id, name, file_id, duration, created_by, created_at FROM audios WHERE name = $1`,
		NormalizeName(name))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get audio by name: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Resolve(ctx context.Context, identifier string) (Record, error) {
	return resolve(ctx, s, identifier)
}

func (s *PostgresStore) Rename(ctx context.Context, id int64, name string) error {
	name = NormalizeName(name)
	if name == "" {
		return ErrEmptyName
	}
	res, err := s.db.ExecContext(ctx, `UPDATE audios SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("rename audio: %w", err)
	}
	return requireRow(res, "rename audio")
}

func (s *PostgresStore) SetFileID(ctx context.Context, id int64, fileID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE audios SET file_id = $2 WHERE id = $1`, id, fileID)
	if err != nil {
		return fmt.Errorf("update audio file: %w", err)
	}
	return requireRow(res, "update audio file")
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete audio: %w", err)
	}
	if err := requireRow(res, "delete audio"); err != nil {
		return err
	}
	logger.SVCAudios.Info("audio deleted",
		slog.String("event", "audios.delete"),
		slog.Int64("record_id", id),
	)
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	var recs []Record
	err := s.db.SelectContext(ctx, &recs,
		`SELECT id, name, file_id, duration, created_by, created_at FROM audios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list audios: %w", err)
	}
	return recs, nil
}

func (s *PostgresStore) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	pattern := "%" + EscapeLike(NormalizeName(query)) + "%"
	var recs []Record
	err := s.db.SelectContext(ctx, &recs,
		`SELECT id, name, file_id, duration, created_by, created_at FROM audios
		 WHERE name LIKE $1 ESCAPE '\'
		 ORDER BY name
		 LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search audios: %w", err)
	}
	return recs, nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	var recs []Record
	err := s.db.SelectContext(ctx, &recs,
		`SELECT id, name, file_id, duration, created_by, created_at FROM audios
		 ORDER BY id DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("recent audios: %w", err)
	}
	return recs, nil
}

func resolve(ctx context.Context, s Store, identifier string) (Record, error) {
	if id, ok := ParseID(identifier); ok {
		// Numeric identifiers never fall back to name lookup.
		return s.ByID(ctx, id)
	}
	return s.ByName(ctx, identifier)
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
