package audio

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for tests and development.
// It mirrors the Postgres semantics: normalized unique names, monotonic ids
// that are never reused, deterministic list/search ordering.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Record
	byName  map[string]int64
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		records: make(map[int64]Record),
		byName:  make(map[string]int64),
	}
}

func (s *MemoryStore) Create(_ context.Context, name, fileID string, duration int, createdBy int64) (Record, error) {
	name = NormalizeName(name)
	if name == "" {
		return Record{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; exists {
		return Record{}, ErrDuplicateName
	}

	rec := Record{
		ID:        s.nextID,
		Name:      name,
		FileID:    fileID,
		Duration:  duration,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.records[rec.ID] = rec
	s.byName[rec.Name] = rec.ID
	return rec, nil
}

func (s *MemoryStore) ByID(_ context.Context, id int64) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) ByName(_ context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[NormalizeName(name)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[id], nil
}

func (s *MemoryStore) Resolve(ctx context.Context, identifier string) (Record, error) {
	return resolve(ctx, s, identifier)
}

func (s *MemoryStore) Rename(_ context.Context, id int64, name string) error {
	name = NormalizeName(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if holder, exists := s.byName[name]; exists && holder != id {
		return ErrDuplicateName
	}

	delete(s.byName, rec.Name)
	rec.Name = name
	s.records[id] = rec
	s.byName[name] = id
	return nil
}

func (s *MemoryStore) SetFileID(_ context.Context, id int64, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.FileID = fileID
	s.records[id] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	delete(s.byName, rec.Name)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (s *MemoryStore) Search(_ context.Context, query string, limit int) ([]Record, error) {
	query = NormalizeName(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var recs []Record
	for _, rec := range s.records {
		if strings.Contains(rec.Name, query) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID > recs[j].ID })
	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
