package bot

import (
	"context"
	"testing"
	"time"

	"github.com/m3rciful/audiobot/audio"
	botconfig "github.com/m3rciful/audiobot/config"

	tele "gopkg.in/telebot.v4"
)

// recordingStore tracks which lookup the inline handler picked.
type recordingStore struct {
	*audio.MemoryStore
	searchQueries []string
	recentCalls   int
}

func (s *recordingStore) Search(ctx context.Context, query string, limit int) ([]audio.Record, error) {
	s.searchQueries = append(s.searchQueries, query)
	return s.MemoryStore.Search(ctx, query, limit)
}

func (s *recordingStore) Recent(ctx context.Context, limit int) ([]audio.Record, error) {
	s.recentCalls++
	return s.MemoryStore.Recent(ctx, limit)
}

// queryContext implements the slice of tele.Context the inline handler touches.
type queryContext struct {
	tele.Context
	update   tele.Update
	store    map[string]interface{}
	answered *tele.QueryResponse
}

func newQueryContext(text string) *queryContext {
	return &queryContext{
		update: tele.Update{ID: 1, Query: &tele.Query{
			Sender: &tele.User{ID: 99},
			Text:   text,
		}},
		store: make(map[string]interface{}),
	}
}

func (q *queryContext) Update() tele.Update { return q.update }

func (q *queryContext) Query() *tele.Query { return q.update.Query }

func (q *queryContext) Sender() *tele.User { return q.update.Query.Sender }

func (q *queryContext) Chat() *tele.Chat { return nil }

func (q *queryContext) Message() *tele.Message { return nil }

func (q *queryContext) Set(key string, val interface{}) { q.store[key] = val }

func (q *queryContext) Get(key string) interface{} { return q.store[key] }

func (q *queryContext) Answer(resp *tele.QueryResponse) error {
	q.answered = resp
	return nil
}

func newInlineApp(t *testing.T) (*App, *recordingStore) {
	t.Helper()
	cfg := &botconfig.Config{}
	cfg.Inline.SearchLimit = 50
	cfg.Inline.RecentLimit = 10
	cfg.Inline.CacheTimeSeconds = 1

	rs := &recordingStore{MemoryStore: audio.NewMemoryStore()}
	return &App{cfg: cfg, store: rs}, rs
}

func TestInlineEmptyQueryServesRecent(t *testing.T) {
	ctx := context.Background()
	app, rs := newInlineApp(t)
	rs.Create(ctx, "owl", "m1", 0, 1)
	rs.Create(ctx, "barn owl", "m2", 0, 1)

	c := newQueryContext("   ")
	if err := app.handleInline(c); err != nil {
		t.Fatalf("handleInline: %v", err)
	}
	if rs.recentCalls != 1 {
		t.Fatalf("recent calls = %d", rs.recentCalls)
	}
	if len(rs.searchQueries) != 0 {
		t.Fatalf("search must not run for an empty query, got %v", rs.searchQueries)
	}
	if c.answered == nil {
		t.Fatal("query was not answered")
	}
	if len(c.answered.Results) != 2 {
		t.Fatalf("results = %d", len(c.answered.Results))
	}
	if c.answered.CacheTime != 1 || c.answered.IsPersonal {
		t.Fatalf("response hints = %+v", c.answered)
	}
}

func TestInlineNonEmptyQuerySearches(t *testing.T) {
	ctx := context.Background()
	app, rs := newInlineApp(t)
	rs.Create(ctx, "owl", "m1", 0, 1)
	rs.Create(ctx, "fox", "m2", 0, 1)

	c := newQueryContext("  owl ")
	if err := app.handleInline(c); err != nil {
		t.Fatalf("handleInline: %v", err)
	}
	if rs.recentCalls != 0 {
		t.Fatal("recent must not run for a non-empty query")
	}
	if len(rs.searchQueries) != 1 || rs.searchQueries[0] != "owl" {
		t.Fatalf("search queries = %v", rs.searchQueries)
	}
	if c.answered == nil || len(c.answered.Results) != 1 {
		t.Fatalf("answered = %+v", c.answered)
	}
}

func TestInlineResultsMapping(t *testing.T) {
	recs := []audio.Record{
		{ID: 1, Name: "owl", FileID: "m1", CreatedAt: time.Now()},
		{ID: 2, Name: "barn owl", FileID: "m2", CreatedAt: time.Now()},
	}

	results := inlineResults(recs)
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}

	first, ok := results[0].(*tele.AudioResult)
	if !ok {
		t.Fatalf("unexpected result type %T", results[0])
	}
	if first.ResultID() != "1" {
		t.Fatalf("result id = %q", first.ResultID())
	}
	if first.Title != "owl" || first.Cache != "m1" {
		t.Fatalf("result = %+v", first)
	}
}

func TestInlineResultsEmpty(t *testing.T) {
	results := inlineResults(nil)
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %v", results)
	}
}
