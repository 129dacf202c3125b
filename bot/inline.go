package bot

import (
	"strconv"
	"strings"

	"log/slog"

	"github.com/m3rciful/audiobot/audio"
	"github.com/m3rciful/audiobot/logger"
	tghelpers "github.com/m3rciful/audiobot/telegram/helpers"
	"github.com/m3rciful/audiobot/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// handleInline answers inline queries with cached audio results. A non-empty
// query runs a substring search; an empty one serves the most recent clips.
// Results depend only on global record state, so they are safe to share
// across users and is_personal stays false.
func (a *App) handleInline(c tele.Context) error {
	q := c.Query()
	if q == nil {
		return nil
	}
	query := strings.TrimSpace(q.Text)
	ctx := tghelpers.WithHandler(c, "inline")

	var (
		recs []audio.Record
		err  error
	)
	if query == "" {
		recs, err = a.store.Recent(ctx, a.cfg.Inline.RecentLimit)
	} else {
		recs, err = a.store.Search(ctx, query, a.cfg.Inline.SearchLimit)
	}
	if err != nil {
		logger.Error(ctx, "bot", "inline.search_failed",
			slog.String("query", logger.SanitizeLimit(query, 256)),
			slog.String("err", err.Error()),
		)
		recs = nil
	}

	logger.Debug(ctx, "bot", "inline.answer",
		slog.String("query", logger.SanitizeLimit(query, 256)),
		slog.Int("results", len(recs)),
	)

	return c.Answer(&tele.QueryResponse{
		Results:    inlineResults(recs),
		CacheTime:  a.cfg.Inline.CacheTimeSeconds,
		IsPersonal: false,
	})
}

// inlineResults maps records to cached audio results keyed by record id.
func inlineResults(recs []audio.Record) tele.Results {
	results := make(tele.Results, 0, len(recs))
	for _, rec := range recs {
		results = append(results, ui.NewCachedAudioResult(
			strconv.FormatInt(rec.ID, 10),
			rec.Name,
			rec.FileID,
		))
	}
	return results
}
