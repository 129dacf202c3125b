package router

import (
	"time"

	tg "github.com/m3rciful/audiobot/telegram"
	"github.com/m3rciful/audiobot/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal conversation interface message routes dispatch into.
// Text and media updates reach the FSM only while a conversation is in
// progress; everything else falls through to the registry.
type FSM interface {
	InProgress(userID int64) bool
	HandleText(c tele.Context) error
	HandleMedia(c tele.Context) error
}

// MessageOptions controls admin gating and fallback behaviour for text and
// media updates.
type MessageOptions struct {
	Admin        middleware.AdminOptions
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

// MessageRoutes builds handlers for text, voice and audio routing.
// Slash commands typed as plain text are resolved through the registry so
// they work even while not bound as dedicated endpoints.
func MessageRoutes(fsmMgr FSM, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.HandleText(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				// Commands reached as plain text keep the same admin gate
				// as their dedicated endpoints.
				h := cmd.Handler
				if cmd.AdminOnly {
					h = middleware.AdminOnlyMiddleware(opts.Admin)(h)
				}
				return handleWithSummary(c, name, start, "", "", func() error {
					return h(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	mediaHandler := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm_media", start, "", "", func() error {
				return fsmMgr.HandleMedia(c)
			})
		}
		if reg != nil {
			if fb := reg.MediaFallback(); fb != nil {
				return handleWithSummary(c, "media_fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}
		if opts.UnknownMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, "", "", func() error {
				return opts.UnknownMedia(c)
			})
		}
		logHandlerSummary(c, "unexpected_media", start, "skip", "ok", nil)
		return nil
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
		{Endpoint: tele.OnVoice, Handler: wrap(mediaHandler)},
		{Endpoint: tele.OnAudio, Handler: wrap(mediaHandler)},
	}
}
