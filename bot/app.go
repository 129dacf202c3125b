// Package bot wires the audio clip commands, conversation flows and inline
// search onto the generic telegram transport layer.
package bot

import (
	"github.com/m3rciful/audiobot/audio"
	botconfig "github.com/m3rciful/audiobot/config"
	tg "github.com/m3rciful/audiobot/telegram"
	tghelpers "github.com/m3rciful/audiobot/telegram/helpers"
	"github.com/m3rciful/audiobot/telegram/middleware"
	"github.com/m3rciful/audiobot/telegram/router"
	"github.com/m3rciful/audiobot/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// App aggregates the bot's domain components.
type App struct {
	cfg      *botconfig.Config
	store    audio.Store
	sessions state.Manager
	flows    *Flows
	registry *tg.Registry
}

// New builds the app, registering commands, callbacks and the inline handler.
func New(cfg *botconfig.Config, store audio.Store) *App {
	sessions := state.NewMemoryManager()
	a := &App{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		flows:    NewFlows(store, sessions),
		registry: tg.NewRegistry(),
	}
	a.registerCommands()
	a.registerCallbacks()
	a.registry.SetInlineHandler(a.handleInline)
	return a
}

// Registry exposes the command/callback registry for the transport runner.
func (a *App) Registry() *tg.Registry {
	return a.registry
}

// Routes assembles all transport routes: slash commands, text and media
// routing into open conversations, callbacks, and inline queries.
func (a *App) Routes() []tg.Route {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: a.rejectNonAdmin,
	})
	routes = append(routes, router.MessageRoutes(flowDispatch{app: a}, a.registry, router.MessageOptions{
		Admin: middleware.AdminOptions{
			AdminID:  a.cfg.Telegram.AdminID,
			OnReject: a.rejectNonAdmin,
		},
	})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.InlineRoute(a.registry))
	return routes
}

// flowDispatch adapts Flows to the message router's FSM interface.
type flowDispatch struct {
	app *App
}

func (d flowDispatch) InProgress(userID int64) bool {
	return d.app.flows.InProgress(userID)
}

func (d flowDispatch) HandleText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	reply := d.app.flows.HandleText(ctx, userID, c.Text())
	return d.reply(c, userID, reply)
}

func (d flowDispatch) HandleMedia(c tele.Context) error {
	fileID, duration := mediaFrom(c)
	if fileID == "" {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	reply := d.app.flows.HandleMedia(ctx, userID, fileID, duration)
	return d.reply(c, userID, reply)
}

// reply sends the flow's answer, re-attaching the cancel button while the
// conversation stays open.
func (d flowDispatch) reply(c tele.Context, userID int64, reply string) error {
	if reply == "" {
		return nil
	}
	if d.app.flows.InProgress(userID) {
		return tghelpers.SendMD(c, reply, cancelMarkup())
	}
	return tghelpers.SendMD(c, reply)
}

// mediaFrom extracts the media reference from a voice or audio message.
func mediaFrom(c tele.Context) (fileID string, duration int) {
	msg := c.Message()
	if msg == nil {
		return "", 0
	}
	if msg.Voice != nil {
		return msg.Voice.FileID, msg.Voice.Duration
	}
	if msg.Audio != nil {
		return msg.Audio.FileID, msg.Audio.Duration
	}
	return "", 0
}
