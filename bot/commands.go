package bot

import (
	"errors"
	"strings"

	"log/slog"

	"github.com/m3rciful/audiobot/audio"
	"github.com/m3rciful/audiobot/logger"
	"github.com/m3rciful/audiobot/telegram/commands"
	tghelpers "github.com/m3rciful/audiobot/telegram/helpers"
	"github.com/m3rciful/audiobot/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerCommands() {
	a.registry.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Greeting and usage hint",
	})
	a.registry.RegisterCommand("/help", commands.Command{
		Handler:     a.cmdHelp,
		Description: "Show available commands",
	})
	a.registry.RegisterCommand("/add", commands.Command{
		Handler:     a.cmdAdd,
		Description: "Store a new audio clip",
		AdminOnly:   true,
	})
	a.registry.RegisterCommand("/list", commands.Command{
		Handler:     a.cmdList,
		Description: "List stored clips",
		AdminOnly:   true,
	})
	a.registry.RegisterCommand("/del", commands.Command{
		Handler:     a.cmdDel,
		Description: "Delete a clip by id or name",
		AdminOnly:   true,
	})
	a.registry.RegisterCommand("/edit", commands.Command{
		Handler:     a.cmdEdit,
		Description: "Rename a clip or replace its audio",
		AdminOnly:   true,
	})
	a.registry.RegisterCommand("/cancel", commands.Command{
		Handler:     a.cmdCancel,
		Description: "Abort the current operation",
	})
}

func (a *App) cmdStart(c tele.Context) error {
	firstName := ""
	if u := c.Sender(); u != nil {
		firstName = u.FirstName
	}
	return tghelpers.SendMD(c, greetingText(firstName))
}

func (a *App) cmdHelp(c tele.Context) error {
	isAdmin := c.Sender() != nil && c.Sender().ID == a.cfg.Telegram.AdminID
	return tghelpers.SendMD(c, helpText(isAdmin))
}

func (a *App) cmdAdd(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "add")
	reply := a.flows.StartAdd(ctx, c.Sender().ID)
	return tghelpers.SendMD(c, reply, cancelMarkup())
}

func (a *App) cmdList(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "list")
	recs, err := a.store.List(ctx)
	if err != nil {
		logger.Error(ctx, "bot", "list.failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgStoreFail)
	}
	if len(recs) == 0 {
		return tghelpers.SendText(c, msgListEmpty)
	}

	lines := make([]string, 0, len(recs)+1)
	lines = append(lines, msgListHeader)
	for _, rec := range recs {
		lines = append(lines, listLine(rec))
	}
	return tghelpers.SendMD(c, strings.Join(lines, "\n"))
}

func (a *App) cmdDel(c tele.Context) error {
	identifier := commandPayload(c)
	if identifier == "" {
		return tghelpers.SendText(c, msgUsageDel)
	}

	ctx := tghelpers.WithHandler(c, "del")
	rec, err := a.store.Resolve(ctx, identifier)
	if errors.Is(err, audio.ErrNotFound) {
		return tghelpers.SendText(c, msgNotFound)
	}
	if err != nil {
		logger.Error(ctx, "bot", "del.resolve_failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, msgStoreFail)
	}

	if err := a.store.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, audio.ErrNotFound) {
			return tghelpers.SendText(c, msgNotFound)
		}
		logger.Error(ctx, "bot", "del.failed",
			slog.Int64("record_id", rec.ID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, msgStoreFail)
	}
	return tghelpers.SendMD(c, deletedText(rec))
}

func (a *App) cmdEdit(c tele.Context) error {
	identifier := commandPayload(c)
	if identifier == "" {
		return tghelpers.SendText(c, msgUsageEdit)
	}

	ctx := tghelpers.WithHandler(c, "edit")
	reply := a.flows.StartEdit(ctx, c.Sender().ID, identifier)
	if a.flows.InProgress(c.Sender().ID) {
		return tghelpers.SendMD(c, reply, cancelMarkup())
	}
	return tghelpers.SendMD(c, reply)
}

func (a *App) cmdCancel(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "cancel")
	return tghelpers.SendText(c, a.flows.Cancel(ctx, c.Sender().ID))
}

func (a *App) rejectNonAdmin(c tele.Context) error {
	return tghelpers.SendText(c, msgAdminOnly)
}

// commandPayload returns the trimmed argument string after the slash command.
func commandPayload(c tele.Context) string {
	if msg := c.Message(); msg != nil {
		return strings.TrimSpace(msg.Payload)
	}
	return ""
}

func cancelMarkup() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(cancelCallbackKey)
}
