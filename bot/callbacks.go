package bot

import (
	tghelpers "github.com/m3rciful/audiobot/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// cancelCallbackKey identifies the inline cancel button attached to flow prompts.
const cancelCallbackKey = "flow_cancel"

func (a *App) registerCallbacks() {
	_ = a.registry.RegisterCallback(cancelCallbackKey, a.cbCancelFlow)
}

func (a *App) cbCancelFlow(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "callback.flow_cancel")
	reply := a.flows.Cancel(ctx, c.Sender().ID)
	// Replace the prompt so the stale cancel button disappears.
	return tghelpers.EditOrSendMD(c, reply)
}
