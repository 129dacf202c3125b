package bot

import (
	"fmt"

	"github.com/m3rciful/audiobot/audio"
	"github.com/m3rciful/audiobot/telegram/format"
)

// skipToken leaves a field unchanged when sent during the edit flow.
const skipToken = "-"

const (
	msgAdminOnly = "This command is available to the administrator only."
	msgNotFound  = "Record not found."
	msgStoreFail = "Storage error, please try again."

	msgUsageDel  = "Usage: /del <id or name>"
	msgUsageEdit = "Usage: /edit <id or name>"

	msgAddSendAudio = "Send the voice message or audio file you want to store."
	msgAddSendName  = "Now send a name for the clip (it will be stored lowercased)."
	msgAddNeedAudio = "I need a voice message or audio file. Send one, or /cancel."
	msgAddNeedName  = "I need a text name for this clip. Send one, or /cancel."
	msgAddRestart   = "Something went wrong, start over with /add."

	msgEditSendAudio = "Now send the new voice or audio file.\nSend `-` to keep the current one."
	msgEditNeedName  = "Send the new name first, or `-` to keep it."
	msgEditKeptAudio = "Done. Audio file left unchanged."
	msgAudioUpdated  = "Audio file updated."

	msgEmptyName = "The name cannot be empty. Send a non-empty name."

	msgCancelled       = "Operation cancelled."
	msgNothingToCancel = "Nothing to cancel."

	msgListEmpty  = "No audio records yet."
	msgListHeader = "*Audio records:*"

	msgHelpEveryone = "*What this bot can do*\n\n" +
		"Everyone:\n" +
		"  - inline mode: type `@botname <query>` in any chat to search stored clips."

	msgHelpAdminSection = "\n\nAdministrator:\n" +
		"  - /add — store a new audio clip\n" +
		"  - /list — list stored clips\n" +
		"  - /del <id or name> — delete a clip\n" +
		"  - /edit <id or name> — rename a clip or replace its audio\n" +
		"  - /cancel — abort the current operation"
)

// helpText shows the admin command section to the administrator only.
func helpText(isAdmin bool) string {
	if isAdmin {
		return msgHelpEveryone + msgHelpAdminSection
	}
	return msgHelpEveryone
}

func greetingText(firstName string) string {
	if firstName == "" {
		firstName = "friend"
	}
	return fmt.Sprintf(
		"Hi, %s! 👋\n\nThis bot serves saved audio clips in inline mode.\nType `@botname <query>` in any chat to search.\n\nUse /help for a short reference.",
		format.EscapeMarkdown(firstName),
	)
}

func savedText(rec audio.Record) string {
	return fmt.Sprintf("Saved *%s* (id=%d).", format.EscapeMarkdown(rec.Name), rec.ID)
}

func duplicateText(name string) string {
	return fmt.Sprintf("A record named *%s* already exists. Nothing was saved.", format.EscapeMarkdown(audio.NormalizeName(name)))
}

func deletedText(rec audio.Record) string {
	return fmt.Sprintf("Deleted *%s* (id=%d).", format.EscapeMarkdown(rec.Name), rec.ID)
}

func editIntroText(rec audio.Record) string {
	return fmt.Sprintf(
		"Editing *%s* (id=%d).\nSend a new name, or `-` to keep the current one.",
		format.EscapeMarkdown(rec.Name), rec.ID,
	)
}

func renamedText(name string) string {
	return fmt.Sprintf("Name updated to *%s*.", format.EscapeMarkdown(audio.NormalizeName(name)))
}

func renameConflictText(name string) string {
	return fmt.Sprintf("Name *%s* is already taken, keeping the old one.", format.EscapeMarkdown(audio.NormalizeName(name)))
}

func listLine(rec audio.Record) string {
	return fmt.Sprintf("%d: %s", rec.ID, format.EscapeMarkdown(rec.Name))
}
