package bot

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/m3rciful/audiobot/audio"
	"github.com/m3rciful/audiobot/logger"
	"github.com/m3rciful/audiobot/telegram/state"
)

// Conversation stages. Only one flow can be open per user, so the stages of
// both flows share the session state machine.
const (
	stageAddAwaitAudio  state.State = "add_await_audio"
	stageAddAwaitName   state.State = "add_await_name"
	stageEditAwaitName  state.State = "edit_await_name"
	stageEditAwaitAudio state.State = "edit_await_audio"
)

// Session scratch keys.
const (
	tempFileID   = "file_id"
	tempDuration = "duration"
	tempRecordID = "record_id"
)

// Flows implements the add and edit conversations over the record store and
// the session manager. Methods return the reply text to show the user; an
// empty reply means the event was not addressed to an open conversation.
// Flows never touches the transport, which keeps it testable.
type Flows struct {
	store    audio.Store
	sessions state.Manager
}

// NewFlows wires conversation flows to their dependencies.
func NewFlows(store audio.Store, sessions state.Manager) *Flows {
	return &Flows{store: store, sessions: sessions}
}

// InProgress reports whether the user has an open conversation.
func (f *Flows) InProgress(userID int64) bool {
	return f.sessions.InProgress(userID)
}

// StartAdd opens the add conversation. Stale scratch from an abandoned flow
// is dropped.
func (f *Flows) StartAdd(ctx context.Context, userID int64) string {
	f.sessions.Clear(userID)
	f.sessions.SetState(userID, stageAddAwaitAudio)
	logger.Debug(ctx, "bot", "flow.add.start", slog.Int64("user_id", userID))
	return msgAddSendAudio
}

// StartEdit resolves the target record and opens the edit conversation.
// An unknown identifier reports not-found and does not enter the flow.
func (f *Flows) StartEdit(ctx context.Context, userID int64, identifier string) string {
	rec, err := f.store.Resolve(ctx, identifier)
	if errors.Is(err, audio.ErrNotFound) {
		return msgNotFound
	}
	if err != nil {
		logger.Error(ctx, "bot", "flow.edit.resolve_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return msgStoreFail
	}

	f.sessions.Clear(userID)
	f.sessions.SetState(userID, stageEditAwaitName)
	f.sessions.SetTemp(userID, tempRecordID, rec.ID)
	logger.Debug(ctx, "bot", "flow.edit.start",
		slog.Int64("user_id", userID),
		slog.Int64("record_id", rec.ID),
	)
	return editIntroText(rec)
}

// Cancel aborts any open conversation.
func (f *Flows) Cancel(ctx context.Context, userID int64) string {
	if !f.sessions.InProgress(userID) {
		return msgNothingToCancel
	}
	f.sessions.Clear(userID)
	logger.Debug(ctx, "bot", "flow.cancel", slog.Int64("user_id", userID))
	return msgCancelled
}

// HandleText advances the open conversation with a text message.
func (f *Flows) HandleText(ctx context.Context, userID int64, text string) string {
	switch f.sessions.GetState(userID) {
	case stageAddAwaitAudio:
		// Wrong input kind, stage unchanged.
		return msgAddNeedAudio
	case stageAddAwaitName:
		return f.addName(ctx, userID, text)
	case stageEditAwaitName:
		return f.editName(ctx, userID, text)
	case stageEditAwaitAudio:
		if strings.TrimSpace(text) == skipToken {
			f.sessions.Clear(userID)
			return msgEditKeptAudio
		}
		return msgEditSendAudio
	}
	return ""
}

// HandleMedia advances the open conversation with a voice/audio attachment.
func (f *Flows) HandleMedia(ctx context.Context, userID int64, fileID string, duration int) string {
	switch f.sessions.GetState(userID) {
	case stageAddAwaitAudio:
		f.sessions.SetTemp(userID, tempFileID, fileID)
		f.sessions.SetTemp(userID, tempDuration, int64(duration))
		f.sessions.SetState(userID, stageAddAwaitName)
		return msgAddSendName
	case stageAddAwaitName:
		return msgAddNeedName
	case stageEditAwaitName:
		return msgEditNeedName
	case stageEditAwaitAudio:
		return f.editAudio(ctx, userID, fileID)
	}
	return ""
}

func (f *Flows) addName(ctx context.Context, userID int64, text string) string {
	fileID, ok := f.sessions.GetTempString(userID, tempFileID)
	if !ok || fileID == "" {
		f.sessions.Clear(userID)
		return msgAddRestart
	}
	duration, _ := f.sessions.GetTempInt64(userID, tempDuration)

	rec, err := f.store.Create(ctx, text, fileID, int(duration), userID)
	switch {
	case errors.Is(err, audio.ErrEmptyName):
		// Re-prompt, stage unchanged.
		return msgEmptyName
	case errors.Is(err, audio.ErrDuplicateName):
		// The flow aborts on a collision instead of re-prompting.
		f.sessions.Clear(userID)
		return duplicateText(text)
	case err != nil:
		f.sessions.Clear(userID)
		return msgStoreFail
	}

	f.sessions.Clear(userID)
	logger.Info(ctx, "bot", "flow.add.done",
		slog.Int64("user_id", userID),
		slog.Int64("record_id", rec.ID),
		slog.String("name", rec.Name),
	)
	return savedText(rec)
}

func (f *Flows) editName(ctx context.Context, userID int64, text string) string {
	recID, ok := f.sessions.GetTempInt64(userID, tempRecordID)
	if !ok {
		f.sessions.Clear(userID)
		return msgStoreFail
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == skipToken {
		f.sessions.SetState(userID, stageEditAwaitAudio)
		return msgEditSendAudio
	}

	err := f.store.Rename(ctx, recID, trimmed)
	switch {
	case errors.Is(err, audio.ErrEmptyName):
		return msgEditNeedName
	case errors.Is(err, audio.ErrDuplicateName):
		// Report the conflict but advance anyway, the old name stays.
		f.sessions.SetState(userID, stageEditAwaitAudio)
		return renameConflictText(text) + "\n" + msgEditSendAudio
	case errors.Is(err, audio.ErrNotFound):
		// Deleted from under the conversation.
		f.sessions.Clear(userID)
		return msgNotFound
	case err != nil:
		f.sessions.Clear(userID)
		return msgStoreFail
	}

	f.sessions.SetState(userID, stageEditAwaitAudio)
	return renamedText(text) + "\n" + msgEditSendAudio
}

func (f *Flows) editAudio(ctx context.Context, userID int64, fileID string) string {
	recID, ok := f.sessions.GetTempInt64(userID, tempRecordID)
	if !ok {
		f.sessions.Clear(userID)
		return msgStoreFail
	}

	err := f.store.SetFileID(ctx, recID, fileID)
	switch {
	case errors.Is(err, audio.ErrNotFound):
		f.sessions.Clear(userID)
		return msgNotFound
	case err != nil:
		f.sessions.Clear(userID)
		return msgStoreFail
	}

	f.sessions.Clear(userID)
	logger.Info(ctx, "bot", "flow.edit.done",
		slog.Int64("user_id", userID),
		slog.Int64("record_id", recID),
	)
	return msgAudioUpdated
}
