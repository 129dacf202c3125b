package ui

import tele "gopkg.in/telebot.v4"

// NewCachedAudioResult builds an inline result that replays an audio file
// already stored on Telegram servers, identified by its file id.
func NewCachedAudioResult(id, title, fileID string) *tele.AudioResult {
	result := &tele.AudioResult{
		Title: title,
		Cache: fileID,
	}
	result.SetResultID(id)
	return result
}
