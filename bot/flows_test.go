package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/m3rciful/audiobot/audio"
	"github.com/m3rciful/audiobot/telegram/state"
)

const testUser int64 = 7

func newTestFlows() (*Flows, *audio.MemoryStore, state.Manager) {
	store := audio.NewMemoryStore()
	sessions := state.NewMemoryManager()
	return NewFlows(store, sessions), store, sessions
}

func TestAddFlowHappyPath(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	if got := f.StartAdd(ctx, testUser); got != msgAddSendAudio {
		t.Fatalf("start reply = %q", got)
	}
	if got := f.HandleMedia(ctx, testUser, "m1", 3); got != msgAddSendName {
		t.Fatalf("media reply = %q", got)
	}
	reply := f.HandleText(ctx, testUser, " OWL ")
	if !strings.Contains(reply, "owl") {
		t.Fatalf("save reply = %q", reply)
	}
	if f.InProgress(testUser) {
		t.Fatal("flow must end after saving")
	}

	rec, err := store.ByName(ctx, "owl")
	if err != nil {
		t.Fatalf("record missing: %v", err)
	}
	if rec.FileID != "m1" || rec.Duration != 3 || rec.CreatedBy != testUser {
		t.Fatalf("record = %+v", rec)
	}
}

func TestAddFlowTextBeforeAudioKeepsStage(t *testing.T) {
	ctx := context.Background()
	f, store, sessions := newTestFlows()

	f.StartAdd(ctx, testUser)
	if got := f.HandleText(ctx, testUser, "owl"); got != msgAddNeedAudio {
		t.Fatalf("reply = %q", got)
	}
	if sessions.GetState(testUser) != stageAddAwaitAudio {
		t.Fatal("stage must not advance on wrong input kind")
	}
	recs, _ := store.List(ctx)
	if len(recs) != 0 {
		t.Fatal("no record should exist")
	}
}

func TestAddFlowDuplicateNameAborts(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	if _, err := store.Create(ctx, "owl", "m0", 0, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	f.StartAdd(ctx, testUser)
	f.HandleMedia(ctx, testUser, "m1", 0)
	reply := f.HandleText(ctx, testUser, "OWL")
	if !strings.Contains(reply, "already exists") {
		t.Fatalf("reply = %q", reply)
	}
	if f.InProgress(testUser) {
		t.Fatal("flow must abort on duplicate, not re-prompt")
	}
	recs, _ := store.List(ctx)
	if len(recs) != 1 || recs[0].FileID != "m0" {
		t.Fatalf("store changed: %+v", recs)
	}
}

func TestAddFlowEmptyNameRePrompts(t *testing.T) {
	ctx := context.Background()
	f, _, sessions := newTestFlows()

	f.StartAdd(ctx, testUser)
	f.HandleMedia(ctx, testUser, "m1", 0)
	if got := f.HandleText(ctx, testUser, "   "); got != msgEmptyName {
		t.Fatalf("reply = %q", got)
	}
	if sessions.GetState(testUser) != stageAddAwaitName {
		t.Fatal("empty name must re-prompt the same stage")
	}
}

func TestEditFlowRenameAndReplaceAudio(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	rec, _ := store.Create(ctx, "owl", "m1", 0, 1)

	intro := f.StartEdit(ctx, testUser, "owl")
	if !strings.Contains(intro, "owl") {
		t.Fatalf("intro = %q", intro)
	}
	reply := f.HandleText(ctx, testUser, "Barn Owl")
	if !strings.Contains(reply, "barn owl") {
		t.Fatalf("rename reply = %q", reply)
	}
	if got := f.HandleMedia(ctx, testUser, "m2", 0); got != msgAudioUpdated {
		t.Fatalf("media reply = %q", got)
	}
	if f.InProgress(testUser) {
		t.Fatal("flow must end after media update")
	}

	got, _ := store.ByID(ctx, rec.ID)
	if got.Name != "barn owl" || got.FileID != "m2" {
		t.Fatalf("record = %+v", got)
	}
}

func TestEditFlowSkipTokenPreservesName(t *testing.T) {
	ctx := context.Background()
	f, store, sessions := newTestFlows()

	rec, _ := store.Create(ctx, "owl", "m1", 0, 1)

	f.StartEdit(ctx, testUser, "owl")
	if got := f.HandleText(ctx, testUser, skipToken); got != msgEditSendAudio {
		t.Fatalf("skip reply = %q", got)
	}
	if sessions.GetState(testUser) != stageEditAwaitAudio {
		t.Fatal("skip must advance to the audio stage")
	}

	got, _ := store.ByID(ctx, rec.ID)
	if got.Name != "owl" {
		t.Fatalf("name changed: %q", got.Name)
	}
}

func TestEditFlowSkipBothLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	rec, _ := store.Create(ctx, "owl", "m1", 0, 1)

	f.StartEdit(ctx, testUser, "owl")
	f.HandleText(ctx, testUser, skipToken)
	if got := f.HandleText(ctx, testUser, skipToken); got != msgEditKeptAudio {
		t.Fatalf("reply = %q", got)
	}
	if f.InProgress(testUser) {
		t.Fatal("flow must end")
	}

	got, _ := store.ByID(ctx, rec.ID)
	if got.Name != "owl" || got.FileID != "m1" {
		t.Fatalf("record changed: %+v", got)
	}
}

func TestEditFlowRenameConflictStillAdvances(t *testing.T) {
	ctx := context.Background()
	f, store, sessions := newTestFlows()

	a, _ := store.Create(ctx, "alpha", "m1", 0, 1)
	store.Create(ctx, "bravo", "m2", 0, 1)

	f.StartEdit(ctx, testUser, "alpha")
	reply := f.HandleText(ctx, testUser, "bravo")
	if !strings.Contains(reply, "already taken") {
		t.Fatalf("reply = %q", reply)
	}
	if sessions.GetState(testUser) != stageEditAwaitAudio {
		t.Fatal("conflict must still advance the stage")
	}

	got, _ := store.ByID(ctx, a.ID)
	if got.Name != "alpha" {
		t.Fatalf("name changed: %q", got.Name)
	}
}

func TestEditFlowUnknownIdentifierDoesNotEnter(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFlows()

	if got := f.StartEdit(ctx, testUser, "missing"); got != msgNotFound {
		t.Fatalf("reply = %q", got)
	}
	if f.InProgress(testUser) {
		t.Fatal("flow must not open for an unknown record")
	}
}

func TestEditFlowNumericIdentifierNeverMatchesName(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	// Record named "42" must not be reachable through the numeric form.
	store.Create(ctx, "42", "m1", 0, 1)
	if got := f.StartEdit(ctx, testUser, "42"); got != msgNotFound {
		t.Fatalf("reply = %q", got)
	}
}

func TestCancelClearsConversation(t *testing.T) {
	ctx := context.Background()
	f, store, _ := newTestFlows()

	rec, _ := store.Create(ctx, "owl", "m1", 0, 1)

	f.StartEdit(ctx, testUser, "owl")
	f.HandleText(ctx, testUser, skipToken)
	if got := f.Cancel(ctx, testUser); got != msgCancelled {
		t.Fatalf("cancel reply = %q", got)
	}
	if f.InProgress(testUser) {
		t.Fatal("cancel must return the user to idle")
	}

	got, _ := store.ByID(ctx, rec.ID)
	if got.FileID != "m1" {
		t.Fatalf("media changed by cancel: %q", got.FileID)
	}

	if got := f.Cancel(ctx, testUser); got != msgNothingToCancel {
		t.Fatalf("idle cancel reply = %q", got)
	}
}

func TestStartAddDropsStaleScratch(t *testing.T) {
	ctx := context.Background()
	f, store, sessions := newTestFlows()

	store.Create(ctx, "owl", "m1", 0, 1)

	// Abandon an edit flow mid-way, then start adding.
	f.StartEdit(ctx, testUser, "owl")
	f.StartAdd(ctx, testUser)
	if sessions.GetState(testUser) != stageAddAwaitAudio {
		t.Fatal("add flow must open")
	}
	if _, ok := sessions.GetTempInt64(testUser, tempRecordID); ok {
		t.Fatal("stale edit scratch must be cleared")
	}
}

func TestIdleEventsAreIgnored(t *testing.T) {
	ctx := context.Background()
	f, _, _ := newTestFlows()

	if got := f.HandleText(ctx, testUser, "hello"); got != "" {
		t.Fatalf("idle text reply = %q", got)
	}
	if got := f.HandleMedia(ctx, testUser, "m1", 0); got != "" {
		t.Fatalf("idle media reply = %q", got)
	}
}
