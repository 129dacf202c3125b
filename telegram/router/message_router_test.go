package router

import (
	"testing"

	tg "github.com/m3rciful/audiobot/telegram"
	"github.com/m3rciful/audiobot/telegram/commands"
	"github.com/m3rciful/audiobot/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the text route touches.
type fakeContext struct {
	tele.Context
	update tele.Update
	sender *tele.User
	store  map[string]interface{}
	sent   []interface{}
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		update: tele.Update{ID: 1, Message: &tele.Message{Text: text}},
		sender: &tele.User{ID: userID},
		store:  make(map[string]interface{}),
	}
}

func (f *fakeContext) Update() tele.Update { return f.update }

func (f *fakeContext) Message() *tele.Message { return f.update.Message }

func (f *fakeContext) Sender() *tele.User { return f.sender }

func (f *fakeContext) Chat() *tele.Chat { return nil }

func (f *fakeContext) Callback() *tele.Callback { return nil }

func (f *fakeContext) Query() *tele.Query { return nil }

func (f *fakeContext) Text() string { return f.update.Message.Text }

func (f *fakeContext) Set(key string, val interface{}) { f.store[key] = val }

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func textRoute(t *testing.T, routes []tg.Route) tg.Route {
	t.Helper()
	for _, r := range routes {
		if r.Endpoint == tele.OnText {
			return r
		}
	}
	t.Fatal("no OnText route built")
	return tg.Route{}
}

// Commands typed as plain text (without the slash) resolve through the
// registry and must keep the same admin gate as their slash endpoints.
func TestPlainTextCommandKeepsAdminGate(t *testing.T) {
	const adminID int64 = 1

	var handled, rejected bool
	reg := tg.NewRegistry()
	reg.RegisterCommand("/add", commands.Command{
		Handler:     func(c tele.Context) error { handled = true; return nil },
		Description: "store a clip",
		AdminOnly:   true,
	})

	routes := MessageRoutes(nil, reg, MessageOptions{
		Admin: middleware.AdminOptions{
			AdminID:  adminID,
			OnReject: func(c tele.Context) error { rejected = true; return nil },
		},
	})
	route := textRoute(t, routes)

	if err := route.Handler(newFakeContext(999, "add")); err != nil {
		t.Fatalf("non-admin dispatch: %v", err)
	}
	if handled {
		t.Fatal("admin-only handler ran for a non-admin via plain text")
	}
	if !rejected {
		t.Fatal("non-admin plain-text command must be rejected")
	}

	handled, rejected = false, false
	if err := route.Handler(newFakeContext(adminID, "add")); err != nil {
		t.Fatalf("admin dispatch: %v", err)
	}
	if !handled {
		t.Fatal("admin plain-text command must reach the handler")
	}
	if rejected {
		t.Fatal("admin must not be rejected")
	}
}

func TestPlainTextOpenCommandStaysReachable(t *testing.T) {
	var handled bool
	reg := tg.NewRegistry()
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     func(c tele.Context) error { handled = true; return nil },
		Description: "abort the current operation",
	})

	routes := MessageRoutes(nil, reg, MessageOptions{
		Admin: middleware.AdminOptions{AdminID: 1},
	})
	route := textRoute(t, routes)

	if err := route.Handler(newFakeContext(999, "cancel")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !handled {
		t.Fatal("open command must stay reachable for everyone")
	}
}
