package telegram_test

import (
	"context"
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"marquee/internal/caption"
	"marquee/internal/pipeline"
)

type fakeSender struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	failPhoto bool
	failText  bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	switch c.(type) {
	case tgbotapi.PhotoConfig:
		if f.failPhoto {
			return tgbotapi.Message{}, errors.New("Bad Request: wrong file identifier/HTTP URL specified")
		}
	case tgbotapi.MessageConfig:
		if f.failText {
			return tgbotapi.Message{}, errors.New("Forbidden: bot was kicked")
		}
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) snapshot() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.sent...)
}

type fakeBot struct {
	fakeSender
	updates chan tgbotapi.Update
	stopped chan struct{}
	once    sync.Once
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 16), stopped: make(chan struct{})}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.once.Do(func() { close(b.stopped) })
}

type fakeHandler struct {
	mu       sync.Mutex
	requests []pipeline.Request
	panicOn  string
}

func (h *fakeHandler) Handle(_ context.Context, req pipeline.Request) (caption.Caption, bool) {
	if req.Query == h.panicOn {
		panic("boom")
	}
	h.mu.Lock()
	h.requests = append(h.requests, req)
	h.mu.Unlock()
	return caption.Caption{Text: "<b>" + req.Query + "</b>"}, true
}

func (h *fakeHandler) queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.requests))
	for _, r := range h.requests {
		out = append(out, r.Query)
	}
	return out
}

func groupMessage(id int, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: id,
		From:      &tgbotapi.User{ID: 42},
		Chat:      &tgbotapi.Chat{ID: -1001, Type: "supergroup"},
		Text:      text,
	}}
}
