package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"marquee/internal/caption"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/pipeline"
	"marquee/internal/services"
)

// Bot is the subset of *tgbotapi.BotAPI the service drives.
type Bot interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Handler turns a request into a caption.
type Handler interface {
	Handle(ctx context.Context, req pipeline.Request) (caption.Caption, bool)
}

// Options tunes the update loop.
type Options struct {
	Workers      int
	PollTimeout  int
	AllowPrivate bool
}

// Service receives updates and answers movie requests.
type Service struct {
	bot     Bot
	handler Handler
	opts    Options
	logger  *slog.Logger

	handled atomic.Int64
	failed  atomic.Int64
}

// NewBotAPI connects to Telegram using cfg. It performs a getMe call to
// validate the token.
func NewBotAPI(cfg config.Telegram, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	_ = tgbotapi.SetLogger(botLogger{logger: logging.NewComponentLogger(logger, "telegram-api")})
	client := &http.Client{Timeout: time.Duration(cfg.PollTimeout)*time.Second + 15*time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return bot, nil
}

// NewService constructs a service. Workers below one are treated as one.
func NewService(bot Bot, handler Handler, opts Options, logger *slog.Logger) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.PollTimeout < 0 {
		opts.PollTimeout = 0
	}
	return &Service{
		bot:     bot,
		handler: handler,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "telegram"),
	}
}

// Handled returns the number of requests answered successfully.
func (s *Service) Handled() int64 {
	return s.handled.Load()
}

// Failed returns the number of requests whose reply could not be delivered.
func (s *Service) Failed() int64 {
	return s.failed.Load()
}

// Run polls for updates until ctx is cancelled or the update channel closes.
// Requests already dispatched finish before Run returns.
func (s *Service) Run(ctx context.Context) error {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = s.opts.PollTimeout
	updateCfg.AllowedUpdates = []string{"message"}
	updates := s.bot.GetUpdatesChan(updateCfg)

	workers := pool.New().WithMaxGoroutines(s.opts.Workers)
	// In-flight requests outlive shutdown; their remote calls are bounded by
	// client timeouts.
	workCtx := context.WithoutCancel(ctx)

	s.logger.Info("telegram update loop started",
		logging.Int("workers", s.opts.Workers),
		logging.Bool("allow_private", s.opts.AllowPrivate),
		logging.String(logging.FieldEventType, "bot_started"),
	)
	defer func() {
		workers.Wait()
		s.logger.Info("telegram update loop stopped",
			logging.Int64("handled", s.Handled()),
			logging.Int64("failed", s.Failed()),
			logging.String(logging.FieldEventType, "bot_stopped"),
		)
	}()

	for {
		select {
		case <-ctx.Done():
			s.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg := s.accept(update)
			if msg == nil {
				continue
			}
			workers.Go(func() {
				s.process(workCtx, msg)
			})
		}
	}
}

// accept returns the message to answer, or nil when the update is ignored.
func (s *Service) accept(update tgbotapi.Update) *tgbotapi.Message {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	if strings.TrimSpace(msg.Text) == "" || msg.IsCommand() {
		return nil
	}
	switch {
	case msg.Chat.IsGroup(), msg.Chat.IsSuperGroup():
		return msg
	case msg.Chat.IsPrivate() && s.opts.AllowPrivate:
		return msg
	default:
		return nil
	}
}

func (s *Service) process(ctx context.Context, msg *tgbotapi.Message) {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithChatID(ctx, msg.Chat.ID)
	ctx = services.WithUserID(ctx, userID)
	logger := logging.WithContext(ctx, s.logger)

	defer func() {
		if r := recover(); r != nil {
			s.failed.Add(1)
			logging.ErrorWithContext(logger, "request panicked", "request_panic",
				logging.String("panic", fmt.Sprint(r)),
				logging.String(logging.FieldErrorHint, "report the query that triggered this"),
			)
		}
	}()

	logger.Debug("request received", logging.Int("message_id", msg.MessageID))
	c, ok := s.handler.Handle(ctx, pipeline.Request{UserID: userID, ChatID: msg.Chat.ID, Query: msg.Text})
	if !ok {
		return
	}
	if err := Deliver(ctx, s.bot, msg.Chat.ID, msg.MessageID, c, s.logger); err != nil {
		s.failed.Add(1)
		return
	}
	s.handled.Add(1)
}

type botLogger struct {
	logger *slog.Logger
}

func (l botLogger) Println(v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l botLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
