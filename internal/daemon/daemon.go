package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"

	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/searchlog"
)

// BotRunner is the long-running update loop owned by the daemon.
type BotRunner interface {
	Run(ctx context.Context) error
	Handled() int64
}

// SearchSource lists recent queries for the API.
type SearchSource interface {
	Recent(ctx context.Context, limit int) ([]searchlog.Entry, error)
}

// Daemon runs the bot under a single-instance lock and exposes its status.
type Daemon struct {
	cfg         *config.Config
	logger      *slog.Logger
	bot         BotRunner
	searches    SearchSource
	botUsername string
	clock       clockwork.Clock

	lockPath string
	lock     *flock.Flock
	api      *apiServer

	// lifecycle serializes Start and Stop; mu guards the fields below.
	lifecycle sync.Mutex
	mu        sync.Mutex
	running   atomic.Bool
	startedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}
	runErr    error
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool      `json:"running"`
	StartedAt     time.Time `json:"started_at,omitzero"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Handled       int64     `json:"handled"`
	BotUsername   string    `json:"bot_username,omitempty"`
	LockFilePath  string    `json:"lock_file_path"`
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithSearchSource enables the recent-searches endpoint.
func WithSearchSource(src SearchSource) Option {
	return func(d *Daemon) {
		d.searches = src
	}
}

// WithBotUsername records the bot account name reported by status.
func WithBotUsername(name string) Option {
	return func(d *Daemon) {
		d.botUsername = name
	}
}

// WithClock overrides the clock used for uptime.
func WithClock(clock clockwork.Clock) Option {
	return func(d *Daemon) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, bot BotRunner, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || bot == nil {
		return nil, errors.New("daemon requires config and bot")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		bot:      bot,
		clock:    clockwork.NewRealClock(),
		lockPath: cfg.LockPath(),
	}
	d.lock = flock.New(d.lockPath)
	for _, opt := range opts {
		opt(d)
	}
	d.api = newAPIServer(cfg.Paths.APIBind, d, logger)
	return d, nil
}

// Start acquires the lock, starts the API server and launches the bot.
func (d *Daemon) Start(ctx context.Context) error {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another marquee instance is already running")
	}

	if err := d.api.start(); err != nil {
		_ = d.lock.Unlock()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.runErr = nil
	d.startedAt = d.clock.Now()
	d.running.Store(true)

	go func(done chan struct{}) {
		defer close(done)
		err := d.bot.Run(runCtx)
		d.mu.Lock()
		d.runErr = err
		d.mu.Unlock()
		if err != nil {
			logging.ErrorWithContext(d.logger, "bot stopped with error", "bot_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the bot token and network access to Telegram"),
			)
		}
	}(d.done)

	d.logger.Info("marquee daemon started",
		logging.String("lock", d.lockPath),
		logging.String("bot", d.botUsername),
		logging.String(logging.FieldEventType, "daemon_started"),
	)
	return nil
}

// Done is closed once the bot loop has exited. It is nil before Start.
func (d *Daemon) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Err returns the error the bot loop exited with, if any.
func (d *Daemon) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runErr
}

// Stop cancels the bot, waits for in-flight requests, stops the API server
// and releases the lock.
func (d *Daemon) Stop() {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()

	d.mu.Lock()
	if !d.running.CompareAndSwap(true, false) {
		d.mu.Unlock()
		return
	}
	cancel, done := d.cancel, d.done
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.logger.Info("marquee daemon stopped",
		logging.Int64("handled", d.bot.Handled()),
		logging.String(logging.FieldEventType, "daemon_stopped"),
	)
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// APIAddr returns the address the API server listens on, or "" when disabled
// or not started.
func (d *Daemon) APIAddr() string {
	return d.api.addr()
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	startedAt := d.startedAt
	d.mu.Unlock()

	status := Status{
		Running:      d.running.Load(),
		Handled:      d.bot.Handled(),
		BotUsername:  d.botUsername,
		LockFilePath: d.lockPath,
	}
	if status.Running {
		status.StartedAt = startedAt.UTC()
		status.UptimeSeconds = int64(d.clock.Since(startedAt).Seconds())
	}
	return status
}

// RecentSearches lists recent queries. ok is false when no search log is
// configured.
func (d *Daemon) RecentSearches(ctx context.Context, limit int) ([]searchlog.Entry, bool, error) {
	if d.searches == nil {
		return nil, false, nil
	}
	entries, err := d.searches.Recent(ctx, limit)
	return entries, true, err
}
