package searchlog

import (
	"context"
	"log/slog"

	"marquee/internal/logging"
)

// Recorder writes searches on the request path without ever failing it.
type Recorder struct {
	store  *Store
	logger *slog.Logger
}

// NewRecorder wraps store. A nil store makes every call a no-op.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logging.NewComponentLogger(logger, "searchlog")}
}

// LogSearch records the query; failures are logged and dropped.
func (r *Recorder) LogSearch(ctx context.Context, userID, chatID int64, query string) {
	if r == nil || r.store == nil {
		return
	}
	if _, err := r.store.Record(ctx, Entry{UserID: userID, ChatID: chatID, Query: query}); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "search log write failed", "search_log_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check search_log.path permissions and disk space"),
			logging.String(logging.FieldImpact, "query not recorded in search history"),
		)
	}
}
