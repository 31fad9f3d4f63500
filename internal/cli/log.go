package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, e.g.
// "Fetched 12 packages (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

// debug is done at debug level.
func (p *progress) debug(msg string) {
	p.logger.Debugf("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// documentLogHooks logs document refreshes at debug level.
type documentLogHooks struct{ logger *log.Logger }

func (h documentLogHooks) OnRefreshStart(context.Context) {
	h.logger.Debug("refreshing ecosystem document")
}

func (h documentLogHooks) OnRefreshComplete(_ context.Context, chapters int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("refresh failed", "err", err, "duration", d.Round(time.Millisecond))
		return
	}
	h.logger.Debug("document parsed", "chapters", chapters, "duration", d.Round(time.Millisecond))
}

type cacheLogHooks struct{ logger *log.Logger }

func (h cacheLogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "type", key)
}

func (h cacheLogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "type", key)
}

func (h cacheLogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "type", key, "bytes", size)
}

type httpLogHooks struct{ logger *log.Logger }

func (h httpLogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h httpLogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h httpLogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}
