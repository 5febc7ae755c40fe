package sitecontent

import (
	"context"
	"log/slog"
)

// NoopEventSink is an event sink that discards all events
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink
func NewNoopEventSink() *NoopEventSink {
	return &NoopEventSink{}
}

func (s *NoopEventSink) ContentCreated(ctx context.Context, item *ContentItem) error { return nil }
func (s *NoopEventSink) ContentUpdated(ctx context.Context, item *ContentItem) error { return nil }
func (s *NoopEventSink) ContentDeleted(ctx context.Context, id string) error         { return nil }

// LogEventSink writes content lifecycle events to a structured logger
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink backed by the given logger. A nil
// logger falls back to slog.Default.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) ContentCreated(ctx context.Context, item *ContentItem) error {
	s.logger.InfoContext(ctx, "content created",
		"content_id", item.ID, "type", item.Type, "slug", item.Slug, "status", item.Status)
	return nil
}

func (s *LogEventSink) ContentUpdated(ctx context.Context, item *ContentItem) error {
	s.logger.InfoContext(ctx, "content updated",
		"content_id", item.ID, "type", item.Type, "slug", item.Slug, "status", item.Status)
	return nil
}

func (s *LogEventSink) ContentDeleted(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "content deleted", "content_id", id)
	return nil
}
