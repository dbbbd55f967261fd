package notify

import (
	"context"
	"log/slog"
)

// ConsoleChannel writes reminder notices to the process log.
type ConsoleChannel struct {
	logger *slog.Logger
}

// NewConsoleChannel creates a console channel. A nil logger uses slog.Default.
func NewConsoleChannel(logger *slog.Logger) *ConsoleChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleChannel{logger: logger}
}

func (c *ConsoleChannel) Name() string { return "console" }

func (c *ConsoleChannel) Send(_ context.Context, msg Message, addr string) error {
	c.logger.Info("reminder notification",
		"title", msg.Title,
		"description", msg.Description,
		"remind_at", msg.RemindAt,
		"to", addr,
	)
	return nil
}
