// Package notify implements the best-effort notification sink for reminder
// dispatch. Channels fail independently; the notifier reports an explicit
// result per channel instead of swallowing errors.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Message is the reminder content handed to every channel.
type Message struct {
	Title       string
	Description string
	RemindAt    time.Time
}

// Body renders the plain-text notice shared by the channels.
func (m Message) Body() string {
	var b strings.Builder
	b.WriteString("Hello,\n\nThis is a reminder notification:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", m.Title)
	if m.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", m.Description)
	}
	fmt.Fprintf(&b, "Scheduled Time: %s\n", m.RemindAt.Format(time.RFC1123))
	b.WriteString("\nBest regards,\nPlanner Team")
	return b.String()
}

// Channel delivers a message to one destination over one transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message, addr string) error
}

// Result is the outcome of one channel's delivery attempt.
type Result struct {
	Channel string
	Err     error
}

// Results collects per-channel outcomes of a single Send.
type Results []Result

// Delivered reports whether at least one channel succeeded.
func (rs Results) Delivered() bool {
	for _, r := range rs {
		if r.Err == nil {
			return true
		}
	}
	return false
}

// Notifier fans a message out to every configured channel. A channel failure
// never aborts the remaining channels.
type Notifier struct {
	channels []Channel
}

// NewNotifier creates a Notifier over the given channels.
func NewNotifier(channels ...Channel) *Notifier {
	return &Notifier{channels: channels}
}

// Send attempts delivery on every channel and returns one result per channel.
func (n *Notifier) Send(ctx context.Context, msg Message, addr string) Results {
	results := make(Results, 0, len(n.channels))
	for _, ch := range n.channels {
		results = append(results, Result{
			Channel: ch.Name(),
			Err:     ch.Send(ctx, msg, addr),
		})
	}
	return results
}
