package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubChannel struct {
	name  string
	err   error
	sends int
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(_ context.Context, _ Message, _ string) error {
	s.sends++
	return s.err
}

func TestNotifierSendAllChannels(t *testing.T) {
	ok := &stubChannel{name: "ok"}
	failing := &stubChannel{name: "failing", err: errors.New("smtp down")}
	n := NewNotifier(failing, ok)

	results := n.Send(context.Background(), Message{Title: "standup"}, "me@example.com")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if failing.sends != 1 || ok.sends != 1 {
		t.Errorf("expected both channels attempted, got failing=%d ok=%d", failing.sends, ok.sends)
	}
	if results[0].Err == nil {
		t.Error("expected error result for failing channel")
	}
	if results[1].Err != nil {
		t.Errorf("unexpected error for ok channel: %v", results[1].Err)
	}
}

func TestResultsDelivered(t *testing.T) {
	if (Results{}).Delivered() {
		t.Error("empty results should not count as delivered")
	}

	allFailed := Results{{Channel: "email", Err: errors.New("boom")}}
	if allFailed.Delivered() {
		t.Error("all-failed results should not count as delivered")
	}

	partial := Results{
		{Channel: "email", Err: errors.New("boom")},
		{Channel: "console", Err: nil},
	}
	if !partial.Delivered() {
		t.Error("one successful channel should count as delivered")
	}
}

func TestMessageBody(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	msg := Message{Title: "dentist", Description: "bring insurance card", RemindAt: at}

	body := msg.Body()
	if !strings.Contains(body, "Title: dentist") {
		t.Errorf("body missing title: %q", body)
	}
	if !strings.Contains(body, "bring insurance card") {
		t.Errorf("body missing description: %q", body)
	}

	noDesc := Message{Title: "dentist", RemindAt: at}.Body()
	if strings.Contains(noDesc, "Description:") {
		t.Errorf("body should omit empty description: %q", noDesc)
	}
}

func TestConsoleChannelAlwaysSucceeds(t *testing.T) {
	ch := NewConsoleChannel(nil)
	if err := ch.Send(context.Background(), Message{Title: "x"}, "me@example.com"); err != nil {
		t.Errorf("console channel should not fail: %v", err)
	}
}
