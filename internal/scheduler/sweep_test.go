package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plannerhq/planner-go/internal/model"
	"github.com/plannerhq/planner-go/internal/notify"
	"github.com/plannerhq/planner-go/internal/repository"
)

type fakeReminderStore struct {
	reminders []model.Reminder
	listErr   error
	marked    []int64
}

func (f *fakeReminderStore) ListDue(_ context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var due []model.Reminder
	for _, r := range f.reminders {
		if !r.Delivered && !r.RemindAt.After(now) {
			due = append(due, r)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (f *fakeReminderStore) MarkDelivered(_ context.Context, id int64) error {
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			f.reminders[i].Delivered = true
		}
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeUserStore struct {
	users map[int64]*model.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

type fakeNotifier struct {
	err   error
	sends []string
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message, addr string) notify.Results {
	f.sends = append(f.sends, addr)
	return notify.Results{{Channel: "fake", Err: f.err}}
}

var fixedNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func newTestSweeper(store *fakeReminderStore, users *fakeUserStore, n *fakeNotifier) *Sweeper {
	s := NewSweeper(store, users, n, time.Minute, 500)
	s.now = func() time.Time { return fixedNow }
	return s
}

func singleUser() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*model.User{
		1: {ID: 1, Email: "owner@example.com"},
	}}
}

func TestRunTickDeliversOnlyDueReminders(t *testing.T) {
	store := &fakeReminderStore{reminders: []model.Reminder{
		{ID: 1, UserID: 1, Title: "overdue", RemindAt: fixedNow.Add(-time.Minute)},
		{ID: 2, UserID: 1, Title: "exactly now", RemindAt: fixedNow},
		{ID: 3, UserID: 1, Title: "future", RemindAt: fixedNow.Add(time.Minute)},
		{ID: 4, UserID: 1, Title: "already delivered", RemindAt: fixedNow.Add(-time.Hour), Delivered: true},
	}}
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	delivered, err := sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error: %v", err)
	}
	if delivered != 2 {
		t.Errorf("RunTick() delivered = %d, want 2", delivered)
	}
	if len(notifier.sends) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(notifier.sends))
	}
	if len(store.marked) != 2 || store.marked[0] != 1 || store.marked[1] != 2 {
		t.Errorf("expected reminders 1 and 2 marked, got %v", store.marked)
	}
	if !store.reminders[0].Delivered || !store.reminders[1].Delivered {
		t.Error("due reminders should be flagged delivered")
	}
	if store.reminders[2].Delivered {
		t.Error("future reminder must never be delivered")
	}
}

func TestRunTickEmptyBacklog(t *testing.T) {
	store := &fakeReminderStore{}
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	delivered, err := sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error: %v", err)
	}
	if delivered != 0 || len(notifier.sends) != 0 {
		t.Errorf("expected no work, got delivered=%d sends=%d", delivered, len(notifier.sends))
	}
}

func TestRunTickSelectionFailureAbortsTick(t *testing.T) {
	store := &fakeReminderStore{listErr: errors.New("connection refused")}
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	if _, err := sweeper.RunTick(context.Background()); err == nil {
		t.Fatal("RunTick() expected error when selection fails")
	}
	if len(notifier.sends) != 0 {
		t.Error("no notifications should be attempted when selection fails")
	}
}

func TestRunTickNotificationFailureLeavesUndelivered(t *testing.T) {
	store := &fakeReminderStore{reminders: []model.Reminder{
		{ID: 1, UserID: 1, Title: "due", RemindAt: fixedNow.Add(-time.Minute)},
	}}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	delivered, err := sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error: %v", err)
	}
	if delivered != 0 {
		t.Errorf("RunTick() delivered = %d, want 0", delivered)
	}
	if store.reminders[0].Delivered {
		t.Error("reminder must stay undelivered when every channel fails")
	}

	// Unconditional retry: the next tick attempts the same reminder again.
	notifier.err = nil
	delivered, err = sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error on retry: %v", err)
	}
	if delivered != 1 || !store.reminders[0].Delivered {
		t.Error("reminder should be delivered on the next tick once the channel recovers")
	}
}

func TestRunTickOrphanedReminderSkipped(t *testing.T) {
	store := &fakeReminderStore{reminders: []model.Reminder{
		{ID: 1, UserID: 99, Title: "orphan", RemindAt: fixedNow.Add(-time.Minute)},
		{ID: 2, UserID: 1, Title: "owned", RemindAt: fixedNow.Add(-time.Minute)},
	}}
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	delivered, err := sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error: %v", err)
	}
	if delivered != 1 {
		t.Errorf("RunTick() delivered = %d, want 1", delivered)
	}
	if len(notifier.sends) != 1 || notifier.sends[0] != "owner@example.com" {
		t.Errorf("expected exactly one notification to the owned reminder, got %v", notifier.sends)
	}
	if store.reminders[0].Delivered {
		t.Error("orphaned reminder must not be flagged delivered")
	}
}

func TestRunTickHonorsBatchSize(t *testing.T) {
	store := &fakeReminderStore{}
	for i := int64(1); i <= 10; i++ {
		store.reminders = append(store.reminders, model.Reminder{
			ID: i, UserID: 1, RemindAt: fixedNow.Add(-time.Hour),
		})
	}
	notifier := &fakeNotifier{}
	sweeper := NewSweeper(store, singleUser(), notifier, time.Minute, 3)
	sweeper.now = func() time.Time { return fixedNow }

	delivered, err := sweeper.RunTick(context.Background())
	if err != nil {
		t.Fatalf("RunTick() unexpected error: %v", err)
	}
	if delivered != 3 {
		t.Errorf("RunTick() delivered = %d, want batch cap 3", delivered)
	}
}

func TestDeliveredIsMonotonic(t *testing.T) {
	store := &fakeReminderStore{reminders: []model.Reminder{
		{ID: 1, UserID: 1, RemindAt: fixedNow.Add(-time.Minute)},
	}}
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, singleUser(), notifier)

	for i := 0; i < 3; i++ {
		if _, err := sweeper.RunTick(context.Background()); err != nil {
			t.Fatalf("RunTick() unexpected error: %v", err)
		}
	}

	if !store.reminders[0].Delivered {
		t.Error("reminder should be delivered")
	}
	if len(notifier.sends) != 1 {
		t.Errorf("delivered reminder re-notified: %d sends", len(notifier.sends))
	}
}
