package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/service"
)

type countingSaver struct {
	calls atomic.Int32
	saved chan struct{}
	err   error
}

func (s *countingSaver) Save(context.Context) error {
	s.calls.Add(1)
	s.saved <- struct{}{}
	return s.err
}

func waitSaved(t *testing.T, s *countingSaver) {
	t.Helper()
	select {
	case <-s.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for autosave")
	}
}

func TestAutosaveSavesAfterMutation(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	saver := &countingSaver{saved: make(chan struct{}, 4)}
	w := NewAutosaveWorker(dispatcher, saver, zap.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	_ = dispatcher.Publish(context.Background(), events.New(events.EventEmployeeAdded, "e1", nil))
	waitSaved(t, saver)

	_ = dispatcher.Publish(context.Background(), events.New(events.EventSnapshotSaved, "", nil))
	_ = dispatcher.Publish(context.Background(), events.New(events.EventSnapshotLoaded, "", nil))
	select {
	case <-saver.saved:
		t.Fatal("non-mutation events must not trigger a save")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAutosaveCoalescesPendingMutations(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	saver := &countingSaver{saved: make(chan struct{}, 4)}
	w := NewAutosaveWorker(dispatcher, saver, zap.NewNop(), 0)

	for i := 0; i < 5; i++ {
		_ = dispatcher.Publish(context.Background(), events.New(events.EventEmployeeUpdated, "e1", nil))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	waitSaved(t, saver)
	cancel()
	<-done

	if n := saver.calls.Load(); n != 1 {
		t.Fatalf("expected one save, got %d", n)
	}
}

func TestAutosaveFlushesOnShutdown(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	saver := &countingSaver{saved: make(chan struct{}, 4), err: errors.New("store down")}
	w := NewAutosaveWorker(dispatcher, saver, zap.NewNop(), 0)
	_ = dispatcher.Publish(context.Background(), events.New(events.EventEmployeeDeleted, "e1", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)

	if n := saver.calls.Load(); n != 1 {
		t.Fatalf("expected final flush, got %d saves", n)
	}
}

func TestStartAuditWorker(t *testing.T) {
	StartAuditWorker(nil)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(service.NewAuditService(dispatcher, zap.NewNop()))
	if err := dispatcher.Publish(context.Background(), events.New(events.EventEmployeeAdded, "e1", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
