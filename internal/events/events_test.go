package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestDispatcherRunsHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventEmployeeAdded, func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventEmployeeAdded, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventEmployeeDeleted, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	if err := d.Publish(context.Background(), New(EventEmployeeAdded, "e1", nil)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected calls %v", calls)
	}
}

func TestDispatcherJoinsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	errA := errors.New("a")
	errB := errors.New("b")
	ran := 0
	d.Subscribe(EventSnapshotSaved, func(context.Context, Event) error { ran++; return errA })
	d.Subscribe(EventSnapshotSaved, func(context.Context, Event) error { ran++; return nil })
	d.Subscribe(EventSnapshotSaved, func(context.Context, Event) error { ran++; return errB })

	err := d.Publish(context.Background(), New(EventSnapshotSaved, "", nil))
	if ran != 3 {
		t.Fatalf("expected every handler to run, ran %d", ran)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined errors, got %v", err)
	}
}

func TestNewStampsEvent(t *testing.T) {
	a := New(EventEmployeeAdded, "e1", EmployeeAddedPayload{Name: "Alice", DepartmentID: "d1"})
	b := New(EventEmployeeAdded, "e1", nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}

type recordingConn struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func TestNATSPublisherForwardsEvents(t *testing.T) {
	conn := &recordingConn{}
	d := NewInMemoryDispatcher()
	NewNATSPublisher(conn, "employees.events", zap.NewNop()).Register(d)

	event := New(EventEmployeeTransferred, "e1", EmployeeTransferredPayload{FromDepartmentID: "d1", ToDepartmentID: "d2"})
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(conn.subjects) != 1 || conn.subjects[0] != "employees.events.employee_transferred" {
		t.Fatalf("unexpected subjects %v", conn.subjects)
	}

	var decoded struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		EmployeeID string `json:"employee_id"`
		Payload    struct {
			To string `json:"to_department_id"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(conn.payloads[0], &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.ID != event.ID || decoded.Type != "employee_transferred" || decoded.EmployeeID != "e1" || decoded.Payload.To != "d2" {
		t.Fatalf("unexpected message %+v", decoded)
	}
}

func TestNATSPublisherReportsFailures(t *testing.T) {
	conn := &recordingConn{err: errors.New("nats: connection closed")}
	p := NewNATSPublisher(conn, "x", zap.NewNop())
	if err := p.Handle(context.Background(), New(EventSnapshotSaved, "", nil)); !errors.Is(err, conn.err) {
		t.Fatalf("expected publish error, got %v", err)
	}
}
