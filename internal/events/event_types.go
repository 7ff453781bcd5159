package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeAdded       EventType = "employee_added"
	EventEmployeeUpdated     EventType = "employee_updated"
	EventEmployeeTransferred EventType = "employee_transferred"
	EventEmployeeDeleted     EventType = "employee_deleted"
	EventSnapshotSaved       EventType = "snapshot_saved"
	EventSnapshotLoaded      EventType = "snapshot_loaded"
	EventSnapshotImported    EventType = "snapshot_imported"
)

// AllEventTypes lists every event type in a stable order.
var AllEventTypes = []EventType{
	EventEmployeeAdded,
	EventEmployeeUpdated,
	EventEmployeeTransferred,
	EventEmployeeDeleted,
	EventSnapshotSaved,
	EventSnapshotLoaded,
	EventSnapshotImported,
}

// MutationEventTypes are the events that change the aggregate.
var MutationEventTypes = []EventType{
	EventEmployeeAdded,
	EventEmployeeUpdated,
	EventEmployeeTransferred,
	EventEmployeeDeleted,
	EventSnapshotImported,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, employeeID string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// EmployeeAddedPayload payload.
type EmployeeAddedPayload struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

// EmployeeUpdatedPayload payload.
type EmployeeUpdatedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// EmployeeTransferredPayload payload.
type EmployeeTransferredPayload struct {
	FromDepartmentID string `json:"from_department_id"`
	ToDepartmentID   string `json:"to_department_id"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	DepartmentID string `json:"department_id"`
}

// SnapshotPayload describes a snapshot load, save or import.
type SnapshotPayload struct {
	Driver      string `json:"driver"`
	Key         string `json:"key"`
	Departments int    `json:"departments"`
	Employees   int    `json:"employees"`
}
