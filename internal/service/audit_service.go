package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

// AuditService writes one structured log line per domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeAdded, a.handleEmployeeEvent)
	a.dispatcher.Subscribe(events.EventEmployeeUpdated, a.handleEmployeeEvent)
	a.dispatcher.Subscribe(events.EventEmployeeTransferred, a.handleEmployeeEvent)
	a.dispatcher.Subscribe(events.EventEmployeeDeleted, a.handleEmployeeEvent)
	a.dispatcher.Subscribe(events.EventSnapshotSaved, a.handleSnapshotEvent)
	a.dispatcher.Subscribe(events.EventSnapshotLoaded, a.handleSnapshotEvent)
	a.dispatcher.Subscribe(events.EventSnapshotImported, a.handleSnapshotEvent)
}

func (a *AuditService) handleEmployeeEvent(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("employee_id", event.EmployeeID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleSnapshotEvent(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Any("payload", event.Payload))
	return nil
}
