package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

// Saver persists the aggregate.
type Saver interface {
	Save(ctx context.Context) error
}

// AutosaveWorker saves the aggregate after mutations. Mutations that arrive while a save
// is running collapse into a single follow-up save.
type AutosaveWorker struct {
	saver   Saver
	logger  *zap.Logger
	timeout time.Duration
	pending chan struct{}
}

// NewAutosaveWorker creates the worker and subscribes it to mutation events.
func NewAutosaveWorker(dispatcher events.Dispatcher, saver Saver, logger *zap.Logger, timeout time.Duration) *AutosaveWorker {
	w := &AutosaveWorker{
		saver:   saver,
		logger:  logger.Named("autosave"),
		timeout: timeout,
		pending: make(chan struct{}, 1),
	}
	events.SubscribeAll(dispatcher, events.MutationEventTypes, w.handle)
	return w
}

func (w *AutosaveWorker) handle(context.Context, events.Event) error {
	select {
	case w.pending <- struct{}{}:
	default:
	}
	return nil
}

// Run saves whenever a mutation is pending until ctx is cancelled, then flushes
// a last pending save.
func (w *AutosaveWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case <-w.pending:
				w.save(context.Background())
			default:
			}
			return
		case <-w.pending:
			w.save(ctx)
		}
	}
}

func (w *AutosaveWorker) save(parent context.Context) {
	ctx := parent
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, w.timeout)
		defer cancel()
	}
	if err := w.saver.Save(ctx); err != nil {
		w.logger.Error("autosave failed", zap.Error(err))
		return
	}
	w.logger.Debug("autosaved")
}
