package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/snapshot"
)

// DepartmentRepository loads and stores the whole department aggregate as one snapshot.
type DepartmentRepository interface {
	FindAll(ctx context.Context) (*domain.DepartmentList, error)
	SaveAll(ctx context.Context, list *domain.DepartmentList) error
	FindAllAsync(ctx context.Context) <-chan LoadResult
	SaveAllAsync(ctx context.Context, list *domain.DepartmentList) <-chan error
	Export(list *domain.DepartmentList) []byte
	Import(data []byte) (*domain.DepartmentList, error)
	CheckText(value string) error
}

// LoadResult is delivered by FindAllAsync.
type LoadResult struct {
	List *domain.DepartmentList
	Err  error
}

// Options configures the repository.
type Options struct {
	Key           string
	Codec         snapshot.Options
	SeedOnCorrupt bool
	NewID         func() string
}

// OptionsFromConfig derives repository options from the snapshot configuration.
func OptionsFromConfig(cfg config.SnapshotConfig) Options {
	return Options{
		Key:           cfg.Key,
		Codec:         snapshot.Options{EscapeText: cfg.EscapeText},
		SeedOnCorrupt: cfg.OnCorrupt == config.OnCorruptSeed,
	}
}

type departmentRepository struct {
	store   persistence.SnapshotStore
	opts    Options
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(store persistence.SnapshotStore, opts Options, logger *zap.Logger, metrics *observability.Metrics) DepartmentRepository {
	if opts.Key == "" {
		opts.Key = config.DefaultSnapshotKey
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &departmentRepository{store: store, opts: opts, logger: logger, metrics: metrics}
}

// FindAll returns the stored aggregate, or the default seed when nothing is stored yet.
func (r *departmentRepository) FindAll(ctx context.Context) (*domain.DepartmentList, error) {
	data, err := r.store.Load(ctx, r.opts.Key)
	if errors.Is(err, persistence.ErrSnapshotNotFound) {
		r.metrics.RecordSnapshot("load", nil)
		r.logger.Info("no stored snapshot; using default departments", zap.String("key", r.opts.Key))
		return DefaultDepartmentList(r.opts.NewID), nil
	}
	if err != nil {
		r.metrics.RecordSnapshot("load", err)
		return nil, fmt.Errorf("load snapshot %s: %w", r.opts.Key, err)
	}

	list, err := snapshot.Decode(data)
	if err != nil {
		r.metrics.RecordSnapshot("load", err)
		if r.opts.SeedOnCorrupt {
			r.logger.Warn("stored snapshot is malformed; using default departments",
				zap.String("key", r.opts.Key), zap.Error(err))
			return DefaultDepartmentList(r.opts.NewID), nil
		}
		return nil, err
	}
	r.metrics.RecordSnapshot("load", nil)
	return list, nil
}

// SaveAll encodes the aggregate and returns once the store acknowledged the write.
func (r *departmentRepository) SaveAll(ctx context.Context, list *domain.DepartmentList) error {
	return r.save(ctx, r.Export(list))
}

func (r *departmentRepository) save(ctx context.Context, data []byte) error {
	err := r.store.Save(ctx, r.opts.Key, data)
	r.metrics.RecordSnapshot("save", err)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", r.opts.Key, err)
	}
	r.logger.Debug("snapshot saved", zap.String("key", r.opts.Key), zap.Int("bytes", len(data)))
	return nil
}

// FindAllAsync runs FindAll in the background; the channel yields one result and closes.
func (r *departmentRepository) FindAllAsync(ctx context.Context) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		list, err := r.FindAll(ctx)
		ch <- LoadResult{List: list, Err: err}
	}()
	return ch
}

// SaveAllAsync encodes the aggregate immediately and writes it in the background.
// The channel yields the write result once the store acknowledged it, then closes.
func (r *departmentRepository) SaveAllAsync(ctx context.Context, list *domain.DepartmentList) <-chan error {
	data := r.Export(list)
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- r.save(ctx, data)
	}()
	return ch
}

func (r *departmentRepository) Export(list *domain.DepartmentList) []byte {
	return snapshot.Encode(list, r.opts.Codec)
}

func (r *departmentRepository) Import(data []byte) (*domain.DepartmentList, error) {
	return snapshot.Decode(data)
}

// CheckText reports a value the configured encoding cannot store and read back.
func (r *departmentRepository) CheckText(value string) error {
	return r.opts.Codec.CheckText(value)
}
