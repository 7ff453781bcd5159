package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/snapshot"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// Options tunes EmployeeService behaviour.
type Options struct {
	// StrictIDs rejects loaded or imported snapshots that contain an employee id twice.
	StrictIDs bool
	// SanitizeNames strips markup from names before they are validated and stored.
	SanitizeNames bool
	// Driver and Key only label snapshot events.
	Driver string
	Key    string
}

// OptionsFromConfig derives service options from the application configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		StrictIDs:     cfg.Employees.StrictIDs,
		SanitizeNames: cfg.Employees.SanitizeNames,
		Driver:        cfg.Snapshot.Driver,
		Key:           cfg.Snapshot.Key,
	}
}

// EmployeeService owns the department aggregate for the process lifetime and serializes
// every query and mutation against it.
type EmployeeService struct {
	mu sync.Mutex
	// saveMu orders store writes so an older document never lands after a newer one.
	saveMu     sync.Mutex
	list       *domain.DepartmentList
	repo       repository.DepartmentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	opts       Options
	sanitizer  *NameSanitizer
}

// NewEmployeeService constructs the service. Load must be called before use.
func NewEmployeeService(repo repository.DepartmentRepository, dispatcher events.Dispatcher, logger *zap.Logger, opts Options) *EmployeeService {
	s := &EmployeeService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		opts:       opts,
	}
	if opts.SanitizeNames {
		s.sanitizer = NewNameSanitizer()
	}
	return s
}

// Load reads the aggregate from the repository, replacing whatever is held in memory.
func (s *EmployeeService) Load(ctx context.Context) error {
	res := <-s.repo.FindAllAsync(ctx)
	if res.Err != nil {
		return mapSnapshotError(res.Err)
	}
	if err := s.checkIDs(res.List); err != nil {
		return err
	}

	s.mu.Lock()
	s.list = res.List
	payload := s.snapshotPayload()
	s.mu.Unlock()

	s.publish(ctx, events.New(events.EventSnapshotLoaded, "", payload))
	return nil
}

// Reload discards unsaved changes and loads the stored aggregate again.
func (s *EmployeeService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Save persists the aggregate and returns once the store acknowledged the write.
func (s *EmployeeService) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.list == nil {
		s.mu.Unlock()
		return errNotLoaded()
	}
	done := s.repo.SaveAllAsync(ctx, s.list)
	payload := s.snapshotPayload()
	s.mu.Unlock()

	if err := <-done; err != nil {
		return apperrors.NewUnavailable("snapshot store unavailable", err)
	}
	s.publish(ctx, events.New(events.EventSnapshotSaved, "", payload))
	return nil
}

// Export returns the encoded snapshot of the current aggregate.
func (s *EmployeeService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nil, errNotLoaded()
	}
	return s.repo.Export(s.list), nil
}

// Import replaces the in-memory aggregate with the given snapshot document.
// The store is not written; call Save or rely on autosave.
func (s *EmployeeService) Import(ctx context.Context, data []byte) error {
	list, err := s.repo.Import(data)
	if err != nil {
		return mapSnapshotError(err)
	}
	if err := s.checkIDs(list); err != nil {
		return err
	}

	s.mu.Lock()
	s.list = list
	payload := s.snapshotPayload()
	s.mu.Unlock()

	s.publish(ctx, events.New(events.EventSnapshotImported, "", payload))
	return nil
}

// Search returns every employee matching all non-empty criteria.
func (s *EmployeeService) Search(filter SearchFilter) ([]EmployeeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nil, errNotLoaded()
	}
	found := s.list.FindEmployees(filter.EmployeeID, filter.EmployeeName, filter.DepartmentID)
	views := make([]EmployeeView, 0, len(found))
	for _, e := range found {
		views = append(views, employeeView(s.list, e))
	}
	return views, nil
}

// Get returns the first employee with the given id.
func (s *EmployeeService) Get(id string) (EmployeeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return EmployeeView{}, errNotLoaded()
	}
	e, ok := s.list.FindEmployeeByID(id)
	if !ok {
		return EmployeeView{}, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
	}
	return employeeView(s.list, e), nil
}

// Departments lists departments in aggregate order.
func (s *EmployeeService) Departments() ([]DepartmentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nil, errNotLoaded()
	}
	out := make([]DepartmentSummary, 0, len(s.list.Departments))
	for _, d := range s.list.Departments {
		out = append(out, DepartmentSummary{ID: d.ID, Name: d.Name, EmployeeCount: d.Employees.Len()})
	}
	return out, nil
}

// GetDepartment returns a department with its employees.
func (s *EmployeeService) GetDepartment(id string) (DepartmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return DepartmentView{}, errNotLoaded()
	}
	d, ok := s.list.FindDepartmentByID(id)
	if !ok {
		return DepartmentView{}, apperrors.NewNotFound("department", map[string]any{"department_id": id})
	}
	return departmentView(d), nil
}

// Add appends a new employee to the given department. The id must not be in use.
func (s *EmployeeService) Add(ctx context.Context, input EmployeeInput) (EmployeeView, error) {
	input.Name = s.cleanName(input.Name)
	if err := requireFields(input); err != nil {
		return EmployeeView{}, err
	}
	if err := s.checkText(input); err != nil {
		return EmployeeView{}, err
	}

	s.mu.Lock()
	if s.list == nil {
		s.mu.Unlock()
		return EmployeeView{}, errNotLoaded()
	}
	if _, exists := s.list.FindEmployeeByID(input.ID); exists {
		s.mu.Unlock()
		return EmployeeView{}, apperrors.NewDuplicateID(input.ID, &domain.DuplicateIDError{ID: input.ID})
	}
	dept, ok := s.list.FindDepartmentByID(input.DepartmentID)
	if !ok {
		s.mu.Unlock()
		return EmployeeView{}, apperrors.NewNotFound("department", map[string]any{"department_id": input.DepartmentID})
	}
	e := dept.AddEmployee(input.ID, input.Name)
	view := employeeView(s.list, e)
	s.mu.Unlock()

	s.publish(ctx, events.New(events.EventEmployeeAdded, view.ID,
		events.EmployeeAddedPayload{Name: view.Name, DepartmentID: view.DepartmentID}))
	return view, nil
}

// Update renames the employee and moves it when the department differs from the current one.
func (s *EmployeeService) Update(ctx context.Context, input EmployeeInput) (EmployeeView, error) {
	input.Name = s.cleanName(input.Name)
	if err := requireFields(input); err != nil {
		return EmployeeView{}, err
	}
	if err := s.checkText(input); err != nil {
		return EmployeeView{}, err
	}

	s.mu.Lock()
	if s.list == nil {
		s.mu.Unlock()
		return EmployeeView{}, errNotLoaded()
	}
	e, ok := s.list.FindEmployeeByID(input.ID)
	if !ok {
		s.mu.Unlock()
		return EmployeeView{}, apperrors.NewNotFound("employee", map[string]any{"employee_id": input.ID})
	}
	dept, ok := s.list.FindDepartmentByID(input.DepartmentID)
	if !ok {
		s.mu.Unlock()
		return EmployeeView{}, apperrors.NewNotFound("department", map[string]any{"department_id": input.DepartmentID})
	}
	oldName, oldDepartment := e.Name, e.DepartmentID
	s.list.UpdateEmployeeInfo(e, input.Name, dept)
	view := employeeView(s.list, e)
	s.mu.Unlock()

	pending := []events.Event{
		events.New(events.EventEmployeeUpdated, view.ID, events.EmployeeUpdatedPayload{OldName: oldName, NewName: view.Name}),
	}
	if oldDepartment != view.DepartmentID {
		pending = append(pending, events.New(events.EventEmployeeTransferred, view.ID,
			events.EmployeeTransferredPayload{FromDepartmentID: oldDepartment, ToDepartmentID: view.DepartmentID}))
	}
	s.publish(ctx, pending...)
	return view, nil
}

// Delete removes the first employee with the given id from its department.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("employee id is required", map[string]any{"field": "id"})
	}

	s.mu.Lock()
	if s.list == nil {
		s.mu.Unlock()
		return errNotLoaded()
	}
	e, ok := s.list.FindEmployeeByID(id)
	if !ok {
		s.mu.Unlock()
		return apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
	}
	departmentID := e.DepartmentID
	if dept, ok := s.list.FindDepartmentByID(departmentID); ok {
		dept.DeleteEmployee(id)
	}
	s.mu.Unlock()

	s.publish(ctx, events.New(events.EventEmployeeDeleted, id, events.EmployeeDeletedPayload{DepartmentID: departmentID}))
	return nil
}

func (s *EmployeeService) cleanName(name string) string {
	if s.sanitizer == nil {
		return name
	}
	return s.sanitizer.Sanitize(name)
}

// checkText rejects ids and names the snapshot encoding could not read back.
func (s *EmployeeService) checkText(input EmployeeInput) error {
	for _, f := range []struct{ name, value string }{{"id", input.ID}, {"name", input.Name}} {
		if err := s.repo.CheckText(f.value); err != nil {
			return apperrors.NewValidationError("field contains characters that cannot be stored",
				map[string]any{"field": f.name, "reason": err.Error()})
		}
	}
	return nil
}

func (s *EmployeeService) checkIDs(list *domain.DepartmentList) error {
	if !s.opts.StrictIDs {
		return nil
	}
	err := list.CheckUniqueEmployeeIDs()
	var dup *domain.DuplicateIDError
	if errors.As(err, &dup) {
		return apperrors.NewDuplicateID(dup.ID, err)
	}
	return err
}

// snapshotPayload must be called with s.mu held.
func (s *EmployeeService) snapshotPayload() events.SnapshotPayload {
	return events.SnapshotPayload{
		Driver:      s.opts.Driver,
		Key:         s.opts.Key,
		Departments: len(s.list.Departments),
		Employees:   s.list.EmployeeCount(),
	}
}

// publish runs outside the lock so handlers may call back into the service.
func (s *EmployeeService) publish(ctx context.Context, pending ...events.Event) {
	if s.dispatcher == nil {
		return
	}
	for _, event := range pending {
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
}

func requireFields(input EmployeeInput) error {
	missing := []string{}
	if input.ID == "" {
		missing = append(missing, "id")
	}
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.DepartmentID == "" {
		missing = append(missing, "department_id")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	return nil
}

func mapSnapshotError(err error) error {
	var formatErr *snapshot.FormatError
	if errors.As(err, &formatErr) {
		return apperrors.NewInvalidSnapshot(err)
	}
	return apperrors.NewUnavailable("snapshot store unavailable", err)
}

func errNotLoaded() error {
	return apperrors.NewUnavailable("departments not loaded", nil)
}
