package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/snapshot"
)

type failingStore struct {
	*persistence.MemoryStore
	loadErr error
	saveErr error
}

func (s *failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.MemoryStore.Load(ctx, key)
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStore.Save(ctx, key, data)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestRepository(store persistence.SnapshotStore, opts Options) DepartmentRepository {
	if opts.NewID == nil {
		opts.NewID = sequentialIDs()
	}
	return NewDepartmentRepository(store, opts, zap.NewNop(), nil)
}

func TestDefaultDepartmentList(t *testing.T) {
	list := DefaultDepartmentList(sequentialIDs())
	names := []string{DevelopmentDepartmentName, SalesDepartmentName, GeneralAffairsName}
	if len(list.Departments) != len(names) {
		t.Fatalf("expected %d departments, got %d", len(names), len(list.Departments))
	}
	seen := map[string]bool{list.ID: true}
	for i, dept := range list.Departments {
		if dept.Name != names[i] {
			t.Fatalf("department %d: got %q want %q", i, dept.Name, names[i])
		}
		if dept.Employees.Len() != 0 {
			t.Fatalf("department %q is not empty", dept.Name)
		}
		for _, id := range []string{dept.ID, dept.Employees.ID} {
			if id == "" || seen[id] {
				t.Fatalf("id %q is empty or reused", id)
			}
			seen[id] = true
		}
	}
}

func TestFindAllSeedsWhenNothingStored(t *testing.T) {
	repo := newTestRepository(persistence.NewMemoryStore(), Options{})
	list, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(list.Departments) != 3 || list.EmployeeCount() != 0 {
		t.Fatalf("expected empty seed, got %d departments %d employees", len(list.Departments), list.EmployeeCount())
	}
}

func TestSaveAllThenFindAll(t *testing.T) {
	store := persistence.NewMemoryStore()
	repo := newTestRepository(store, Options{Codec: snapshot.DefaultOptions})
	ctx := context.Background()

	list, _ := repo.FindAll(ctx)
	list.Departments[1].AddEmployee("e1", "R&D <Alice>")
	if err := repo.SaveAll(ctx, list); err != nil {
		t.Fatalf("save all: %v", err)
	}

	stored, err := store.Load(ctx, config.DefaultSnapshotKey)
	if err != nil {
		t.Fatalf("expected snapshot under default key: %v", err)
	}
	if len(stored) == 0 {
		t.Fatal("stored snapshot is empty")
	}

	reloaded, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	found := reloaded.FindEmployees("e1", "", "")
	if len(found) != 1 || found[0].Name != "R&D <Alice>" || found[0].DepartmentID != list.Departments[1].ID {
		t.Fatalf("unexpected reloaded employee %+v", found)
	}
}

func TestFindAllCorruptSnapshot(t *testing.T) {
	store := persistence.NewMemoryStore()
	if err := store.Save(context.Background(), "k", []byte("<departmentListModel>")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	repo := newTestRepository(store, Options{Key: "k"})
	_, err := repo.FindAll(context.Background())
	var formatErr *snapshot.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}

	repo = newTestRepository(store, Options{Key: "k", SeedOnCorrupt: true})
	list, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("expected seed fallback, got %v", err)
	}
	if len(list.Departments) != 3 {
		t.Fatalf("expected seeded departments, got %d", len(list.Departments))
	}
}

func TestFindAllSurfacesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	repo := newTestRepository(&failingStore{MemoryStore: persistence.NewMemoryStore(), loadErr: boom}, Options{})
	if _, err := repo.FindAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAsyncVariants(t *testing.T) {
	store := &failingStore{MemoryStore: persistence.NewMemoryStore()}
	repo := newTestRepository(store, Options{})
	ctx := context.Background()

	res := <-repo.FindAllAsync(ctx)
	if res.Err != nil {
		t.Fatalf("find all async: %v", res.Err)
	}
	res.List.Departments[0].AddEmployee("e1", "Alice")

	done := repo.SaveAllAsync(ctx, res.List)
	// The document is captured before SaveAllAsync returns.
	res.List.Departments[0].AddEmployee("e2", "Bob")
	if err := <-done; err != nil {
		t.Fatalf("save all async: %v", err)
	}
	if _, ok := <-done; ok {
		t.Fatal("expected channel to be closed after the result")
	}

	again := <-repo.FindAllAsync(ctx)
	if again.Err != nil || again.List.EmployeeCount() != 1 {
		t.Fatalf("expected one persisted employee, got %v %v", again.List, again.Err)
	}

	store.saveErr = errors.New("disk full")
	if err := <-repo.SaveAllAsync(ctx, res.List); !errors.Is(err, store.saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.SnapshotConfig{Key: "k", EscapeText: true, OnCorrupt: config.OnCorruptSeed})
	if opts.Key != "k" || !opts.Codec.EscapeText || !opts.SeedOnCorrupt {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestSeedAddSearchTransferScenario(t *testing.T) {
	repo := newTestRepository(persistence.NewMemoryStore(), Options{Codec: snapshot.DefaultOptions})
	ctx := context.Background()

	list, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(list.Departments) != 3 || list.EmployeeCount() != 0 {
		t.Fatal("expected three empty departments")
	}
	dev, sales := list.Departments[0], list.Departments[1]
	if dev.Name != DevelopmentDepartmentName || sales.Name != SalesDepartmentName {
		t.Fatalf("unexpected seed order %q %q", dev.Name, sales.Name)
	}

	dev.AddEmployee("e1", "Alice")
	found := list.FindEmployees("", "Ali", "")
	if len(found) != 1 || found[0].ID != "e1" {
		t.Fatalf("expected exactly e1, got %+v", found)
	}

	list.UpdateEmployeeInfo(found[0], "Alice B.", sales)

	gotSales, ok := list.FindDepartmentByID(sales.ID)
	if !ok || len(gotSales.Employees.Employees) != 1 || gotSales.Employees.Employees[0].ID != "e1" {
		t.Fatalf("expected e1 in %s", SalesDepartmentName)
	}
	gotDev, ok := list.FindDepartmentByID(dev.ID)
	if !ok || gotDev.Employees.Len() != 0 {
		t.Fatalf("expected e1 removed from %s", DevelopmentDepartmentName)
	}

	if err := repo.SaveAll(ctx, list); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	e, ok := reloaded.FindEmployeeByID("e1")
	if !ok || e.Name != "Alice B." || e.DepartmentID != sales.ID {
		t.Fatalf("unexpected reloaded employee %+v", e)
	}
}
