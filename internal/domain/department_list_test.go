package domain

import (
	"errors"
	"testing"
)

func newTestList() (*DepartmentList, *Department, *Department, *Department) {
	dev := NewDepartment("d-dev", "開発部", NewEmployeeList("l-dev"))
	sales := NewDepartment("d-sales", "営業部", NewEmployeeList("l-sales"))
	general := NewDepartment("d-general", "総務部", NewEmployeeList("l-general"))
	return NewDepartmentList("root", dev, sales, general), dev, sales, general
}

func ids(employees []*Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddEmployeeSetsDepartmentAndOrder(t *testing.T) {
	_, dev, _, _ := newTestList()
	first := dev.AddEmployee("e1", "Alice")
	dev.AddEmployee("e2", "Bob")

	if first.DepartmentID != dev.ID {
		t.Fatalf("expected department %s, got %s", dev.ID, first.DepartmentID)
	}
	if got := ids(dev.Employees.Employees); !equalIDs(got, []string{"e1", "e2"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestAddEmployeeAllowsDuplicateIDs(t *testing.T) {
	_, dev, _, _ := newTestList()
	dev.AddEmployee("e1", "Alice")
	dev.AddEmployee("e1", "Alice again")
	if dev.Employees.Len() != 2 {
		t.Fatalf("expected 2 employees, got %d", dev.Employees.Len())
	}
}

func TestDeleteEmployeeRemovesFirstMatchOnly(t *testing.T) {
	_, dev, _, _ := newTestList()
	dev.AddEmployee("e1", "first")
	dev.AddEmployee("e2", "other")
	dev.AddEmployee("e1", "second")

	if !dev.DeleteEmployee("e1") {
		t.Fatal("expected delete to report a removal")
	}
	if got := ids(dev.Employees.Employees); !equalIDs(got, []string{"e2", "e1"}) {
		t.Fatalf("unexpected ids after delete %v", got)
	}
	if dev.Employees.Employees[1].Name != "second" {
		t.Fatalf("expected the second duplicate to remain, got %q", dev.Employees.Employees[1].Name)
	}
}

func TestDeleteEmployeeUnknownIDLeavesListUnchanged(t *testing.T) {
	_, dev, _, _ := newTestList()
	a := dev.AddEmployee("e1", "Alice")
	b := dev.AddEmployee("e2", "Bob")

	if dev.DeleteEmployee("missing") {
		t.Fatal("expected no removal")
	}
	if dev.Employees.Len() != 2 || dev.Employees.Employees[0] != a || dev.Employees.Employees[1] != b {
		t.Fatalf("collection changed: %v", ids(dev.Employees.Employees))
	}
}

func TestFindEmployeesANDSemantics(t *testing.T) {
	list, dev, sales, _ := newTestList()
	dev.AddEmployee("e1", "Alice Smith")
	dev.AddEmployee("e2", "Bob")
	sales.AddEmployee("e3", "Alice Jones")
	sales.AddEmployee("e4", "alice lower")

	tests := []struct {
		name                string
		id, empName, deptID string
		want                []string
	}{
		{name: "all empty returns everything in order", want: []string{"e1", "e2", "e3", "e4"}},
		{name: "exact id", id: "e3", want: []string{"e3"}},
		{name: "id is not a substring match", id: "e", want: []string{}},
		{name: "name substring is case sensitive", empName: "Alice", want: []string{"e1", "e3"}},
		{name: "name substring unanchored", empName: "ice", want: []string{"e1", "e3", "e4"}},
		{name: "department filter", deptID: sales.ID, want: []string{"e3", "e4"}},
		{name: "name and department", empName: "Alice", deptID: sales.ID, want: []string{"e3"}},
		{name: "all three", id: "e1", empName: "Smith", deptID: dev.ID, want: []string{"e1"}},
		{name: "conflicting criteria", id: "e1", deptID: sales.ID, want: []string{}},
		{name: "unknown department", deptID: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := list.FindEmployees(tt.id, tt.empName, tt.deptID)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFindDepartmentByID(t *testing.T) {
	list, _, sales, _ := newTestList()
	got, ok := list.FindDepartmentByID(sales.ID)
	if !ok || got != sales {
		t.Fatalf("expected sales department, got %v %v", got, ok)
	}
	if _, ok := list.FindDepartmentByID("missing"); ok {
		t.Fatal("expected not found")
	}
}

func TestFindEmployeeByID(t *testing.T) {
	list, dev, _, _ := newTestList()
	e := dev.AddEmployee("e1", "Alice")
	got, ok := list.FindEmployeeByID("e1")
	if !ok || got != e {
		t.Fatalf("expected employee e1, got %v %v", got, ok)
	}
	if _, ok := list.FindEmployeeByID(""); ok {
		t.Fatal("empty id must not match")
	}
}

func TestUpdateEmployeeInfoTransfers(t *testing.T) {
	list, dev, sales, _ := newTestList()
	e := dev.AddEmployee("e1", "Alice")
	dev.AddEmployee("e2", "Bob")

	list.UpdateEmployeeInfo(e, "Alice B.", sales)

	if e.Name != "Alice B." {
		t.Fatalf("expected rename, got %q", e.Name)
	}
	if e.DepartmentID != sales.ID {
		t.Fatalf("expected department %s, got %s", sales.ID, e.DepartmentID)
	}
	if got := ids(dev.Employees.Employees); !equalIDs(got, []string{"e2"}) {
		t.Fatalf("old department still lists %v", got)
	}
	count := 0
	for _, m := range sales.Employees.Employees {
		if m == e {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected employee once in new department, found %d", count)
	}
}

func TestUpdateEmployeeInfoSameDepartmentIDOnlyRenames(t *testing.T) {
	list, dev, _, _ := newTestList()
	a := dev.AddEmployee("e1", "Alice")
	b := dev.AddEmployee("e2", "Bob")

	lookalike := NewDepartment(dev.ID, "another object", NewEmployeeList("other"))
	list.UpdateEmployeeInfo(a, "Alicia", lookalike)

	if a.Name != "Alicia" {
		t.Fatalf("expected rename, got %q", a.Name)
	}
	if lookalike.Employees.Len() != 0 {
		t.Fatal("lookalike department must not receive the employee")
	}
	if dev.Employees.Employees[0] != a || dev.Employees.Employees[1] != b {
		t.Fatal("membership order changed")
	}
}

func TestEmployeeCountAndUniqueIDs(t *testing.T) {
	list, dev, sales, _ := newTestList()
	dev.AddEmployee("e1", "Alice")
	sales.AddEmployee("e2", "Bob")
	if list.EmployeeCount() != 2 {
		t.Fatalf("expected 2, got %d", list.EmployeeCount())
	}
	if err := list.CheckUniqueEmployeeIDs(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	sales.AddEmployee("e1", "Clone")
	err := list.CheckUniqueEmployeeIDs()
	var dup *DuplicateIDError
	if !errors.As(err, &dup) || dup.ID != "e1" {
		t.Fatalf("expected duplicate e1, got %v", err)
	}
}
