package domain

import (
	"fmt"
	"strings"
)

// DepartmentList is the root aggregate holding every department and, through them, every employee.
type DepartmentList struct {
	ID          string
	Departments []*Department
}

// DuplicateIDError reports an employee id that occurs more than once.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate employee id %q", e.ID)
}

// NewDepartmentList builds the aggregate from the given departments, keeping their order.
func NewDepartmentList(id string, departments ...*Department) *DepartmentList {
	list := &DepartmentList{ID: id, Departments: make([]*Department, 0, len(departments))}
	list.Departments = append(list.Departments, departments...)
	return list
}

// FindEmployees returns every employee matching all non-empty criteria:
// exact employee id, case-sensitive substring of the name and exact owning department id.
// The result follows department order, then insertion order, and is never nil.
func (l *DepartmentList) FindEmployees(employeeID, employeeName, departmentID string) []*Employee {
	result := []*Employee{}
	for _, dept := range l.Departments {
		for _, e := range dept.Employees.Employees {
			if employeeID != "" && e.ID != employeeID {
				continue
			}
			if employeeName != "" && !strings.Contains(e.Name, employeeName) {
				continue
			}
			if departmentID != "" && e.DepartmentID != departmentID {
				continue
			}
			result = append(result, e)
		}
	}
	return result
}

// FindEmployeeByID returns the first employee with the given id.
func (l *DepartmentList) FindEmployeeByID(employeeID string) (*Employee, bool) {
	if employeeID == "" {
		return nil, false
	}
	found := l.FindEmployees(employeeID, "", "")
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// FindDepartmentByID returns the first department with the given id.
func (l *DepartmentList) FindDepartmentByID(departmentID string) (*Department, bool) {
	for _, dept := range l.Departments {
		if dept.ID == departmentID {
			return dept, true
		}
	}
	return nil, false
}

// UpdateEmployeeInfo renames the employee and, when the target department id differs from the
// current one, moves the employee into the target department's list.
// Both sides of the membership change in this one call.
func (l *DepartmentList) UpdateEmployeeInfo(employee *Employee, name string, department *Department) {
	employee.Name = name

	if department == nil || department.ID == employee.DepartmentID {
		return
	}

	if current, ok := l.FindDepartmentByID(employee.DepartmentID); ok {
		current.DeleteEmployee(employee.ID)
	}
	department.Employees.Employees = append(department.Employees.Employees, employee)
	employee.DepartmentID = department.ID
}

// EmployeeCount returns the number of employees across all departments.
func (l *DepartmentList) EmployeeCount() int {
	n := 0
	for _, dept := range l.Departments {
		n += dept.Employees.Len()
	}
	return n
}

// CheckUniqueEmployeeIDs returns a *DuplicateIDError for the first employee id seen twice.
func (l *DepartmentList) CheckUniqueEmployeeIDs() error {
	seen := make(map[string]struct{}, l.EmployeeCount())
	for _, dept := range l.Departments {
		for _, e := range dept.Employees.Employees {
			if _, ok := seen[e.ID]; ok {
				return &DuplicateIDError{ID: e.ID}
			}
			seen[e.ID] = struct{}{}
		}
	}
	return nil
}
