package service

import "github.com/spec-kit/employee-service/internal/domain"

// SearchFilter holds the three optional search criteria; empty fields are ignored.
type SearchFilter struct {
	EmployeeID   string
	EmployeeName string
	DepartmentID string
}

// EmployeeInput carries the fields of an add or update request.
type EmployeeInput struct {
	ID           string
	Name         string
	DepartmentID string
}

// EmployeeView is a detached copy of an employee with its department name resolved.
type EmployeeView struct {
	ID             string
	Name           string
	DepartmentID   string
	DepartmentName string
}

// DepartmentSummary is a department without its members.
type DepartmentSummary struct {
	ID            string
	Name          string
	EmployeeCount int
}

// DepartmentView is a department with its members in list order.
type DepartmentView struct {
	ID             string
	Name           string
	EmployeeListID string
	Employees      []EmployeeView
}

func employeeView(list *domain.DepartmentList, e *domain.Employee) EmployeeView {
	view := EmployeeView{ID: e.ID, Name: e.Name, DepartmentID: e.DepartmentID}
	if dept, ok := list.FindDepartmentByID(e.DepartmentID); ok {
		view.DepartmentName = dept.Name
	}
	return view
}

func departmentView(d *domain.Department) DepartmentView {
	view := DepartmentView{
		ID:             d.ID,
		Name:           d.Name,
		EmployeeListID: d.Employees.ID,
		Employees:      make([]EmployeeView, 0, d.Employees.Len()),
	}
	for _, e := range d.Employees.Employees {
		view.Employees = append(view.Employees, EmployeeView{ID: e.ID, Name: e.Name, DepartmentID: d.ID, DepartmentName: d.Name})
	}
	return view
}
