package domain

// Employee represents a person assigned to exactly one department.
// DepartmentID is a lookup key only; membership is owned by the department's EmployeeList.
type Employee struct {
	ID           string
	Name         string
	DepartmentID string
}

// EmployeeList is the ordered employee collection owned by a department.
type EmployeeList struct {
	ID        string
	Employees []*Employee
}

// NewEmployeeList builds an employee list with the given members.
func NewEmployeeList(id string, employees ...*Employee) *EmployeeList {
	list := &EmployeeList{ID: id, Employees: make([]*Employee, 0, len(employees))}
	list.Employees = append(list.Employees, employees...)
	return list
}

// Len returns the number of employees in the list.
func (l *EmployeeList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Employees)
}

func (l *EmployeeList) indexOf(employeeID string) int {
	for i, e := range l.Employees {
		if e.ID == employeeID {
			return i
		}
	}
	return -1
}

func (l *EmployeeList) removeAt(i int) {
	l.Employees = append(l.Employees[:i], l.Employees[i+1:]...)
}
