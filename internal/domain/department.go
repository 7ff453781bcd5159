package domain

// Department represents an organizational unit and the employees assigned to it.
type Department struct {
	ID        string
	Name      string
	Employees *EmployeeList
}

// NewDepartment builds a department. A nil employee list is replaced by an empty one.
func NewDepartment(id, name string, employees *EmployeeList) *Department {
	if employees == nil {
		employees = NewEmployeeList("")
	}
	return &Department{ID: id, Name: name, Employees: employees}
}

// AddEmployee appends a new employee to the department. Ids are not checked for uniqueness.
func (d *Department) AddEmployee(employeeID, name string) *Employee {
	employee := &Employee{ID: employeeID, Name: name, DepartmentID: d.ID}
	d.Employees.Employees = append(d.Employees.Employees, employee)
	return employee
}

// DeleteEmployee removes the first employee with the given id and reports whether one was removed.
func (d *Department) DeleteEmployee(employeeID string) bool {
	i := d.Employees.indexOf(employeeID)
	if i < 0 {
		return false
	}
	d.Employees.removeAt(i)
	return true
}
