package dto

// CreateEmployeeRequest payload for POST /employees.
type CreateEmployeeRequest struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	DepartmentID string `json:"department_id" validate:"required"`
}

// UpdateEmployeeRequest payload for PUT /employees/:id.
type UpdateEmployeeRequest struct {
	Name         string `json:"name" validate:"required"`
	DepartmentID string `json:"department_id" validate:"required"`
}

// EmployeeResponse represents an employee.
type EmployeeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
}
