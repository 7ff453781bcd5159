package dto

// DepartmentResponse represents a department in listings.
type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employee_count"`
}

// DepartmentDetailResponse represents a department with its members.
type DepartmentDetailResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	EmployeeListID string             `json:"employee_list_id"`
	Employees      []EmployeeResponse `json:"employees"`
}

// SnapshotStatusResponse reports the outcome of a snapshot operation.
type SnapshotStatusResponse struct {
	Status      string `json:"status"`
	Departments int    `json:"departments"`
	Employees   int    `json:"employees"`
}
