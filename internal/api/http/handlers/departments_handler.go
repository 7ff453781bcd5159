package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// DepartmentsHandler exposes read-only department endpoints.
type DepartmentsHandler struct {
	employees *service.EmployeeService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(employees *service.EmployeeService) *DepartmentsHandler {
	return &DepartmentsHandler{employees: employees}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	depts, err := h.employees.Departments()
	if err != nil {
		return err
	}
	data := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		data = append(data, dto.DepartmentResponse{ID: d.ID, Name: d.Name, EmployeeCount: d.EmployeeCount})
	}
	return c.JSON(fiber.Map{"data": data})
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	d, err := h.employees.GetDepartment(c.Params("id"))
	if err != nil {
		return err
	}
	resp := dto.DepartmentDetailResponse{
		ID:             d.ID,
		Name:           d.Name,
		EmployeeListID: d.EmployeeListID,
		Employees:      make([]dto.EmployeeResponse, 0, len(d.Employees)),
	}
	for _, e := range d.Employees {
		resp.Employees = append(resp.Employees, employeeResponse(e))
	}
	return c.JSON(fiber.Map{"data": resp})
}
