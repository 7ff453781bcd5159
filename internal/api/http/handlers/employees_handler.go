package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// EmployeesHandler exposes employee search and CRUD endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// Search handles GET /employees.
func (h *EmployeesHandler) Search(c *fiber.Ctx) error {
	found, err := h.employees.Search(service.SearchFilter{
		EmployeeID:   c.Query("employee_id"),
		EmployeeName: c.Query("employee_name"),
		DepartmentID: c.Query("department_id"),
	})
	if err != nil {
		return err
	}
	data := make([]dto.EmployeeResponse, 0, len(found))
	for _, e := range found {
		data = append(data, employeeResponse(e))
	}
	return c.JSON(fiber.Map{"data": data})
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	e, err := h.employees.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(e)})
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	e, err := h.employees.Add(c.UserContext(), service.EmployeeInput{
		ID:           req.ID,
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(e)})
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	e, err := h.employees.Update(c.UserContext(), service.EmployeeInput{
		ID:           c.Params("id"),
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(e)})
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func employeeResponse(e service.EmployeeView) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
	}
}
