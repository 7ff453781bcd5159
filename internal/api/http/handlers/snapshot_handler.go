package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

const xmlContentType = "application/xml; charset=utf-8"

// SnapshotHandler exposes persistence and snapshot transfer endpoints.
type SnapshotHandler struct {
	employees *service.EmployeeService
}

// NewSnapshotHandler constructs handler.
func NewSnapshotHandler(employees *service.EmployeeService) *SnapshotHandler {
	return &SnapshotHandler{employees: employees}
}

// Save handles POST /snapshot/save.
func (h *SnapshotHandler) Save(c *fiber.Ctx) error {
	if err := h.employees.Save(c.UserContext()); err != nil {
		return err
	}
	return h.status(c, "saved")
}

// Reload handles POST /snapshot/reload.
func (h *SnapshotHandler) Reload(c *fiber.Ctx) error {
	if err := h.employees.Reload(c.UserContext()); err != nil {
		return err
	}
	return h.status(c, "reloaded")
}

// Export handles GET /snapshot.
func (h *SnapshotHandler) Export(c *fiber.Ctx) error {
	doc, err := h.employees.Export()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xmlContentType)
	return c.Send(doc)
}

// Import handles PUT /snapshot.
func (h *SnapshotHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return apperrors.NewValidationError("snapshot document required", nil)
	}
	if err := h.employees.Import(c.UserContext(), body); err != nil {
		return err
	}
	return h.status(c, "imported")
}

func (h *SnapshotHandler) status(c *fiber.Ctx, status string) error {
	depts, err := h.employees.Departments()
	if err != nil {
		return err
	}
	resp := dto.SnapshotStatusResponse{Status: status, Departments: len(depts)}
	for _, d := range depts {
		resp.Employees += d.EmployeeCount
	}
	return c.JSON(fiber.Map{"data": resp})
}
