package repository

import "github.com/spec-kit/employee-service/internal/domain"

// Default department names, in display order.
const (
	DevelopmentDepartmentName = "開発部"
	SalesDepartmentName       = "営業部"
	GeneralAffairsName        = "総務部"
)

// DefaultDepartmentList builds the initial aggregate: three empty departments with fresh ids.
func DefaultDepartmentList(newID func() string) *domain.DepartmentList {
	devEmployees := domain.NewEmployeeList(newID())
	salesEmployees := domain.NewEmployeeList(newID())
	generalEmployees := domain.NewEmployeeList(newID())

	return domain.NewDepartmentList(newID(),
		domain.NewDepartment(newID(), DevelopmentDepartmentName, devEmployees),
		domain.NewDepartment(newID(), SalesDepartmentName, salesEmployees),
		domain.NewDepartment(newID(), GeneralAffairsName, generalEmployees),
	)
}
