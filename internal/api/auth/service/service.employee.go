// Package authsvc - service CRUD cho collection employees.
package authsvc

import (
	"context"
	"fmt"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/common"
	"task_flow/internal/global"
)

// EmployeeService là cấu trúc chứa các phương thức liên quan đến nhân viên
type EmployeeService struct {
	*basesvc.BaseServiceMongoImpl[models.Employee]
}

// NewEmployeeService tạo mới EmployeeService
func NewEmployeeService() (*EmployeeService, error) {
	employeeCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Employees)
	if !exist {
		return nil, fmt.Errorf("failed to get employees collection: %v", common.ErrNotFound)
	}
	return &EmployeeService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Employee](employeeCollection),
	}, nil
}

// Create tạo employee mới với email đã chuẩn hóa và mật khẩu đã băm bcrypt.
func (s *EmployeeService) Create(ctx context.Context, input *authdto.EmployeeCreateInput) (models.Employee, error) {
	var zero models.Employee
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return zero, err
	}
	employee := models.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Name:       input.Name,
		Email:      NormalizeEmail(input.Email),
		Password:   hashed,
		Department: input.Department,
		Phone:      input.Phone,
	}
	return s.InsertOne(ctx, employee)
}
