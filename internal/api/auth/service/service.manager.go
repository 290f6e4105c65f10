// Package authsvc - service CRUD cho collection managers.
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

// ManagerService là cấu trúc chứa các phương thức liên quan đến quản lý
type ManagerService struct {
	*basesvc.BaseServiceMongoImpl[models.Manager]
}

// NewManagerService tạo mới ManagerService
func NewManagerService() (*ManagerService, error) {
	managerCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Managers)
	if !exist {
		return nil, fmt.Errorf("failed to get managers collection: %v", common.ErrNotFound)
	}
	return &ManagerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Manager](managerCollection),
	}, nil
}

// Create tạo manager mới với email đã chuẩn hóa và mật khẩu đã băm bcrypt.
func (s *ManagerService) Create(ctx context.Context, input *authdto.ManagerCreateInput) (models.Manager, error) {
	var zero models.Manager
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return zero, err
	}
	manager := models.Manager{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Name:       input.Name,
		Email:      NormalizeEmail(input.Email),
		Password:   hashed,
		Department: input.Department,
		Phone:      input.Phone,
	}
	return s.InsertOne(ctx, manager)
}
