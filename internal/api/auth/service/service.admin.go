// Package authsvc - service CRUD cho collection admins.
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

// AdminService là cấu trúc chứa các phương thức liên quan đến quản trị viên
type AdminService struct {
	*basesvc.BaseServiceMongoImpl[models.Admin]
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	adminCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Admins)
	if !exist {
		return nil, fmt.Errorf("failed to get admins collection: %v", common.ErrNotFound)
	}
	return &AdminService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Admin](adminCollection),
	}, nil
}

// Create tạo admin mới với email đã chuẩn hóa và mật khẩu đã băm bcrypt.
func (s *AdminService) Create(ctx context.Context, input *authdto.AdminCreateInput) (models.Admin, error) {
	var zero models.Admin
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return zero, err
	}
	admin := models.Admin{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Name:       input.Name,
		Email:      NormalizeEmail(input.Email),
		Password:   hashed,
		Department: input.Department,
		Phone:      input.Phone,
	}
	return s.InsertOne(ctx, admin)
}
