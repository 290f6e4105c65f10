// Package authsvc - service CRUD cho collection team_leads.
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

// TeamLeadService là cấu trúc chứa các phương thức liên quan đến trưởng nhóm
type TeamLeadService struct {
	*basesvc.BaseServiceMongoImpl[models.TeamLead]
}

// NewTeamLeadService tạo mới TeamLeadService
func NewTeamLeadService() (*TeamLeadService, error) {
	teamLeadCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TeamLeads)
	if !exist {
		return nil, fmt.Errorf("failed to get team_leads collection: %v", common.ErrNotFound)
	}
	return &TeamLeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TeamLead](teamLeadCollection),
	}, nil
}

// Create tạo team lead mới với email đã chuẩn hóa và mật khẩu đã băm bcrypt.
func (s *TeamLeadService) Create(ctx context.Context, input *authdto.TeamLeadCreateInput) (models.TeamLead, error) {
	var zero models.TeamLead
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return zero, err
	}
	teamLead := models.TeamLead{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Name:       input.Name,
		Email:      NormalizeEmail(input.Email),
		Password:   hashed,
		Department: input.Department,
		Phone:      input.Phone,
	}
	return s.InsertOne(ctx, teamLead)
}
