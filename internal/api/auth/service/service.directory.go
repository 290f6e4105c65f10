// Package authsvc - service danh bạ vai trò (Role Directory).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "task_flow/internal/api/auth/models"
	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/api/events"
	"task_flow/internal/common"
	"task_flow/internal/global"
	"task_flow/internal/utility"
)

// DirectoryService tra cứu danh tính actor trên 4 collection vai trò rời nhau.
// Thứ tự ưu tiên khi trùng email: Admin → Manager → TeamLead → Employee
// (các collection được giả định không chia sẻ email; nếu trùng thì Admin thắng).
type DirectoryService struct {
	adminService    *basesvc.BaseServiceMongoImpl[models.Admin]
	managerService  *basesvc.BaseServiceMongoImpl[models.Manager]
	teamLeadService *basesvc.BaseServiceMongoImpl[models.TeamLead]
	employeeService *basesvc.BaseServiceMongoImpl[models.Employee]
	identityCache   *utility.Cache
}

var (
	directoryInstance *DirectoryService
	directoryOnce     sync.Once
	directoryInitErr  error
)

// GetDirectoryService trả về singleton DirectoryService.
// Dùng singleton để cache danh tính được chia sẻ giữa middleware và các service.
func GetDirectoryService() (*DirectoryService, error) {
	directoryOnce.Do(func() {
		directoryInstance, directoryInitErr = newDirectoryService()
		if directoryInitErr == nil {
			// Dữ liệu vai trò thay đổi thì cache danh tính không còn đáng tin
			events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
				switch e.CollectionName {
				case global.MongoDB_ColNames.Admins,
					global.MongoDB_ColNames.Managers,
					global.MongoDB_ColNames.TeamLeads,
					global.MongoDB_ColNames.Employees:
					directoryInstance.identityCache.Flush()
				}
			})
		}
	})
	return directoryInstance, directoryInitErr
}

func newDirectoryService() (*DirectoryService, error) {
	adminCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Admins)
	if !exist {
		return nil, fmt.Errorf("failed to get admins collection: %v", common.ErrNotFound)
	}
	managerCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Managers)
	if !exist {
		return nil, fmt.Errorf("failed to get managers collection: %v", common.ErrNotFound)
	}
	teamLeadCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TeamLeads)
	if !exist {
		return nil, fmt.Errorf("failed to get team_leads collection: %v", common.ErrNotFound)
	}
	employeeCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Employees)
	if !exist {
		return nil, fmt.Errorf("failed to get employees collection: %v", common.ErrNotFound)
	}

	return &DirectoryService{
		adminService:    basesvc.NewBaseServiceMongo[models.Admin](adminCollection),
		managerService:  basesvc.NewBaseServiceMongo[models.Manager](managerCollection),
		teamLeadService: basesvc.NewBaseServiceMongo[models.TeamLead](teamLeadCollection),
		employeeService: basesvc.NewBaseServiceMongo[models.Employee](employeeCollection),
		identityCache:   utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// NormalizeEmail chuẩn hóa email về dạng lowercase, đã trim.
// Mọi so sánh email trong hệ thống đều dùng dạng chuẩn hóa này.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ResolveIdentity tra cứu danh tính theo email (đã chuẩn hóa) trên 4 collection
// theo thứ tự ưu tiên. Trả về common.ErrUserNotFound nếu không tìm thấy ở đâu.
// Chỉ đọc, không ghi.
func (s *DirectoryService) ResolveIdentity(ctx context.Context, email string) (*models.Identity, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, common.ErrUserNotFound
	}

	if cached, ok := s.identityCache.Get(normalized); ok {
		if identity, ok := cached.(*models.Identity); ok {
			return identity, nil
		}
	}

	identity, err := s.lookupIdentity(ctx, normalized)
	if err != nil {
		return nil, err
	}

	s.identityCache.Set(normalized, identity)
	return identity, nil
}

// lookupIdentity đọc trực tiếp từ database, bỏ qua cache.
func (s *DirectoryService) lookupIdentity(ctx context.Context, normalized string) (*models.Identity, error) {
	filter := bson.M{"email": normalized}

	admin, err := s.adminService.FindOne(ctx, filter, nil)
	if err == nil {
		return &models.Identity{
			ID:         admin.ID,
			Role:       models.RoleAdmin,
			Email:      admin.Email,
			FirstName:  admin.FirstName,
			LastName:   admin.LastName,
			Name:       admin.Name,
			Department: admin.Department,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	manager, err := s.managerService.FindOne(ctx, filter, nil)
	if err == nil {
		return &models.Identity{
			ID:         manager.ID,
			Role:       models.RoleManager,
			Email:      manager.Email,
			FirstName:  manager.FirstName,
			LastName:   manager.LastName,
			Name:       manager.Name,
			Department: manager.Department,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	teamLead, err := s.teamLeadService.FindOne(ctx, filter, nil)
	if err == nil {
		return &models.Identity{
			ID:         teamLead.ID,
			Role:       models.RoleTeamLead,
			Email:      teamLead.Email,
			FirstName:  teamLead.FirstName,
			LastName:   teamLead.LastName,
			Name:       teamLead.Name,
			Department: teamLead.Department,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	employee, err := s.employeeService.FindOne(ctx, filter, nil)
	if err == nil {
		return &models.Identity{
			ID:         employee.ID,
			Role:       models.RoleEmployee,
			Email:      employee.Email,
			FirstName:  employee.FirstName,
			LastName:   employee.LastName,
			Name:       employee.Name,
			Department: employee.Department,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	return nil, common.ErrUserNotFound
}

// ListAdmins trả về danh tính của toàn bộ Admin.
// Luôn đọc trực tiếp từ database (không cache) để phản ánh roster tại thời điểm gọi.
func (s *DirectoryService) ListAdmins(ctx context.Context) ([]models.Identity, error) {
	admins, err := s.adminService.Find(ctx, bson.M{}, nil)
	if err != nil {
		return nil, err
	}
	identities := make([]models.Identity, 0, len(admins))
	for _, admin := range admins {
		identities = append(identities, models.Identity{
			ID:         admin.ID,
			Role:       models.RoleAdmin,
			Email:      admin.Email,
			FirstName:  admin.FirstName,
			LastName:   admin.LastName,
			Name:       admin.Name,
			Department: admin.Department,
		})
	}
	return identities, nil
}

// ManagerIdentity đọc danh tính một manager theo ID.
func (s *DirectoryService) ManagerIdentity(ctx context.Context, id primitive.ObjectID) (*models.Identity, error) {
	manager, err := s.managerService.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		ID:         manager.ID,
		Role:       models.RoleManager,
		Email:      manager.Email,
		FirstName:  manager.FirstName,
		LastName:   manager.LastName,
		Name:       manager.Name,
		Department: manager.Department,
	}, nil
}

// TeamLeadIdentity đọc danh tính một team lead theo ID.
func (s *DirectoryService) TeamLeadIdentity(ctx context.Context, id primitive.ObjectID) (*models.Identity, error) {
	teamLead, err := s.teamLeadService.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		ID:         teamLead.ID,
		Role:       models.RoleTeamLead,
		Email:      teamLead.Email,
		FirstName:  teamLead.FirstName,
		LastName:   teamLead.LastName,
		Name:       teamLead.Name,
		Department: teamLead.Department,
	}, nil
}

// EmployeeIdentity đọc danh tính một employee theo ID.
func (s *DirectoryService) EmployeeIdentity(ctx context.Context, id primitive.ObjectID) (*models.Identity, error) {
	employee, err := s.employeeService.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		ID:         employee.ID,
		Role:       models.RoleEmployee,
		Email:      employee.Email,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		Name:       employee.Name,
		Department: employee.Department,
	}, nil
}
