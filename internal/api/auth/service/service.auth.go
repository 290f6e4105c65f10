// Package authsvc - đăng nhập, phát hành JWT và các helper mật khẩu.
package authsvc

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	models "task_flow/internal/api/auth/models"
	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/common"
	"task_flow/internal/global"
)

// AuthService xử lý đăng nhập và đổi mật khẩu cho cả 4 vai trò.
type AuthService struct {
	directory *DirectoryService
}

// NewAuthService tạo mới AuthService
func NewAuthService() (*AuthService, error) {
	directory, err := GetDirectoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create directory service: %v", err)
	}
	return &AuthService{directory: directory}, nil
}

// HashPassword băm mật khẩu bằng bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}
	return string(bytes), nil
}

// ComparePassword so sánh mật khẩu thô với hash bcrypt đã lưu.
func ComparePassword(hashed, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}

// Login xác thực email + mật khẩu và phát hành JWT.
// Danh tính được resolve qua DirectoryService (Admin thắng khi trùng email).
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, *models.Identity, error) {
	identity, err := s.directory.ResolveIdentity(ctx, email)
	if err != nil {
		// Không lộ việc email có tồn tại hay không
		return "", nil, common.ErrInvalidCredentials
	}

	hashed, err := s.lookupPassword(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	if err := ComparePassword(hashed, password); err != nil {
		return "", nil, err
	}

	token, err := GenerateToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// ChangePassword đổi mật khẩu của chính actor sau khi xác minh mật khẩu cũ.
func (s *AuthService) ChangePassword(ctx context.Context, email string, oldPassword string, newPassword string) error {
	identity, err := s.directory.ResolveIdentity(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := s.lookupPassword(ctx, identity)
	if err != nil {
		return err
	}
	if err := ComparePassword(hashed, oldPassword); err != nil {
		return err
	}

	newHashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": newHashed,
		},
	}
	switch identity.Role {
	case models.RoleAdmin:
		_, err = s.directory.adminService.UpdateById(ctx, identity.ID, updateData)
	case models.RoleManager:
		_, err = s.directory.managerService.UpdateById(ctx, identity.ID, updateData)
	case models.RoleTeamLead:
		_, err = s.directory.teamLeadService.UpdateById(ctx, identity.ID, updateData)
	case models.RoleEmployee:
		_, err = s.directory.employeeService.UpdateById(ctx, identity.ID, updateData)
	default:
		err = common.ErrUserNotFound
	}
	return err
}

// lookupPassword đọc hash mật khẩu từ collection tương ứng với vai trò.
func (s *AuthService) lookupPassword(ctx context.Context, identity *models.Identity) (string, error) {
	filter := bson.M{"_id": identity.ID}
	switch identity.Role {
	case models.RoleAdmin:
		admin, err := s.directory.adminService.FindOne(ctx, filter, nil)
		if err != nil {
			return "", err
		}
		return admin.Password, nil
	case models.RoleManager:
		manager, err := s.directory.managerService.FindOne(ctx, filter, nil)
		if err != nil {
			return "", err
		}
		return manager.Password, nil
	case models.RoleTeamLead:
		teamLead, err := s.directory.teamLeadService.FindOne(ctx, filter, nil)
		if err != nil {
			return "", err
		}
		return teamLead.Password, nil
	case models.RoleEmployee:
		employee, err := s.directory.employeeService.FindOne(ctx, filter, nil)
		if err != nil {
			return "", err
		}
		return employee.Password, nil
	}
	return "", common.ErrUserNotFound
}

// GenerateToken phát hành JWT chứa userId, email và role của actor.
func GenerateToken(identity *models.Identity) (string, error) {
	now := time.Now()
	claims := models.JwtToken{
		UserID:       identity.ID.Hex(),
		Email:        identity.Email,
		Role:         identity.Role,
		Time:         strconv.FormatInt(now.Unix(), 10),
		RandomNumber: strconv.Itoa(rand.Intn(100000)),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(72 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.MongoDB_ServerConfig.JwtSecret))
	if err != nil {
		return "", common.NewError(common.ErrCodeAuthToken, "Không thể phát hành token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// ParseToken giải mã và kiểm tra chữ ký JWT.
func ParseToken(tokenString string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// IsAdminFromContext kiểm tra actor trong context hiện tại có phải Admin không.
// Middleware auth set user_role vào request context; các service hệ thống
// (bảo vệ IsSystem) dùng hàm này qua basesvc.SetIsAdminFromContextFunc.
func IsAdminFromContext(ctx context.Context) bool {
	if role, ok := ctx.Value("user_role").(string); ok {
		return role == models.RoleAdmin
	}
	return false
}
