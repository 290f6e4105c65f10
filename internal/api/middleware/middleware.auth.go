// Package middleware - xác thực JWT và kiểm tra vai trò cho các route.
package middleware

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authsvc "task_flow/internal/api/auth/service"
	"task_flow/internal/common"
)

// AuthManager quản lý xác thực: giải mã JWT và resolve danh tính từ danh bạ vai trò.
// Danh tính được cache bên trong DirectoryService nên mỗi request không phải
// đọc database lại (cache được invalidate khi dữ liệu vai trò thay đổi).
type AuthManager struct {
	directory *authsvc.DirectoryService
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
	authManagerInitErr  error
)

// GetAuthManager trả về singleton AuthManager.
func GetAuthManager() (*AuthManager, error) {
	authManagerOnce.Do(func() {
		directory, err := authsvc.GetDirectoryService()
		if err != nil {
			authManagerInitErr = err
			return
		}
		authManagerInstance = &AuthManager{directory: directory}
	})
	return authManagerInstance, authManagerInitErr
}

// AuthMiddleware xác thực JWT từ Authorization header (Bearer).
// requiredRoles rỗng nghĩa là chỉ cần đăng nhập; có requiredRoles thì vai trò
// của actor (đọc từ danh bạ, không tin role trong token) phải nằm trong danh sách.
// Sau khi xác thực, set các locals: user_id, user_email, user_role, user_name.
func AuthMiddleware(requiredRoles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		manager, err := GetAuthManager()
		if err != nil {
			logrus.WithError(err).Error("❌ [AUTH] Không khởi tạo được AuthManager")
			HandleErrorResponse(c, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err))
			return nil
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logrus.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Thiếu Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			logrus.WithFields(logrus.Fields{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Authorization header không đúng định dạng Bearer")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := authsvc.ParseToken(parts[1])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token không hợp lệ hoặc đã hết hạn")
			HandleErrorResponse(c, err)
			return nil
		}

		// Danh bạ là nguồn sự thật về vai trò; token chỉ dùng để nhận diện actor.
		identity, err := manager.directory.ResolveIdentity(c.Context(), claims.Email)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": claims.Email,
			}).Warn("❌ [AUTH] Không tìm thấy actor trong danh bạ vai trò")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if len(requiredRoles) > 0 {
			allowed := false
			for _, role := range requiredRoles {
				if identity.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				logrus.WithFields(logrus.Fields{
					"email": identity.Email,
					"role":  identity.Role,
					"path":  c.Path(),
				}).Warn("❌ [AUTH] Vai trò không đủ quyền truy cập route")
				HandleErrorResponse(c, common.ErrAccessDenied)
				return nil
			}
		}

		c.Locals("user_id", identity.ID.Hex())
		c.Locals("user_email", identity.Email)
		c.Locals("user_role", identity.Role)
		c.Locals("user_name", identity.DisplayName())

		return c.Next()
	}
}
