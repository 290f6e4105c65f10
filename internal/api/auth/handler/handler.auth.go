// Package authhdl xử lý các request thuộc domain auth: đăng nhập, profile, danh bạ vai trò.
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
	"task_flow/internal/common"
	"task_flow/internal/logger"
)

// AuthHandler xử lý đăng nhập và các request liên quan đến danh tính actor
type AuthHandler struct {
	*basehdl.BaseHandler[models.Admin, authdto.LoginInput, authdto.ChangePasswordInput]
	authService *authsvc.AuthService
	directory   *authsvc.DirectoryService
}

// NewAuthHandler tạo instance mới của AuthHandler
func NewAuthHandler() (*AuthHandler, error) {
	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %v", err)
	}
	authService, err := authsvc.NewAuthService()
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %v", err)
	}
	directory, err := authsvc.GetDirectoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create directory service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Admin, authdto.LoginInput, authdto.ChangePasswordInput](adminService)
	return &AuthHandler{
		BaseHandler: baseHandler,
		authService: authService,
		directory:   directory,
	}, nil
}

// HandleLogin xử lý đăng nhập cho cả 4 vai trò, trả về JWT và danh tính
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.LoginInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		token, identity, err := h.authService.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"email": input.Email})
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAuth("login_success", c, map[string]interface{}{"email": identity.Email, "role": identity.Role})
		h.HandleResponse(c, fiber.Map{
			"token":       token,
			"identity":    identity,
			"displayName": identity.DisplayName(),
		}, nil)
		return nil
	})
}

// HandleGetProfile trả về danh tính của actor đang đăng nhập
func (h *AuthHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		email, ok := c.Locals("user_email").(string)
		if !ok || email == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		identity, err := h.directory.ResolveIdentity(c.Context(), email)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"identity":    identity,
			"displayName": identity.DisplayName(),
		}, nil)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu của chính actor đang đăng nhập
func (h *AuthHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		email, ok := c.Locals("user_email").(string)
		if !ok || email == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		input := new(authdto.ChangePasswordInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err := h.authService.ChangePassword(c.Context(), email, input.OldPassword, input.NewPassword)
		if err == nil {
			logger.LogAuth("change_password", c, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleResolveIdentity tra cứu danh tính theo email (query param email)
func (h *AuthHandler) HandleResolveIdentity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		email := c.Query("email")
		if email == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số email", common.StatusBadRequest, nil))
			return nil
		}
		identity, err := h.directory.ResolveIdentity(c.Context(), email)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"identity":    identity,
			"displayName": identity.DisplayName(),
		}, nil)
		return nil
	})
}
