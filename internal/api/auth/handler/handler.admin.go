package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
)

// AdminHandler xử lý CRUD cho collection admins
type AdminHandler struct {
	*basehdl.BaseHandler[models.Admin, authdto.AdminCreateInput, authdto.AdminUpdateInput]
	adminService *authsvc.AdminService
}

// NewAdminHandler tạo instance mới của AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Admin, authdto.AdminCreateInput, authdto.AdminUpdateInput](adminService)
	return &AdminHandler{
		BaseHandler:  baseHandler,
		adminService: adminService,
	}, nil
}

// HandleInsertOne tạo admin mới, băm mật khẩu trước khi lưu
func (h *AdminHandler) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.AdminCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.adminService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
