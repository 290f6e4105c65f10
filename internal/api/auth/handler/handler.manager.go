package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
)

// ManagerHandler xử lý CRUD cho collection managers
type ManagerHandler struct {
	*basehdl.BaseHandler[models.Manager, authdto.ManagerCreateInput, authdto.ManagerUpdateInput]
	managerService *authsvc.ManagerService
}

// NewManagerHandler tạo instance mới của ManagerHandler
func NewManagerHandler() (*ManagerHandler, error) {
	managerService, err := authsvc.NewManagerService()
	if err != nil {
		return nil, fmt.Errorf("failed to create manager service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Manager, authdto.ManagerCreateInput, authdto.ManagerUpdateInput](managerService)
	return &ManagerHandler{
		BaseHandler:    baseHandler,
		managerService: managerService,
	}, nil
}

// HandleInsertOne tạo manager mới, băm mật khẩu trước khi lưu
func (h *ManagerHandler) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.ManagerCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.managerService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
