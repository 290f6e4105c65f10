package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
)

// EmployeeHandler xử lý CRUD cho collection employees
type EmployeeHandler struct {
	*basehdl.BaseHandler[models.Employee, authdto.EmployeeCreateInput, authdto.EmployeeUpdateInput]
	employeeService *authsvc.EmployeeService
}

// NewEmployeeHandler tạo instance mới của EmployeeHandler
func NewEmployeeHandler() (*EmployeeHandler, error) {
	employeeService, err := authsvc.NewEmployeeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create employee service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Employee, authdto.EmployeeCreateInput, authdto.EmployeeUpdateInput](employeeService)
	return &EmployeeHandler{
		BaseHandler:     baseHandler,
		employeeService: employeeService,
	}, nil
}

// HandleInsertOne tạo employee mới, băm mật khẩu trước khi lưu
func (h *EmployeeHandler) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.EmployeeCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.employeeService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
