package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "task_flow/internal/api/auth/dto"
	models "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
)

// TeamLeadHandler xử lý CRUD cho collection team_leads
type TeamLeadHandler struct {
	*basehdl.BaseHandler[models.TeamLead, authdto.TeamLeadCreateInput, authdto.TeamLeadUpdateInput]
	teamLeadService *authsvc.TeamLeadService
}

// NewTeamLeadHandler tạo instance mới của TeamLeadHandler
func NewTeamLeadHandler() (*TeamLeadHandler, error) {
	teamLeadService, err := authsvc.NewTeamLeadService()
	if err != nil {
		return nil, fmt.Errorf("failed to create team lead service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.TeamLead, authdto.TeamLeadCreateInput, authdto.TeamLeadUpdateInput](teamLeadService)
	return &TeamLeadHandler{
		BaseHandler:     baseHandler,
		teamLeadService: teamLeadService,
	}, nil
}

// HandleInsertOne tạo team lead mới, băm mật khẩu trước khi lưu
func (h *TeamLeadHandler) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(authdto.TeamLeadCreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.teamLeadService.Create(c.Context(), input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
