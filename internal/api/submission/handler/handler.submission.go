// Package handler - các handler HTTP cho domain submission.
package handler

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
	collaborationsvc "task_flow/internal/api/collaboration/service"
	submissiondto "task_flow/internal/api/submission/dto"
	models "task_flow/internal/api/submission/models"
	submissionsvc "task_flow/internal/api/submission/service"
	"task_flow/internal/common"
	"task_flow/internal/utility"
)

// SubmissionHandler xử lý các request CRUD và nghiệp vụ cho submission.
type SubmissionHandler struct {
	*basehdl.BaseHandler[models.Submission, submissiondto.SubmissionCreateInput, submissiondto.SubmissionUpdateInput]
	submissionService *submissionsvc.SubmissionService
	directory         *authsvc.DirectoryService
}

// NewSubmissionHandler tạo mới SubmissionHandler
func NewSubmissionHandler() (*SubmissionHandler, error) {
	submissionService, err := submissionsvc.NewSubmissionService()
	if err != nil {
		return nil, err
	}
	directory, err := authsvc.GetDirectoryService()
	if err != nil {
		return nil, err
	}
	return &SubmissionHandler{
		BaseHandler:       basehdl.NewBaseHandler[models.Submission, submissiondto.SubmissionCreateInput, submissiondto.SubmissionUpdateInput](submissionService),
		submissionService: submissionService,
		directory:         directory,
	}, nil
}

// parseObjectIDs chuyển một danh sách hex string sang ObjectID.
func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Id không hợp lệ: "+id, common.StatusBadRequest, err)
		}
		result = append(result, objectID)
	}
	return result, nil
}

// actorFromContext dựng lại danh tính actor từ locals do AuthMiddleware set.
func (h *SubmissionHandler) actorFromContext(c fiber.Ctx) (*authmodels.Identity, error) {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return nil, common.ErrTokenInvalid
	}
	return h.directory.ResolveIdentity(c.Context(), email)
}

// authorize resolve actor, đọc submission theo :id và kiểm tra quyền truy cập
// theo vai trò + danh sách tham gia của submission.
func (h *SubmissionHandler) authorize(c fiber.Ctx) (*authmodels.Identity, *models.Submission, error) {
	actor, err := h.actorFromContext(c)
	if err != nil {
		return nil, nil, common.ErrAccessDenied
	}

	id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		return nil, nil, common.NewError(common.ErrCodeValidationFormat, "Id không hợp lệ", common.StatusBadRequest, err)
	}

	submission, err := h.submissionService.FindOneById(c.Context(), id)
	if err != nil {
		return nil, nil, err
	}

	if !collaborationsvc.CanAccessSubmission(actor, &submission) {
		return nil, nil, common.ErrAccessDenied
	}
	return actor, &submission, nil
}

// HandleCreate xử lý POST /submission/create.
// Owner là actor đang đăng nhập (Manager); cả hai trạng thái khởi tạo pending.
func (h *SubmissionHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.SubmissionCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrAccessDenied)
			return nil
		}

		data, err := h.submissionService.Create(c.Context(), actor.ID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleShareManagers xử lý PUT /submission/:id/share-managers
func (h *SubmissionHandler) HandleShareManagers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.ShareManagersInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		managerIDs, err := parseObjectIDs(input.ManagerIds)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.submissionService.ShareWithManagers(c.Context(), submission.ID, managerIDs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleAssignTeamLeads xử lý PUT /submission/:id/assign-team-leads
func (h *SubmissionHandler) HandleAssignTeamLeads(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.AssignTeamLeadsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		teamLeadIDs, err := parseObjectIDs(input.TeamLeadIds)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.submissionService.AssignTeamLeads(c.Context(), submission.ID, teamLeadIDs, input.Shared)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleAssignEmployees xử lý PUT /submission/:id/assign-employees
func (h *SubmissionHandler) HandleAssignEmployees(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.AssignEmployeesInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.submissionService.AssignEmployees(c.Context(), submission.ID, input.Employees)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateStatus xử lý PUT /submission/:id/status (trạng thái Manager-level)
func (h *SubmissionHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.UpdateStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.submissionService.UpdateStatus(c.Context(), submission.ID, input.Status)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateStatus2 xử lý PUT /submission/:id/status2 (trạng thái TeamLead-level,
// độc lập với status)
func (h *SubmissionHandler) HandleUpdateStatus2(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.UpdateStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.submissionService.UpdateStatus2(c.Context(), submission.ID, input.Status)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateEmployeeStatus xử lý PUT /submission/:id/employee-status
func (h *SubmissionHandler) HandleUpdateEmployeeStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.UpdateEmployeeStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		employeeID, err := primitive.ObjectIDFromHex(input.EmployeeId)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "EmployeeId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		data, err := h.submissionService.UpdateEmployeeStatus(c.Context(), submission.ID, employeeID, input.Status)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateEmployeeLeads xử lý PUT /submission/:id/employee-leads
func (h *SubmissionHandler) HandleUpdateEmployeeLeads(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.UpdateEmployeeLeadsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		employeeID, err := primitive.ObjectIDFromHex(input.EmployeeId)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "EmployeeId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		data, err := h.submissionService.UpdateEmployeeLeads(c.Context(), submission.ID, employeeID, input.LeadsCompleted)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleAddFeedback xử lý POST /submission/:id/feedback
func (h *SubmissionHandler) HandleAddFeedback(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.FeedbackCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item := models.FeedbackItem{
			Author:  actor.ID,
			Body:    input.Body,
			SentAt:  utility.CurrentTimeInMilli(),
			Replies: []models.FeedbackReply{},
		}
		data, err := h.submissionService.AddFeedback(c.Context(), submission.ID, input.Category, item)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleAddFeedbackReply xử lý POST /submission/:id/feedback-reply
func (h *SubmissionHandler) HandleAddFeedbackReply(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.FeedbackReplyInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		reply := models.FeedbackReply{
			Author:        actor.ID,
			AuthorRoleTag: actor.Role,
			Body:          input.Body,
			RepliedAt:     utility.CurrentTimeInMilli(),
		}
		data, err := h.submissionService.AddFeedbackReply(c.Context(), submission.ID, input.Category, input.Index, reply)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleDeleteById override xóa theo id để cascade group chat trực thuộc.
func (h *SubmissionHandler) HandleDeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		_, submission, err := h.authorize(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.submissionService.Delete(c.Context(), submission.ID)
		h.HandleResponse(c, submission.ID.Hex(), err)
		return nil
	})
}
