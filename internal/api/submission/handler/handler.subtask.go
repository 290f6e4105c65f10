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

// SubtaskHandler xử lý các request CRUD và nghiệp vụ cho subtask.
type SubtaskHandler struct {
	*basehdl.BaseHandler[models.Subtask, submissiondto.SubtaskCreateInput, submissiondto.SubtaskUpdateInput]
	subtaskService    *submissionsvc.SubtaskService
	submissionService *submissionsvc.SubmissionService
	directory         *authsvc.DirectoryService
}

// NewSubtaskHandler tạo mới SubtaskHandler
func NewSubtaskHandler() (*SubtaskHandler, error) {
	subtaskService, err := submissionsvc.NewSubtaskService()
	if err != nil {
		return nil, err
	}
	submissionService, err := submissionsvc.NewSubmissionService()
	if err != nil {
		return nil, err
	}
	directory, err := authsvc.GetDirectoryService()
	if err != nil {
		return nil, err
	}
	return &SubtaskHandler{
		BaseHandler:       basehdl.NewBaseHandler[models.Subtask, submissiondto.SubtaskCreateInput, submissiondto.SubtaskUpdateInput](subtaskService),
		subtaskService:    subtaskService,
		submissionService: submissionService,
		directory:         directory,
	}, nil
}

func (h *SubtaskHandler) actorFromContext(c fiber.Ctx) (*authmodels.Identity, error) {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return nil, common.ErrTokenInvalid
	}
	return h.directory.ResolveIdentity(c.Context(), email)
}

// authorizeBySubmission kiểm tra actor có quyền truy cập submission cha của subtask.
func (h *SubtaskHandler) authorizeBySubmission(c fiber.Ctx, actor *authmodels.Identity, submissionID primitive.ObjectID) error {
	submission, err := h.submissionService.FindOneById(c.Context(), submissionID)
	if err != nil {
		return err
	}
	if !collaborationsvc.CanAccessSubmission(actor, &submission) {
		return common.ErrAccessDenied
	}
	return nil
}

// subtaskFromParams đọc subtask theo :id.
func (h *SubtaskHandler) subtaskFromParams(c fiber.Ctx) (models.Subtask, error) {
	var zero models.Subtask
	id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Id không hợp lệ", common.StatusBadRequest, err)
	}
	return h.subtaskService.FindOneById(c.Context(), id)
}

// HandleCreate xử lý POST /subtask/create.
// Actor phải có quyền truy cập submission cha.
func (h *SubtaskHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.SubtaskCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrAccessDenied)
			return nil
		}

		submissionID, err := primitive.ObjectIDFromHex(input.SubmissionId)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "SubmissionId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}
		if err := h.authorizeBySubmission(c, actor, submissionID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.subtaskService.Create(c.Context(), actor.ID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateOwnAssignment xử lý PUT /subtask/:id/assignment.
// Một assignee chỉ cập nhật được entry của chính mình (theo vai trò).
func (h *SubtaskHandler) HandleUpdateOwnAssignment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.SubtaskAssignmentUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrAccessDenied)
			return nil
		}

		id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Id không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		data, err := h.subtaskService.UpdateOwnAssignment(c.Context(), id, actor, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleGetProgress xử lý GET /subtask/:id/progress.
// Phần trăm là giá trị dẫn xuất từ tổng leadsCompleted của mọi assignee,
// không lưu trong document.
func (h *SubtaskHandler) HandleGetProgress(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		subtask, err := h.subtaskFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, fiber.Map{
			"subtaskId":          subtask.ID.Hex(),
			"hasLeadsTarget":     subtask.HasLeadsTarget,
			"totalLeadsRequired": subtask.TotalLeadsRequired,
			"progress":           subtask.Progress(),
		}, nil)
		return nil
	})
}

// HandleAddFeedback xử lý POST /subtask/:id/feedback
func (h *SubtaskHandler) HandleAddFeedback(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input submissiondto.FeedbackCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrAccessDenied)
			return nil
		}

		subtask, err := h.subtaskFromParams(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.authorizeBySubmission(c, actor, subtask.SubmissionID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item := models.FeedbackItem{
			Author:  actor.ID,
			Body:    input.Body,
			SentAt:  utility.CurrentTimeInMilli(),
			Replies: []models.FeedbackReply{},
		}
		data, err := h.subtaskService.AddFeedback(c.Context(), subtask.ID, input.Category, item)
		h.HandleResponse(c, data, err)
		return nil
	})
}
