// Package handler - endpoint kênh trao đổi của submission.
//
// Các endpoint này trả về wire format riêng (không dùng envelope chuẩn):
//   - 403: {"error": "Access denied"}
//   - 404: {"error": "Submission not found"} hoặc {"error": "Group chat not found"}
//   - 200: {"success": true, "chat": {...}}
//
// Frontend hiện tại parse đúng các shape này nên không được đổi.
package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basehdl "task_flow/internal/api/base/handler"
	"task_flow/internal/api/collaboration/dto"
	models "task_flow/internal/api/collaboration/models"
	collaborationsvc "task_flow/internal/api/collaboration/service"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
)

// channelService là phần GroupChatService mà handler cần; test dùng bản stub.
type channelService interface {
	FindSubmission(ctx context.Context, submissionID primitive.ObjectID) (submissionmodels.Submission, error)
	GetChannel(ctx context.Context, submissionID primitive.ObjectID) (models.GroupChat, error)
	GetOrCreateChannel(ctx context.Context, submission *submissionmodels.Submission, actor *authmodels.Identity) (models.GroupChat, bool, error)
	PostMessage(ctx context.Context, submissionID primitive.ObjectID, actor *authmodels.Identity, body string, replyTo *primitive.ObjectID) (models.GroupChat, error)
	FanOutChannelCreated(ctx context.Context, chat *models.GroupChat, submission *submissionmodels.Submission, actor *authmodels.Identity)
}

// identityResolver dựng Identity từ email (DirectoryService thỏa mãn).
type identityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (*authmodels.Identity, error)
}

// CollaborationHandler xử lý các request về kênh trao đổi.
type CollaborationHandler struct {
	*basehdl.BaseHandler[models.GroupChat, dto.ChannelCreateInput, dto.MessageCreateInput]
	groupChatService channelService
	directory        identityResolver
}

// NewCollaborationHandler tạo mới CollaborationHandler
func NewCollaborationHandler() (*CollaborationHandler, error) {
	groupChatService, err := collaborationsvc.NewGroupChatService()
	if err != nil {
		return nil, err
	}
	directory, err := authsvc.GetDirectoryService()
	if err != nil {
		return nil, err
	}
	return &CollaborationHandler{
		BaseHandler:      basehdl.NewBaseHandler[models.GroupChat, dto.ChannelCreateInput, dto.MessageCreateInput](groupChatService),
		groupChatService: groupChatService,
		directory:        directory,
	}, nil
}

// actorFromContext dựng lại danh tính actor từ locals do AuthMiddleware set.
func (h *CollaborationHandler) actorFromContext(c fiber.Ctx) (*authmodels.Identity, error) {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return nil, common.ErrTokenInvalid
	}
	return h.directory.ResolveIdentity(c.Context(), email)
}

// HandleCreateChannel xử lý POST /collaboration/channel.
// Lấy kênh của submission, tạo lazy nếu chưa có; chỉ request thực sự tạo kênh
// mới kích hoạt fan-out thông báo channel_created.
func (h *CollaborationHandler) HandleCreateChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ChannelCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{"error": "submissionId is required"})
		}

		submissionID, err := primitive.ObjectIDFromHex(input.SubmissionId)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Submission not found"})
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		submission, err := h.groupChatService.FindSubmission(c.Context(), submissionID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Submission not found"})
			}
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{"error": "Failed to load submission"})
		}

		if !collaborationsvc.CanAccessSubmission(actor, &submission) {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		chat, created, err := h.groupChatService.GetOrCreateChannel(c.Context(), &submission, actor)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{"error": "Failed to create group chat"})
		}

		if created {
			logrus.WithFields(logrus.Fields{
				"submissionId": submission.ID.Hex(),
				"participants": len(chat.Participants),
				"createdBy":    actor.Email,
			}).Info("💬 [CHANNEL] Đã tạo kênh trao đổi mới")
			h.groupChatService.FanOutChannelCreated(c.Context(), &chat, &submission, actor)
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"success": true, "chat": chat})
	})
}

// HandleGetChannel xử lý GET /collaboration/channel?submissionId=...
// Chỉ đọc, không bao giờ tạo kênh. Access check đi trước lookup kênh,
// giống POST: actor không có quyền nhận 403, không được biết kênh tồn tại hay chưa.
func (h *CollaborationHandler) HandleGetChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		submissionIDParam := c.Query("submissionId")
		if submissionIDParam == "" {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{"error": "submissionId is required"})
		}

		submissionID, err := primitive.ObjectIDFromHex(submissionIDParam)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{"error": "submissionId is invalid"})
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		submission, err := h.groupChatService.FindSubmission(c.Context(), submissionID)
		if err != nil || !collaborationsvc.CanAccessSubmission(actor, &submission) {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		chat, err := h.groupChatService.GetChannel(c.Context(), submissionID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Group chat not found"})
			}
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{"error": "Failed to load group chat"})
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"success": true, "chat": chat})
	})
}

// HandlePostMessage xử lý POST /collaboration/channel/message.
// Kênh phải tồn tại sẵn; tin nhắn mới được fan-out cho participant trừ người gửi.
func (h *CollaborationHandler) HandlePostMessage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.MessageCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{"error": "submissionId and body are required"})
		}

		submissionID, err := primitive.ObjectIDFromHex(input.SubmissionId)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Submission not found"})
		}

		var replyTo *primitive.ObjectID
		if input.ReplyTo != "" {
			replyID, err := primitive.ObjectIDFromHex(input.ReplyTo)
			if err != nil {
				return basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{"error": "replyTo is invalid"})
			}
			replyTo = &replyID
		}

		actor, err := h.actorFromContext(c)
		if err != nil {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		submission, err := h.groupChatService.FindSubmission(c.Context(), submissionID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Submission not found"})
			}
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{"error": "Failed to load submission"})
		}

		if !collaborationsvc.CanAccessSubmission(actor, &submission) {
			return basehdl.JSONResponse(c, common.StatusForbidden, fiber.Map{"error": "Access denied"})
		}

		chat, err := h.groupChatService.PostMessage(c.Context(), submissionID, actor, input.Body, replyTo)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return basehdl.JSONResponse(c, common.StatusNotFound, fiber.Map{"error": "Group chat not found"})
			}
			return basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{"error": "Failed to post message"})
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{"success": true, "chat": chat})
	})
}
