// Package handler - các handler HTTP cho thông báo in-app.
package handler

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "task_flow/internal/api/base/handler"
	"task_flow/internal/api/notification/dto"
	models "task_flow/internal/api/notification/models"
	notificationsvc "task_flow/internal/api/notification/service"
	"task_flow/internal/common"
)

// NotificationHandler xử lý các request về thông báo của người dùng đang đăng nhập.
type NotificationHandler struct {
	*basehdl.BaseHandler[models.Notification, dto.NotificationMarkReadInput, dto.NotificationMarkReadInput]
	notificationService *notificationsvc.NotificationService
}

// NewNotificationHandler tạo mới NotificationHandler
func NewNotificationHandler() (*NotificationHandler, error) {
	notificationService, err := notificationsvc.NewNotificationService()
	if err != nil {
		return nil, err
	}
	return &NotificationHandler{
		BaseHandler:         basehdl.NewBaseHandler[models.Notification, dto.NotificationMarkReadInput, dto.NotificationMarkReadInput](notificationService),
		notificationService: notificationService,
	}, nil
}

// recipientFromContext lấy ObjectID của người dùng đang đăng nhập từ locals.
func recipientFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, _ := c.Locals("user_id").(string)
	recipientID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return recipientID, nil
}

// HandleListMine xử lý GET /notification/mine - thông báo của chính actor, mới nhất trước.
func (h *NotificationHandler) HandleListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		recipientID, err := recipientFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.notificationService.ListForRecipient(c.Context(), recipientID, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUnreadCount xử lý GET /notification/unread-count
func (h *NotificationHandler) HandleUnreadCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		recipientID, err := recipientFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.notificationService.CountUnread(c.Context(), recipientID)
		h.HandleResponse(c, fiber.Map{"unread": count}, err)
		return nil
	})
}

// HandleMarkRead xử lý PUT /notification/mark-read
func (h *NotificationHandler) HandleMarkRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.NotificationMarkReadInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		recipientID, err := recipientFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		notificationID, err := primitive.ObjectIDFromHex(input.NotificationId)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "NotificationId không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		data, err := h.notificationService.MarkRead(c.Context(), notificationID, recipientID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleMarkAllRead xử lý PUT /notification/mark-all-read
func (h *NotificationHandler) HandleMarkAllRead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		recipientID, err := recipientFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updated, err := h.notificationService.MarkAllRead(c.Context(), recipientID)
		h.HandleResponse(c, fiber.Map{"updated": updated}, err)
		return nil
	})
}
