// Package router - đăng ký route cho domain notification.
package router

import (
	"github.com/gofiber/fiber/v3"

	"task_flow/internal/api/middleware"
	"task_flow/internal/api/notification/handler"
	"task_flow/internal/api/router"
)

// Register đăng ký các route thông báo. Mọi endpoint đều gắn với người dùng
// đang đăng nhập; không có route đọc thông báo của người khác.
func Register(v1 fiber.Router, r *router.Router) error {
	notificationHandler, err := handler.NewNotificationHandler()
	if err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/notification", "GET", "/mine", []fiber.Handler{authMiddleware}, notificationHandler.HandleListMine)
	router.RegisterRouteWithMiddleware(v1, "/notification", "GET", "/unread-count", []fiber.Handler{authMiddleware}, notificationHandler.HandleUnreadCount)
	router.RegisterRouteWithMiddleware(v1, "/notification", "PUT", "/mark-read", []fiber.Handler{authMiddleware}, notificationHandler.HandleMarkRead)
	router.RegisterRouteWithMiddleware(v1, "/notification", "PUT", "/mark-all-read", []fiber.Handler{authMiddleware}, notificationHandler.HandleMarkAllRead)

	return nil
}
