// Package router - đăng ký route cho domain collaboration.
package router

import (
	"github.com/gofiber/fiber/v3"

	"task_flow/internal/api/collaboration/handler"
	"task_flow/internal/api/middleware"
	"task_flow/internal/api/router"
)

// Register đăng ký các route kênh trao đổi.
// Mọi endpoint đều yêu cầu đăng nhập; kiểm soát truy cập theo từng submission
// nằm trong handler (dựa trên vai trò và danh sách tham gia của submission).
func Register(v1 fiber.Router, r *router.Router) error {
	collaborationHandler, err := handler.NewCollaborationHandler()
	if err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware()

	router.RegisterRouteWithMiddleware(v1, "/collaboration", "POST", "/channel", []fiber.Handler{authMiddleware}, collaborationHandler.HandleCreateChannel)
	router.RegisterRouteWithMiddleware(v1, "/collaboration", "GET", "/channel", []fiber.Handler{authMiddleware}, collaborationHandler.HandleGetChannel)
	router.RegisterRouteWithMiddleware(v1, "/collaboration", "POST", "/channel/message", []fiber.Handler{authMiddleware}, collaborationHandler.HandlePostMessage)

	return nil
}
