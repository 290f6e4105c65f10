// Package router - đăng ký route cho domain submission.
package router

import (
	"github.com/gofiber/fiber/v3"

	authmodels "task_flow/internal/api/auth/models"
	"task_flow/internal/api/middleware"
	"task_flow/internal/api/router"
	"task_flow/internal/api/submission/handler"
)

// Register đăng ký các route submission và subtask.
// CRUD chung dùng bộ route chuẩn; các thao tác nghiệp vụ (chia sẻ, gán người,
// trạng thái, feedback) kiểm soát truy cập theo từng submission trong handler.
func Register(v1 fiber.Router, r *router.Router) error {
	submissionHandler, err := handler.NewSubmissionHandler()
	if err != nil {
		return err
	}
	subtaskHandler, err := handler.NewSubtaskHandler()
	if err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware()
	managerMiddleware := middleware.AuthMiddleware(authmodels.RoleAdmin, authmodels.RoleManager)

	// CRUD chuẩn: đọc cho mọi vai trò đã đăng nhập, ghi trực tiếp chỉ cho Admin
	// (luồng nghiệp vụ dùng các route bên dưới thay vì ghi thẳng document).
	r.RegisterCRUDRoutes(v1, "/submission", submissionHandler, router.ReadOnlyConfig)
	r.RegisterCRUDRoutes(v1, "/subtask", subtaskHandler, router.ReadOnlyConfig)

	// Submission: nghiệp vụ
	router.RegisterRouteWithMiddleware(v1, "/submission", "POST", "/create", []fiber.Handler{managerMiddleware}, submissionHandler.HandleCreate)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/share-managers", []fiber.Handler{authMiddleware}, submissionHandler.HandleShareManagers)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/assign-team-leads", []fiber.Handler{authMiddleware}, submissionHandler.HandleAssignTeamLeads)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/assign-employees", []fiber.Handler{authMiddleware}, submissionHandler.HandleAssignEmployees)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/status", []fiber.Handler{authMiddleware}, submissionHandler.HandleUpdateStatus)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/status2", []fiber.Handler{authMiddleware}, submissionHandler.HandleUpdateStatus2)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/employee-status", []fiber.Handler{authMiddleware}, submissionHandler.HandleUpdateEmployeeStatus)
	router.RegisterRouteWithMiddleware(v1, "/submission", "PUT", "/:id/employee-leads", []fiber.Handler{authMiddleware}, submissionHandler.HandleUpdateEmployeeLeads)
	router.RegisterRouteWithMiddleware(v1, "/submission", "POST", "/:id/feedback", []fiber.Handler{authMiddleware}, submissionHandler.HandleAddFeedback)
	router.RegisterRouteWithMiddleware(v1, "/submission", "POST", "/:id/feedback-reply", []fiber.Handler{authMiddleware}, submissionHandler.HandleAddFeedbackReply)
	router.RegisterRouteWithMiddleware(v1, "/submission", "DELETE", "/:id", []fiber.Handler{managerMiddleware}, submissionHandler.HandleDeleteById)

	// Subtask: nghiệp vụ
	router.RegisterRouteWithMiddleware(v1, "/subtask", "POST", "/create", []fiber.Handler{authMiddleware}, subtaskHandler.HandleCreate)
	router.RegisterRouteWithMiddleware(v1, "/subtask", "PUT", "/:id/assignment", []fiber.Handler{authMiddleware}, subtaskHandler.HandleUpdateOwnAssignment)
	router.RegisterRouteWithMiddleware(v1, "/subtask", "GET", "/:id/progress", []fiber.Handler{authMiddleware}, subtaskHandler.HandleGetProgress)
	router.RegisterRouteWithMiddleware(v1, "/subtask", "POST", "/:id/feedback", []fiber.Handler{authMiddleware}, subtaskHandler.HandleAddFeedback)

	return nil
}
