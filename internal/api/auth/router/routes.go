// Package router đăng ký các route thuộc domain auth: Auth, Directory, Admin, Manager, TeamLead, Employee.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "task_flow/internal/api/auth/handler"
	models "task_flow/internal/api/auth/models"
	basehdl "task_flow/internal/api/base/handler"
	"task_flow/internal/api/middleware"
	apirouter "task_flow/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, directory, 4 collection vai trò) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerDirectoryRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("failed to create auth handler: %w", err)
	}
	router.Post("/auth/login", authHandler.HandleLogin)
	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, authHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/change-password", []fiber.Handler{authOnlyMiddleware}, authHandler.HandleChangePassword)
	apirouter.RegisterRouteWithMiddleware(router, "/directory", "GET", "/resolve", []fiber.Handler{authOnlyMiddleware}, authHandler.HandleResolveIdentity)
	return nil
}

func registerDirectoryRoutes(router fiber.Router, r *apirouter.Router) error {
	adminHandler, err := authhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/admin", adminHandler, apirouter.ReadWriteConfig, models.RoleAdmin)

	managerHandler, err := authhdl.NewManagerHandler()
	if err != nil {
		return fmt.Errorf("failed to create manager handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/manager", managerHandler, apirouter.ReadWriteConfig, models.RoleAdmin)

	teamLeadHandler, err := authhdl.NewTeamLeadHandler()
	if err != nil {
		return fmt.Errorf("failed to create team lead handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/team-lead", teamLeadHandler, apirouter.ReadWriteConfig, models.RoleAdmin)

	employeeHandler, err := authhdl.NewEmployeeHandler()
	if err != nil {
		return fmt.Errorf("failed to create employee handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/employee", employeeHandler, apirouter.ReadWriteConfig, models.RoleAdmin)

	return nil
}
