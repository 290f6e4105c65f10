package main

import (
	"context"
	"errors"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	authmodels "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	basesvc "task_flow/internal/api/base/service"
	"task_flow/internal/common"
	"task_flow/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định khi server khởi động.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	// 1. Đăng ký hàm kiểm tra Admin cho lớp bảo vệ IsSystem ở base service.
	// Danh bạ vai trò là nguồn sự thật, nên check đi qua auth service.
	basesvc.SetIsAdminFromContextFunc(func(ctx context.Context) (bool, error) {
		return authsvc.IsAdminFromContext(ctx), nil
	})
	log.Info("✅ [INIT] Step 1: Admin context check registered")

	// 2. Seed admin mặc định nếu collection admins còn trống.
	// Email/mật khẩu lấy từ env ADMIN_EMAIL / ADMIN_PASSWORD; không có thì bỏ qua
	// (hệ thống không có luồng đăng ký, admin phải được seed hoặc tạo bằng tay).
	if err := seedDefaultAdmin(); err != nil {
		log.WithError(err).Warn("❌ [INIT] Step 2: Failed to seed default admin")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}

func seedDefaultAdmin() error {
	log := logger.GetAppLogger()

	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	count, err := adminService.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("✅ [INIT] Step 2: Admins already exist, skip seeding")
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skip seeding default admin")
		return nil
	}

	hashed, err := authsvc.HashPassword(password)
	if err != nil {
		return err
	}

	admin := authmodels.Admin{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     authsvc.NormalizeEmail(email),
		Password:  hashed,
		IsSystem:  true,
	}
	if _, err := adminService.InsertOne(ctx, admin); err != nil {
		// Hai instance cùng seed thì bên thua duplicate coi như xong
		if errors.Is(err, common.ErrMongoDuplicate) || errors.Is(err, common.ErrDuplicate) {
			return nil
		}
		return err
	}

	log.Infof("✅ [INIT] Step 2: Default admin seeded (email: %s)", authsvc.NormalizeEmail(email))
	return nil
}
