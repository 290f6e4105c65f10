package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"task_flow/config"
	authmodels "task_flow/internal/api/auth/models"
	collaborationmodels "task_flow/internal/api/collaboration/models"
	notifmodels "task_flow/internal/api/notification/models"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/database"
	"task_flow/internal/delivery"
	"task_flow/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Role Directory: 4 vai trò tách collection riêng, resolve theo thứ tự ưu tiên
	global.MongoDB_ColNames.Admins = "admins"
	global.MongoDB_ColNames.Managers = "managers"
	global.MongoDB_ColNames.TeamLeads = "team_leads"
	global.MongoDB_ColNames.Employees = "employees"

	// Workflow
	global.MongoDB_ColNames.Submissions = "submissions"
	global.MongoDB_ColNames.Subtasks = "subtasks"

	// Collaboration
	global.MongoDB_ColNames.GroupChats = "group_chats"

	// Notification / Delivery
	global.MongoDB_ColNames.Notifications = "notifications"
	global.MongoDB_ColNames.DeliveryReports = "delivery_reports"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection (đọc từ struct tag `index` của model).
	// Unique index trên group_chats.submissionId là chốt chặn của việc tạo kênh
	// đúng một lần cho mỗi submission.
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Admins), authmodels.Admin{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Managers), authmodels.Manager{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.TeamLeads), authmodels.TeamLead{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Employees), authmodels.Employee{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Submissions), submissionmodels.Submission{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Subtasks), submissionmodels.Subtask{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.GroupChats), collaborationmodels.GroupChat{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Notifications), notifmodels.Notification{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.DeliveryReports), delivery.DeliveryReport{})
}
