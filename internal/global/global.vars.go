package global

import (
	"task_flow/config"
	"task_flow/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	// Role Directory Collections (4 vai trò tách collection riêng)
	Admins    string // Tên collection cho quản trị viên
	Managers  string // Tên collection cho manager
	TeamLeads string // Tên collection cho team lead
	Employees string // Tên collection cho nhân viên

	// Workflow Collections
	Submissions string // Tên collection cho submission (form đã nộp)
	Subtasks    string // Tên collection cho subtask của submission

	// Collaboration Collections
	GroupChats string // Tên collection cho group chat (1 chat / 1 submission)

	// Notification / Delivery Collections
	Notifications   string // Tên collection cho in-app notification
	DeliveryReports string // Tên collection cho kết quả gửi từng recipient (fan-out)
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
