package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction log một hành động audit
type AuditAction struct {
	Action      string                 `json:"action"`       // Tên hành động (ví dụ: "user_create", "user_delete")
	UserID      string                 `json:"user_id"`      // ID người dùng thực hiện
	ResourceID  string                 `json:"resource_id"`  // ID tài nguyên bị ảnh hưởng
	ResourceType string                `json:"resource_type"` // Loại tài nguyên (ví dụ: "user", "organization")
	IP          string                 `json:"ip"`           // IP address
	UserAgent   string                 `json:"user_agent"`  // User agent
	Details     map[string]interface{} `json:"details"`     // Chi tiết bổ sung
	Timestamp   time.Time              `json:"timestamp"`   // Thời gian
}

// LogAction log một hành động audit
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:      action,
		IP:          c.IP(),
		UserAgent:   c.Get("User-Agent"),
		Details:     details,
		Timestamp:   time.Now(),
	}

	// Lấy user ID từ context nếu có
	if userID := c.Locals("user_id"); userID != nil {
		if uid, ok := userID.(string); ok {
			audit.UserID = uid
		}
	}

	// Lấy role từ context nếu có
	if role := c.Locals("user_role"); role != nil {
		if r, ok := role.(string); ok {
			audit.Details["user_role"] = r
		}
	}

	// Lấy request ID
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":       audit.Action,
		"user_id":      audit.UserID,
		"resource_id":  audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":           audit.IP,
		"user_agent":   audit.UserAgent,
		"details":      audit.Details,
		"timestamp":    audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD log các thao tác CRUD
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogAuth log các thao tác authentication
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}

// LogDelivery log các thao tác gửi thông báo (in-app, email).
// Fan-out chạy tách khỏi request nên không có fiber.Ctx; ghi thẳng vào audit logger.
func LogDelivery(action string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["delivery_action"] = action

	GetAuditLogger().WithFields(logrus.Fields{
		"action":    "delivery_" + action,
		"details":   details,
		"timestamp": time.Now(),
	}).Info("Audit log")
}
