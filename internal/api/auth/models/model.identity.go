package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role tag của hệ thống. Thứ tự ưu tiên khi resolve identity: Admin → Manager → TeamLead → Employee.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleTeamLead = "TeamLead"
	RoleEmployee = "Employee"
)

// Identity là danh tính đã resolve của một actor: tìm thấy ở collection vai trò nào
// thì mang role tag của collection đó. Không chứa password.
type Identity struct {
	ID         primitive.ObjectID `json:"id" bson:"id"`
	Role       string             `json:"role" bson:"role"`
	Email      string             `json:"email" bson:"email"`
	FirstName  string             `json:"firstName" bson:"firstName"`
	LastName   string             `json:"lastName" bson:"lastName"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
}

// DisplayName trả về tên hiển thị theo thứ tự ưu tiên:
// firstName + " " + lastName (đã trim) → name → phần local của email.
func (i *Identity) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
	if full != "" {
		return full
	}
	if strings.TrimSpace(i.Name) != "" {
		return strings.TrimSpace(i.Name)
	}
	local := i.Email
	if idx := strings.Index(local, "@"); idx >= 0 {
		local = local[:idx]
	}
	return local
}
