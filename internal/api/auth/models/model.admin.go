// Package models - các model vai trò (Admin, Manager, TeamLead, Employee) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin định nghĩa mô hình quản trị viên hệ thống.
// Admin luôn có quyền truy cập mọi submission và luôn được thêm vào danh sách
// người tham gia của mọi kênh trao đổi.
type Admin struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName  string             `json:"firstName" bson:"firstName"`
	LastName   string             `json:"lastName" bson:"lastName"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Email      string             `json:"email" bson:"email" index:"unique"`
	Password   string             `json:"-" bson:"password,omitempty"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsSystem   bool               `json:"isSystem" bson:"isSystem"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// AdminPaginateResult đại diện cho kết quả phân trang Admin
type AdminPaginateResult struct {
	Page      int64   `json:"page" bson:"page"`
	Limit     int64   `json:"limit" bson:"limit"`
	ItemCount int64   `json:"itemCount" bson:"itemCount"`
	Items     []Admin `json:"items" bson:"items"`
}
