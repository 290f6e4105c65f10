package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Manager định nghĩa mô hình quản lý. Manager sở hữu submission (field owner)
// hoặc được chia sẻ quyền qua sharedManagers.
type Manager struct {
	_Relationships struct{}           `relationship:"collection:submissions,field:owner,message:Khong the xoa manager vi dang so huu %d submission. Vui long chuyen quyen so huu truoc."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName      string             `json:"firstName" bson:"firstName"`
	LastName       string             `json:"lastName" bson:"lastName"`
	Name           string             `json:"name,omitempty" bson:"name,omitempty"`
	Email          string             `json:"email" bson:"email" index:"unique"`
	Password       string             `json:"-" bson:"password,omitempty"`
	Department     string             `json:"department,omitempty" bson:"department,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// ManagerPaginateResult đại diện cho kết quả phân trang Manager
type ManagerPaginateResult struct {
	Page      int64     `json:"page" bson:"page"`
	Limit     int64     `json:"limit" bson:"limit"`
	ItemCount int64     `json:"itemCount" bson:"itemCount"`
	Items     []Manager `json:"items" bson:"items"`
}
