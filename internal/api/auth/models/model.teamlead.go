package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamLead định nghĩa mô hình trưởng nhóm. TeamLead được gán vào submission
// qua assignedTeamLeads hoặc được chia sẻ qua sharedTeamLeads (cả hai đều cho quyền truy cập).
type TeamLead struct {
	_Relationships struct{}           `relationship:"collection:submissions,field:assignedTeamLeads,message:Khong the xoa team lead vi dang duoc gan vao %d submission. Vui long go assignment truoc."`
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

// TeamLeadPaginateResult đại diện cho kết quả phân trang TeamLead
type TeamLeadPaginateResult struct {
	Page      int64      `json:"page" bson:"page"`
	Limit     int64      `json:"limit" bson:"limit"`
	ItemCount int64      `json:"itemCount" bson:"itemCount"`
	Items     []TeamLead `json:"items" bson:"items"`
}
