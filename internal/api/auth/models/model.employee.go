package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee định nghĩa mô hình nhân viên. Employee được gán vào submission
// qua các entry trong assignedEmployees (mỗi entry giữ status và số leads riêng).
type Employee struct {
	_Relationships struct{}           `relationship:"collection:submissions,field:assignedEmployees.employeeRef,message:Khong the xoa employee vi dang duoc gan vao %d submission. Vui long go assignment truoc."`
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

// EmployeePaginateResult đại diện cho kết quả phân trang Employee
type EmployeePaginateResult struct {
	Page      int64      `json:"page" bson:"page"`
	Limit     int64      `json:"limit" bson:"limit"`
	ItemCount int64      `json:"itemCount" bson:"itemCount"`
	Items     []Employee `json:"items" bson:"items"`
}
