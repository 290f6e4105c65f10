// Package models - model Submission và các kiểu con thuộc domain submission.
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái của submission và của từng assignment.
// Không có bảng chuyển trạng thái nào được enforce: status (Manager-level),
// status2 (TeamLead-level) và status của từng employee entry là các nhãn độc lập,
// actor có quyền có thể set sang bất kỳ giá trị nào.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// ValidStatuses dùng cho validation đầu vào.
var ValidStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusApproved, StatusRejected}

// IsValidStatus kiểm tra giá trị trạng thái hợp lệ.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// FeedbackReply là một trả lời trong feedback item (append-only).
type FeedbackReply struct {
	Author        primitive.ObjectID `json:"author" bson:"author"`
	AuthorRoleTag string             `json:"authorRoleTag" bson:"authorRoleTag"`
	Body          string             `json:"body" bson:"body"`
	RepliedAt     int64              `json:"repliedAt" bson:"repliedAt"`
}

// FeedbackItem là một feedback trong thread (append-only, không có sửa/xóa).
type FeedbackItem struct {
	Author  primitive.ObjectID `json:"author" bson:"author"`
	Body    string             `json:"body" bson:"body"`
	SentAt  int64              `json:"sentAt" bson:"sentAt"`
	Replies []FeedbackReply    `json:"replies" bson:"replies"`
}

// FeedbackThreads gom các thread feedback theo nhóm vai trò.
type FeedbackThreads struct {
	Employee []FeedbackItem `json:"employee" bson:"employee"`
	Manager  []FeedbackItem `json:"manager" bson:"manager"`
	TeamLead []FeedbackItem `json:"teamLead" bson:"teamLead"`
}

// EmployeeAssignment là một entry trong assignedEmployees.
// Mỗi entry giữ trạng thái và số leads riêng, độc lập với các entry khác.
type EmployeeAssignment struct {
	EmployeeRef    primitive.ObjectID `json:"employeeRef" bson:"employeeRef"`
	Status         string             `json:"status" bson:"status"`
	LeadsAssigned  int64              `json:"leadsAssigned" bson:"leadsAssigned"`
	LeadsCompleted int64              `json:"leadsCompleted" bson:"leadsCompleted"`
	AssignedAt     int64              `json:"assignedAt" bson:"assignedAt"`
	CompletedAt    int64              `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Feedback       []FeedbackItem     `json:"feedback" bson:"feedback"`
}

// Submission là aggregate gốc: một form đã nộp được theo dõi qua
// workflow Manager / TeamLead / Employee.
// FormData là payload form tùy ý, hệ thống không đọc nội dung bên trong.
type Submission struct {
	_Relationships    struct{}             `relationship:"collection:subtasks,field:submissionId,message:Khong the xoa submission vi co %d subtask truc thuoc. Vui long xoa cac subtask truoc.|collection:group_chats,field:submissionId,optional:true,cascade:true"`
	ID                primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Title             string               `json:"title" bson:"title" index:"text"`
	Owner             primitive.ObjectID   `json:"owner" bson:"owner" index:"single"`
	SharedManagers    []primitive.ObjectID `json:"sharedManagers" bson:"sharedManagers"`
	AssignedTeamLeads []primitive.ObjectID `json:"assignedTeamLeads" bson:"assignedTeamLeads"`
	SharedTeamLeads   []primitive.ObjectID `json:"sharedTeamLeads" bson:"sharedTeamLeads"`
	AssignedEmployees []EmployeeAssignment `json:"assignedEmployees" bson:"assignedEmployees"`
	Status            string               `json:"status" bson:"status" index:"single"`
	Status2           string               `json:"status2" bson:"status2"`
	FormData          bson.M               `json:"formData" bson:"formData"`
	Feedback          FeedbackThreads      `json:"feedback" bson:"feedback"`
	CreatedAt         int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64                `json:"updatedAt" bson:"updatedAt"`
}

// SubmissionPaginateResult đại diện cho kết quả phân trang Submission
type SubmissionPaginateResult struct {
	Page      int64        `json:"page" bson:"page"`
	Limit     int64        `json:"limit" bson:"limit"`
	ItemCount int64        `json:"itemCount" bson:"itemCount"`
	Items     []Submission `json:"items" bson:"items"`
}
