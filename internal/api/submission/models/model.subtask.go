package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssigneeEntry là một entry assignment trong subtask (dùng chung cho cả ba danh sách
// assignedEmployees / assignedManagers / assignedTeamLeads). Mỗi entry giữ trạng thái
// và số leads riêng.
type AssigneeEntry struct {
	MemberRef      primitive.ObjectID `json:"memberRef" bson:"memberRef"`
	Status         string             `json:"status" bson:"status"`
	LeadsAssigned  int64              `json:"leadsAssigned" bson:"leadsAssigned"`
	LeadsCompleted int64              `json:"leadsCompleted" bson:"leadsCompleted"`
	AssignedAt     int64              `json:"assignedAt" bson:"assignedAt"`
	CompletedAt    int64              `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Subtask là entity con của Submission, do TeamLead tạo ra.
// Không có auto-transition: mọi thay đổi status/leads đều là ghi tường minh từ assignee.
type Subtask struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubmissionID       primitive.ObjectID `json:"submissionId" bson:"submissionId" index:"single"`
	Title              string             `json:"title" bson:"title"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	AssignedEmployees  []AssigneeEntry    `json:"assignedEmployees" bson:"assignedEmployees"`
	AssignedManagers   []AssigneeEntry    `json:"assignedManagers" bson:"assignedManagers"`
	AssignedTeamLeads  []AssigneeEntry    `json:"assignedTeamLeads" bson:"assignedTeamLeads"`
	HasLeadsTarget     bool               `json:"hasLeadsTarget" bson:"hasLeadsTarget"`
	TotalLeadsRequired int64              `json:"totalLeadsRequired" bson:"totalLeadsRequired"`
	Feedback           FeedbackThreads    `json:"feedback" bson:"feedback"`
	CreatedBy          primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt          int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt          int64              `json:"updatedAt" bson:"updatedAt"`
}

// Progress tính phần trăm hoàn thành leads của subtask.
// percentage = clamp(0, 100, round(100 * tổng leadsCompleted / totalLeadsRequired)).
// totalLeadsRequired = 0 được định nghĩa là 0% (không bao giờ sinh NaN/Infinity).
func (s *Subtask) Progress() int {
	return LeadsProgress(s.totalLeadsCompleted(), s.TotalLeadsRequired)
}

func (s *Subtask) totalLeadsCompleted() int64 {
	var total int64
	for _, e := range s.AssignedEmployees {
		total += e.LeadsCompleted
	}
	for _, e := range s.AssignedManagers {
		total += e.LeadsCompleted
	}
	for _, e := range s.AssignedTeamLeads {
		total += e.LeadsCompleted
	}
	return total
}

// LeadsProgress là phép tính thuần cho phần trăm leads, dùng chung cho
// subtask và cho từng employee entry trên submission.
func LeadsProgress(completed int64, required int64) int {
	if required <= 0 {
		return 0
	}
	if completed <= 0 {
		return 0
	}
	// Làm tròn half-up trên số nguyên: round(100*c/r) = (200*c + r) / (2*r)
	percentage := int((200*completed + required) / (2 * required))
	if percentage > 100 {
		return 100
	}
	return percentage
}

// SubtaskPaginateResult đại diện cho kết quả phân trang Subtask
type SubtaskPaginateResult struct {
	Page      int64     `json:"page" bson:"page"`
	Limit     int64     `json:"limit" bson:"limit"`
	ItemCount int64     `json:"itemCount" bson:"itemCount"`
	Items     []Subtask `json:"items" bson:"items"`
}
