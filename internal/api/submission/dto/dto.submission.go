// Package submissiondto - các input thuộc domain submission.
package submissiondto

// SubmissionCreateInput đầu vào tạo submission (owner lấy từ actor đang đăng nhập).
type SubmissionCreateInput struct {
	Title    string                 `json:"title" validate:"required"`
	FormData map[string]interface{} `json:"formData"`
}

// SubmissionUpdateInput đầu vào cập nhật submission.
type SubmissionUpdateInput struct {
	Title    string                 `json:"title"`
	FormData map[string]interface{} `json:"formData"`
}

// ShareManagersInput đầu vào chia sẻ submission cho các manager khác.
type ShareManagersInput struct {
	ManagerIds []string `json:"managerIds" validate:"required,min=1"`
}

// AssignTeamLeadsInput đầu vào gán team lead vào submission.
// Shared = true thì thêm vào sharedTeamLeads thay vì assignedTeamLeads
// (cả hai danh sách đều cho quyền truy cập như nhau).
type AssignTeamLeadsInput struct {
	TeamLeadIds []string `json:"teamLeadIds" validate:"required,min=1"`
	Shared      bool     `json:"shared"`
}

// AssignEmployeeEntry một employee được gán kèm số leads giao.
type AssignEmployeeEntry struct {
	EmployeeId    string `json:"employeeId" validate:"required"`
	LeadsAssigned int64  `json:"leadsAssigned" validate:"min=0"`
}

// AssignEmployeesInput đầu vào gán employee vào submission.
type AssignEmployeesInput struct {
	Employees []AssignEmployeeEntry `json:"employees" validate:"required,min=1,dive"`
}

// UpdateStatusInput đầu vào cập nhật status (Manager-level) hoặc status2 (TeamLead-level).
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed approved rejected"`
}

// UpdateEmployeeStatusInput đầu vào cập nhật status của một employee entry.
type UpdateEmployeeStatusInput struct {
	EmployeeId string `json:"employeeId" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=pending in_progress completed approved rejected"`
}

// UpdateEmployeeLeadsInput đầu vào cập nhật số leads đã hoàn thành của một employee entry.
type UpdateEmployeeLeadsInput struct {
	EmployeeId     string `json:"employeeId" validate:"required"`
	LeadsCompleted int64  `json:"leadsCompleted" validate:"min=0"`
}

// FeedbackCreateInput đầu vào thêm feedback vào thread theo nhóm vai trò.
type FeedbackCreateInput struct {
	Category string `json:"category" validate:"required,oneof=employee manager teamLead"`
	Body     string `json:"body" validate:"required"`
}

// FeedbackReplyInput đầu vào trả lời một feedback item (append-only).
type FeedbackReplyInput struct {
	Category string `json:"category" validate:"required,oneof=employee manager teamLead"`
	Index    int    `json:"index" validate:"min=0"`
	Body     string `json:"body" validate:"required"`
}
