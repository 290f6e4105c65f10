package submissiondto

// SubtaskAssigneeInput một assignee được gán vào subtask kèm số leads giao.
type SubtaskAssigneeInput struct {
	MemberId      string `json:"memberId" validate:"required"`
	LeadsAssigned int64  `json:"leadsAssigned" validate:"min=0"`
}

// SubtaskCreateInput đầu vào tạo subtask từ một submission (TeamLead thực hiện).
type SubtaskCreateInput struct {
	SubmissionId       string                 `json:"submissionId" validate:"required"`
	Title              string                 `json:"title" validate:"required"`
	Description        string                 `json:"description"`
	HasLeadsTarget     bool                   `json:"hasLeadsTarget"`
	TotalLeadsRequired int64                  `json:"totalLeadsRequired" validate:"min=0"`
	AssignedEmployees  []SubtaskAssigneeInput `json:"assignedEmployees" validate:"dive"`
	AssignedManagers   []SubtaskAssigneeInput `json:"assignedManagers" validate:"dive"`
	AssignedTeamLeads  []SubtaskAssigneeInput `json:"assignedTeamLeads" validate:"dive"`
}

// SubtaskUpdateInput đầu vào cập nhật subtask.
type SubtaskUpdateInput struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	HasLeadsTarget     bool   `json:"hasLeadsTarget"`
	TotalLeadsRequired int64  `json:"totalLeadsRequired" validate:"min=0"`
}

// SubtaskAssignmentUpdateInput đầu vào để một assignee cập nhật
// status/leads của chính mình trên subtask.
type SubtaskAssignmentUpdateInput struct {
	Status         string `json:"status" validate:"omitempty,oneof=pending in_progress completed approved rejected"`
	LeadsCompleted *int64 `json:"leadsCompleted" validate:"omitempty,min=0"`
}
