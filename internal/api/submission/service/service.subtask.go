// Package submissionsvc - service cho Subtask: tạo từ submission, assignment tự cập nhật, tiến độ leads.
package submissionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	basesvc "task_flow/internal/api/base/service"
	submissiondto "task_flow/internal/api/submission/dto"
	models "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
	"task_flow/internal/global"
	"task_flow/internal/utility"
)

// SubtaskService là cấu trúc chứa các phương thức liên quan đến subtask
type SubtaskService struct {
	*basesvc.BaseServiceMongoImpl[models.Subtask]
	submissionService *basesvc.BaseServiceMongoImpl[models.Submission]
}

// NewSubtaskService tạo mới SubtaskService
func NewSubtaskService() (*SubtaskService, error) {
	subtaskCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subtasks)
	if !exist {
		return nil, fmt.Errorf("failed to get subtasks collection: %v", common.ErrNotFound)
	}
	submissionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("failed to get submissions collection: %v", common.ErrNotFound)
	}
	return &SubtaskService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Subtask](subtaskCollection),
		submissionService:    basesvc.NewBaseServiceMongo[models.Submission](submissionCollection),
	}, nil
}

func buildAssigneeEntries(inputs []submissiondto.SubtaskAssigneeInput, now int64) ([]models.AssigneeEntry, error) {
	entries := make([]models.AssigneeEntry, 0, len(inputs))
	for _, input := range inputs {
		memberID, err := primitive.ObjectIDFromHex(input.MemberId)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "MemberId không hợp lệ", common.StatusBadRequest, err)
		}
		entries = append(entries, models.AssigneeEntry{
			MemberRef:      memberID,
			Status:         models.StatusPending,
			LeadsAssigned:  input.LeadsAssigned,
			LeadsCompleted: 0,
			AssignedAt:     now,
		})
	}
	return entries, nil
}

// Create tạo subtask mới từ một submission. Submission phải tồn tại.
func (s *SubtaskService) Create(ctx context.Context, creatorID primitive.ObjectID, input *submissiondto.SubtaskCreateInput) (models.Subtask, error) {
	var zero models.Subtask

	submissionID, err := primitive.ObjectIDFromHex(input.SubmissionId)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "SubmissionId không hợp lệ", common.StatusBadRequest, err)
	}
	if _, err := s.submissionService.FindOneById(ctx, submissionID); err != nil {
		return zero, err
	}

	now := utility.CurrentTimeInMilli()
	employees, err := buildAssigneeEntries(input.AssignedEmployees, now)
	if err != nil {
		return zero, err
	}
	managers, err := buildAssigneeEntries(input.AssignedManagers, now)
	if err != nil {
		return zero, err
	}
	teamLeads, err := buildAssigneeEntries(input.AssignedTeamLeads, now)
	if err != nil {
		return zero, err
	}

	subtask := models.Subtask{
		SubmissionID:       submissionID,
		Title:              input.Title,
		Description:        input.Description,
		AssignedEmployees:  employees,
		AssignedManagers:   managers,
		AssignedTeamLeads:  teamLeads,
		HasLeadsTarget:     input.HasLeadsTarget,
		TotalLeadsRequired: input.TotalLeadsRequired,
		Feedback: models.FeedbackThreads{
			Employee: []models.FeedbackItem{},
			Manager:  []models.FeedbackItem{},
			TeamLead: []models.FeedbackItem{},
		},
		CreatedBy: creatorID,
	}
	return s.InsertOne(ctx, subtask)
}

// assignmentListField trả về tên field danh sách assignment theo vai trò của actor.
func assignmentListField(roleTag string) (string, error) {
	switch roleTag {
	case authmodels.RoleEmployee:
		return "assignedEmployees", nil
	case authmodels.RoleManager:
		return "assignedManagers", nil
	case authmodels.RoleTeamLead:
		return "assignedTeamLeads", nil
	}
	return "", common.ErrAccessDenied
}

// UpdateOwnAssignment cho phép một assignee cập nhật status/leads của chính mình.
// Actor phải có entry trong danh sách assignment tương ứng với vai trò của mình.
func (s *SubtaskService) UpdateOwnAssignment(ctx context.Context, subtaskID primitive.ObjectID, actor *authmodels.Identity, input *submissiondto.SubtaskAssignmentUpdateInput) (models.Subtask, error) {
	var zero models.Subtask

	field, err := assignmentListField(actor.Role)
	if err != nil {
		return zero, err
	}

	setFields := map[string]interface{}{}
	if input.Status != "" {
		if !models.IsValidStatus(input.Status) {
			return zero, common.ErrInvalidState
		}
		setFields[field+".$.status"] = input.Status
		if input.Status == models.StatusCompleted {
			setFields[field+".$.completedAt"] = utility.CurrentTimeInMilli()
		}
	}
	if input.LeadsCompleted != nil {
		setFields[field+".$.leadsCompleted"] = *input.LeadsCompleted
	}
	if len(setFields) == 0 {
		return zero, common.ErrInvalidInput
	}

	filter := bson.M{
		"_id":                subtaskID,
		field + ".memberRef": actor.ID,
	}
	updateData := &basesvc.UpdateData{Set: setFields}
	return s.UpdateOne(ctx, filter, updateData, nil)
}

// AddFeedback thêm feedback item vào thread của nhóm vai trò trên subtask (append-only).
func (s *SubtaskService) AddFeedback(ctx context.Context, subtaskID primitive.ObjectID, category string, item models.FeedbackItem) (models.Subtask, error) {
	var zero models.Subtask
	if category != "employee" && category != "manager" && category != "teamLead" {
		return zero, common.ErrInvalidInput
	}
	if item.Replies == nil {
		item.Replies = []models.FeedbackReply{}
	}
	updateData := &basesvc.UpdateData{
		Push: map[string]interface{}{
			"feedback." + category: item,
		},
	}
	return s.UpdateById(ctx, subtaskID, updateData)
}
