// Package submissionsvc - service cho Submission: CRUD, chia sẻ, gán người, trạng thái, feedback.
package submissionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "task_flow/internal/api/base/service"
	submissiondto "task_flow/internal/api/submission/dto"
	models "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
	"task_flow/internal/global"
	"task_flow/internal/logger"
	"task_flow/internal/utility"
)

// SubmissionService là cấu trúc chứa các phương thức liên quan đến submission
type SubmissionService struct {
	*basesvc.BaseServiceMongoImpl[models.Submission]
}

// NewSubmissionService tạo mới SubmissionService
func NewSubmissionService() (*SubmissionService, error) {
	submissionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Submissions)
	if !exist {
		return nil, fmt.Errorf("failed to get submissions collection: %v", common.ErrNotFound)
	}
	return &SubmissionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Submission](submissionCollection),
	}, nil
}

// Create tạo submission mới với owner là actor, cả hai trạng thái khởi tạo pending.
func (s *SubmissionService) Create(ctx context.Context, ownerID primitive.ObjectID, input *submissiondto.SubmissionCreateInput) (models.Submission, error) {
	submission := models.Submission{
		Title:             input.Title,
		Owner:             ownerID,
		SharedManagers:    []primitive.ObjectID{},
		AssignedTeamLeads: []primitive.ObjectID{},
		SharedTeamLeads:   []primitive.ObjectID{},
		AssignedEmployees: []models.EmployeeAssignment{},
		Status:            models.StatusPending,
		Status2:           models.StatusPending,
		FormData:          input.FormData,
		Feedback: models.FeedbackThreads{
			Employee: []models.FeedbackItem{},
			Manager:  []models.FeedbackItem{},
			TeamLead: []models.FeedbackItem{},
		},
	}
	return s.InsertOne(ctx, submission)
}

// ShareWithManagers thêm các manager vào sharedManagers (không trùng lặp).
func (s *SubmissionService) ShareWithManagers(ctx context.Context, submissionID primitive.ObjectID, managerIDs []primitive.ObjectID) (models.Submission, error) {
	updateData := &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			"sharedManagers": bson.M{"$each": managerIDs},
		},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// AssignTeamLeads thêm team lead vào assignedTeamLeads, hoặc sharedTeamLeads khi shared=true.
// Hai danh sách tách biệt nhưng đều cho quyền truy cập như nhau.
func (s *SubmissionService) AssignTeamLeads(ctx context.Context, submissionID primitive.ObjectID, teamLeadIDs []primitive.ObjectID, shared bool) (models.Submission, error) {
	field := "assignedTeamLeads"
	if shared {
		field = "sharedTeamLeads"
	}
	updateData := &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			field: bson.M{"$each": teamLeadIDs},
		},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// AssignEmployees thêm các employee entry mới vào assignedEmployees.
// Employee đã có entry thì bỏ qua (mỗi employee một entry).
func (s *SubmissionService) AssignEmployees(ctx context.Context, submissionID primitive.ObjectID, entries []submissiondto.AssignEmployeeEntry) (models.Submission, error) {
	var zero models.Submission
	submission, err := s.FindOneById(ctx, submissionID)
	if err != nil {
		return zero, err
	}

	existing := make(map[primitive.ObjectID]bool, len(submission.AssignedEmployees))
	for _, e := range submission.AssignedEmployees {
		existing[e.EmployeeRef] = true
	}

	now := utility.CurrentTimeInMilli()
	newEntries := make([]models.EmployeeAssignment, 0, len(entries))
	for _, entry := range entries {
		employeeID, err := primitive.ObjectIDFromHex(entry.EmployeeId)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, "EmployeeId không hợp lệ", common.StatusBadRequest, err)
		}
		if existing[employeeID] {
			continue
		}
		existing[employeeID] = true
		newEntries = append(newEntries, models.EmployeeAssignment{
			EmployeeRef:    employeeID,
			Status:         models.StatusPending,
			LeadsAssigned:  entry.LeadsAssigned,
			LeadsCompleted: 0,
			AssignedAt:     now,
			Feedback:       []models.FeedbackItem{},
		})
	}
	if len(newEntries) == 0 {
		return submission, nil
	}

	updateData := &basesvc.UpdateData{
		Push: map[string]interface{}{
			"assignedEmployees": bson.M{"$each": newEntries},
		},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// UpdateStatus cập nhật trạng thái Manager-level.
// Không enforce bảng chuyển trạng thái: mọi giá trị hợp lệ đều được chấp nhận.
func (s *SubmissionService) UpdateStatus(ctx context.Context, submissionID primitive.ObjectID, status string) (models.Submission, error) {
	var zero models.Submission
	if !models.IsValidStatus(status) {
		return zero, common.ErrInvalidState
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// UpdateStatus2 cập nhật trạng thái TeamLead-level, độc lập với status.
func (s *SubmissionService) UpdateStatus2(ctx context.Context, submissionID primitive.ObjectID, status string) (models.Submission, error) {
	var zero models.Submission
	if !models.IsValidStatus(status) {
		return zero, common.ErrInvalidState
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"status2": status},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// UpdateEmployeeStatus cập nhật trạng thái của một employee entry.
// Entry chuyển sang completed thì ghi lại completedAt.
func (s *SubmissionService) UpdateEmployeeStatus(ctx context.Context, submissionID primitive.ObjectID, employeeID primitive.ObjectID, status string) (models.Submission, error) {
	var zero models.Submission
	if !models.IsValidStatus(status) {
		return zero, common.ErrInvalidState
	}

	setFields := map[string]interface{}{
		"assignedEmployees.$.status": status,
	}
	if status == models.StatusCompleted {
		setFields["assignedEmployees.$.completedAt"] = utility.CurrentTimeInMilli()
	}

	filter := bson.M{
		"_id":                           submissionID,
		"assignedEmployees.employeeRef": employeeID,
	}
	updateData := &basesvc.UpdateData{Set: setFields}
	return s.UpdateOne(ctx, filter, updateData, nil)
}

// UpdateEmployeeLeads cập nhật số leads đã hoàn thành của một employee entry.
// Giá trị được lưu nguyên văn; phần trăm là giá trị dẫn xuất (models.LeadsProgress).
func (s *SubmissionService) UpdateEmployeeLeads(ctx context.Context, submissionID primitive.ObjectID, employeeID primitive.ObjectID, leadsCompleted int64) (models.Submission, error) {
	filter := bson.M{
		"_id":                           submissionID,
		"assignedEmployees.employeeRef": employeeID,
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"assignedEmployees.$.leadsCompleted": leadsCompleted,
		},
	}
	return s.UpdateOne(ctx, filter, updateData, nil)
}

// AddFeedback thêm một feedback item vào thread của nhóm vai trò (append-only).
func (s *SubmissionService) AddFeedback(ctx context.Context, submissionID primitive.ObjectID, category string, item models.FeedbackItem) (models.Submission, error) {
	var zero models.Submission
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
	return s.UpdateById(ctx, submissionID, updateData)
}

// AddFeedbackReply trả lời một feedback item theo index trong thread (append-only).
func (s *SubmissionService) AddFeedbackReply(ctx context.Context, submissionID primitive.ObjectID, category string, index int, reply models.FeedbackReply) (models.Submission, error) {
	var zero models.Submission
	if category != "employee" && category != "manager" && category != "teamLead" {
		return zero, common.ErrInvalidInput
	}
	if index < 0 {
		return zero, common.ErrInvalidInput
	}

	submission, err := s.FindOneById(ctx, submissionID)
	if err != nil {
		return zero, err
	}
	var thread []models.FeedbackItem
	switch category {
	case "employee":
		thread = submission.Feedback.Employee
	case "manager":
		thread = submission.Feedback.Manager
	case "teamLead":
		thread = submission.Feedback.TeamLead
	}
	if index >= len(thread) {
		return zero, common.ErrNotFound
	}

	updateData := &basesvc.UpdateData{
		Push: map[string]interface{}{
			fmt.Sprintf("feedback.%s.%d.replies", category, index): reply,
		},
	}
	return s.UpdateById(ctx, submissionID, updateData)
}

// Delete xóa submission kèm group chat trực thuộc (nếu có).
// Subtask trực thuộc sẽ chặn xóa qua relationship tag.
func (s *SubmissionService) Delete(ctx context.Context, submissionID primitive.ObjectID) error {
	if err := s.DeleteById(ctx, submissionID); err != nil {
		return err
	}

	// Cascade: group chat là bản ghi phụ thuộc 1:1, xóa theo submission
	if chatCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.GroupChats); exist {
		if _, err := chatCollection.DeleteOne(ctx, bson.M{"submissionId": submissionID}); err != nil {
			logger.GetAppLogger().WithError(err).Warnf("Không thể xóa group chat của submission %s", submissionID.Hex())
		}
	}
	return nil
}
