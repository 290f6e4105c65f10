package collaborationsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	authsvc "task_flow/internal/api/auth/service"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/logger"
)

// RosterReader là phần danh bạ vai trò mà resolver cần.
// DirectoryService thỏa mãn interface này; test dùng roster giả.
type RosterReader interface {
	ManagerIdentity(ctx context.Context, id primitive.ObjectID) (*authmodels.Identity, error)
	TeamLeadIdentity(ctx context.Context, id primitive.ObjectID) (*authmodels.Identity, error)
	EmployeeIdentity(ctx context.Context, id primitive.ObjectID) (*authmodels.Identity, error)
	ListAdmins(ctx context.Context) ([]authmodels.Identity, error)
}

// Participant là một entry phát ra từ resolver.
type Participant struct {
	ID          primitive.ObjectID `json:"id"`
	RoleTag     string             `json:"roleTag"`
	Email       string             `json:"email"`
	DisplayName string             `json:"displayName"`
	Department  string             `json:"department,omitempty"`
}

// participantAccumulator gom participant theo thứ tự chèn,
// khử trùng lặp theo email chuẩn hóa (người ghi đầu tiên thắng).
type participantAccumulator struct {
	seen         map[string]bool
	excludeEmail string
	list         []Participant
}

func newParticipantAccumulator(excludeEmail string) *participantAccumulator {
	return &participantAccumulator{
		seen:         map[string]bool{},
		excludeEmail: authsvc.NormalizeEmail(excludeEmail),
		list:         []Participant{},
	}
}

func (a *participantAccumulator) add(identity *authmodels.Identity) {
	if identity == nil {
		return
	}
	normalized := authsvc.NormalizeEmail(identity.Email)
	if normalized == "" {
		return
	}
	// excludeEmail được bỏ qua ở mọi bước, không phân biệt hoa thường
	if a.excludeEmail != "" && normalized == a.excludeEmail {
		return
	}
	if a.seen[normalized] {
		return
	}
	a.seen[normalized] = true
	a.list = append(a.list, Participant{
		ID:          identity.ID,
		RoleTag:     identity.Role,
		Email:       identity.Email,
		DisplayName: identity.DisplayName(),
		Department:  identity.Department,
	})
}

// addRef tra cứu một reference qua danh bạ rồi thêm vào accumulator.
// Reference không còn tồn tại (dangling) thì bỏ qua, chỉ log.
func (a *participantAccumulator) addRef(ctx context.Context, id primitive.ObjectID, lookup func(context.Context, primitive.ObjectID) (*authmodels.Identity, error)) {
	identity, err := lookup(ctx, id)
	if err != nil {
		logger.GetAppLogger().Warnf("Bỏ qua participant reference %s: %v", id.Hex(), err)
		return
	}
	a.add(identity)
}

// ResolveParticipants dựng danh sách người tham gia kênh của một submission.
// Các bước chạy theo thứ tự cố định, kết quả giữ nguyên thứ tự chèn (không sort):
//  1. actor đang yêu cầu
//  2. owner
//  3. sharedManagers
//  4. assignedTeamLeads
//  5. sharedTeamLeads
//  6. assignedEmployees[].employeeRef
//  7. toàn bộ Admin (đọc roster tại thời điểm resolve)
//
// Email trùng (không phân biệt hoa thường) chỉ giữ lần xuất hiện đầu tiên;
// excludeEmail bị bỏ qua ở mọi bước.
func ResolveParticipants(ctx context.Context, roster RosterReader, submission *submissionmodels.Submission, actor *authmodels.Identity, excludeEmail string) ([]Participant, error) {
	acc := newParticipantAccumulator(excludeEmail)

	acc.add(actor)

	if submission != nil {
		if !submission.Owner.IsZero() {
			acc.addRef(ctx, submission.Owner, roster.ManagerIdentity)
		}
		for _, id := range submission.SharedManagers {
			acc.addRef(ctx, id, roster.ManagerIdentity)
		}
		for _, id := range submission.AssignedTeamLeads {
			acc.addRef(ctx, id, roster.TeamLeadIdentity)
		}
		for _, id := range submission.SharedTeamLeads {
			acc.addRef(ctx, id, roster.TeamLeadIdentity)
		}
		for _, entry := range submission.AssignedEmployees {
			acc.addRef(ctx, entry.EmployeeRef, roster.EmployeeIdentity)
		}
	}

	admins, err := roster.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		acc.add(&admins[i])
	}

	return acc.list, nil
}
