// Package collaborationsvc - Test participant resolver: thứ tự chèn, khử trùng
// lặp theo email, excludeEmail và bước đọc Admin.
package collaborationsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	submissionmodels "task_flow/internal/api/submission/models"
	"task_flow/internal/common"
)

// stubRoster là danh bạ giả cho resolver, không cần database.
type stubRoster struct {
	managers  map[primitive.ObjectID]*authmodels.Identity
	teamLeads map[primitive.ObjectID]*authmodels.Identity
	employees map[primitive.ObjectID]*authmodels.Identity
	admins    []authmodels.Identity
	adminErr  error
}

func lookupIn(m map[primitive.ObjectID]*authmodels.Identity, id primitive.ObjectID) (*authmodels.Identity, error) {
	if identity, ok := m[id]; ok {
		return identity, nil
	}
	return nil, common.ErrNotFound
}

func (r *stubRoster) ManagerIdentity(_ context.Context, id primitive.ObjectID) (*authmodels.Identity, error) {
	return lookupIn(r.managers, id)
}

func (r *stubRoster) TeamLeadIdentity(_ context.Context, id primitive.ObjectID) (*authmodels.Identity, error) {
	return lookupIn(r.teamLeads, id)
}

func (r *stubRoster) EmployeeIdentity(_ context.Context, id primitive.ObjectID) (*authmodels.Identity, error) {
	return lookupIn(r.employees, id)
}

func (r *stubRoster) ListAdmins(_ context.Context) ([]authmodels.Identity, error) {
	if r.adminErr != nil {
		return nil, r.adminErr
	}
	return r.admins, nil
}

type rosterFixture struct {
	roster     *stubRoster
	submission *submissionmodels.Submission
	actor      *authmodels.Identity
	owner      *authmodels.Identity
	sharedMgr  *authmodels.Identity
	teamLead   *authmodels.Identity
	employee   *authmodels.Identity
	admin      *authmodels.Identity
}

func buildRosterFixture() *rosterFixture {
	owner := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleManager, Email: "owner@example.com", FirstName: "Minh", LastName: "Tran"}
	sharedMgr := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleManager, Email: "shared@example.com", Name: "Shared Manager"}
	teamLead := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleTeamLead, Email: "lead@example.com"}
	employee := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleEmployee, Email: "emp@example.com", Department: "Sales"}
	admin := &authmodels.Identity{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin, Email: "admin@example.com"}

	submission := &submissionmodels.Submission{
		ID:                primitive.NewObjectID(),
		Title:             "Chiến dịch Q3",
		Owner:             owner.ID,
		SharedManagers:    []primitive.ObjectID{sharedMgr.ID},
		AssignedTeamLeads: []primitive.ObjectID{teamLead.ID},
		AssignedEmployees: []submissionmodels.EmployeeAssignment{{EmployeeRef: employee.ID}},
	}

	roster := &stubRoster{
		managers:  map[primitive.ObjectID]*authmodels.Identity{owner.ID: owner, sharedMgr.ID: sharedMgr},
		teamLeads: map[primitive.ObjectID]*authmodels.Identity{teamLead.ID: teamLead},
		employees: map[primitive.ObjectID]*authmodels.Identity{employee.ID: employee},
		admins:    []authmodels.Identity{*admin},
	}

	return &rosterFixture{
		roster:     roster,
		submission: submission,
		actor:      owner,
		owner:      owner,
		sharedMgr:  sharedMgr,
		teamLead:   teamLead,
		employee:   employee,
		admin:      admin,
	}
}

func emails(list []Participant) []string {
	result := make([]string, 0, len(list))
	for _, p := range list {
		result = append(result, p.Email)
	}
	return result
}

func TestResolveParticipants_ThuTuChenVaKhongSort(t *testing.T) {
	f := buildRosterFixture()

	list, err := ResolveParticipants(context.Background(), f.roster, f.submission, f.actor, "")
	if err != nil {
		t.Fatalf("ResolveParticipants trả về lỗi: %v", err)
	}

	// actor (= owner, chỉ một lần), sharedManagers, teamLeads, employees, admins
	want := []string{"owner@example.com", "shared@example.com", "lead@example.com", "emp@example.com", "admin@example.com"}
	got := emails(list)
	if len(got) != len(want) {
		t.Fatalf("Số participant không đúng, muốn %d, có %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vị trí %d sai thứ tự: muốn %s, có %s", i, want[i], got[i])
		}
	}
}

func TestResolveParticipants_EmailTrungNguoiGhiDauTienThang(t *testing.T) {
	f := buildRosterFixture()

	// Actor trùng email owner nhưng khác hoa thường: owner không được chèn lần hai
	actor := &authmodels.Identity{ID: f.owner.ID, Role: authmodels.RoleManager, Email: "OWNER@Example.COM", Name: "Actor Entry"}
	list, err := ResolveParticipants(context.Background(), f.roster, f.submission, actor, "")
	if err != nil {
		t.Fatalf("ResolveParticipants trả về lỗi: %v", err)
	}

	count := 0
	for _, p := range list {
		if p.ID == f.owner.ID {
			count++
			if p.DisplayName != "Actor Entry" {
				t.Errorf("Entry phải là bản ghi đầu tiên (actor), có displayName %q", p.DisplayName)
			}
		}
	}
	if count != 1 {
		t.Errorf("Owner trùng email chỉ được xuất hiện một lần, có %d lần", count)
	}
}

func TestResolveParticipants_ExcludeEmailKhongPhanBietHoaThuong(t *testing.T) {
	f := buildRosterFixture()

	list, err := ResolveParticipants(context.Background(), f.roster, f.submission, f.actor, "  SHARED@EXAMPLE.COM ")
	if err != nil {
		t.Fatalf("ResolveParticipants trả về lỗi: %v", err)
	}
	for _, p := range list {
		if p.ID == f.sharedMgr.ID {
			t.Error("excludeEmail phải loại participant ở mọi bước, không phân biệt hoa thường")
		}
	}
}

func TestResolveParticipants_ReferenceDanglingBiBoQua(t *testing.T) {
	f := buildRosterFixture()
	f.submission.SharedManagers = append(f.submission.SharedManagers, primitive.NewObjectID())

	list, err := ResolveParticipants(context.Background(), f.roster, f.submission, f.actor, "")
	if err != nil {
		t.Fatalf("Reference dangling không được làm resolver lỗi: %v", err)
	}
	want := 5 // owner, shared, lead, emp, admin
	if len(list) != want {
		t.Errorf("Reference dangling phải bị bỏ qua, muốn %d participant, có %d", want, len(list))
	}
}

func TestResolveParticipants_LoiDocAdminNoiLen(t *testing.T) {
	f := buildRosterFixture()
	f.roster.adminErr = errors.New("mongo down")

	if _, err := ResolveParticipants(context.Background(), f.roster, f.submission, f.actor, ""); err == nil {
		t.Error("Lỗi đọc danh sách Admin phải nổi lên caller")
	}
}

func TestResolveParticipants_SubmissionNilChiCoActorVaAdmin(t *testing.T) {
	f := buildRosterFixture()

	list, err := ResolveParticipants(context.Background(), f.roster, nil, f.actor, "")
	if err != nil {
		t.Fatalf("ResolveParticipants trả về lỗi: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Submission nil thì chỉ còn actor + admins, có %d participant", len(list))
	}
}
