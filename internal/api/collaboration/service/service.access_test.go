// Package collaborationsvc - Test predicate quyền truy cập submission theo vai trò.
package collaborationsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "task_flow/internal/api/auth/models"
	submissionmodels "task_flow/internal/api/submission/models"
)

func identity(role string, id primitive.ObjectID, email string) *authmodels.Identity {
	return &authmodels.Identity{ID: id, Role: role, Email: email}
}

// Kịch bản chuẩn: M1 là owner, M2 được share, T1 được gán, E1 được gán.
func buildScenario() (m1, m2, t1, e1 primitive.ObjectID, submission *submissionmodels.Submission) {
	m1 = primitive.NewObjectID()
	m2 = primitive.NewObjectID()
	t1 = primitive.NewObjectID()
	e1 = primitive.NewObjectID()
	submission = &submissionmodels.Submission{
		ID:                primitive.NewObjectID(),
		Owner:             m1,
		SharedManagers:    []primitive.ObjectID{m2},
		AssignedTeamLeads: []primitive.ObjectID{t1},
		AssignedEmployees: []submissionmodels.EmployeeAssignment{
			{EmployeeRef: e1, Status: submissionmodels.StatusPending},
		},
	}
	return
}

func TestCanAccessSubmission_AdminLuonCoQuyen(t *testing.T) {
	_, _, _, _, submission := buildScenario()
	admin := identity(authmodels.RoleAdmin, primitive.NewObjectID(), "admin@example.com")
	if !CanAccessSubmission(admin, submission) {
		t.Error("Admin phải luôn có quyền truy cập submission")
	}
}

func TestCanAccessSubmission_ManagerOwnerVaShared(t *testing.T) {
	m1, m2, _, _, submission := buildScenario()

	if !CanAccessSubmission(identity(authmodels.RoleManager, m1, "m1@example.com"), submission) {
		t.Error("Manager owner phải có quyền truy cập")
	}
	if !CanAccessSubmission(identity(authmodels.RoleManager, m2, "m2@example.com"), submission) {
		t.Error("Manager được share phải có quyền truy cập")
	}
	if CanAccessSubmission(identity(authmodels.RoleManager, primitive.NewObjectID(), "m3@example.com"), submission) {
		t.Error("Manager ngoài owner/sharedManagers không được có quyền")
	}
}

func TestCanAccessSubmission_TeamLeadAssignedVaShared(t *testing.T) {
	_, _, t1, _, submission := buildScenario()

	if !CanAccessSubmission(identity(authmodels.RoleTeamLead, t1, "t1@example.com"), submission) {
		t.Error("TeamLead được gán phải có quyền truy cập")
	}

	// sharedTeamLeads cho quyền tương đương assignedTeamLeads
	sharedLead := primitive.NewObjectID()
	submission.SharedTeamLeads = []primitive.ObjectID{sharedLead}
	if !CanAccessSubmission(identity(authmodels.RoleTeamLead, sharedLead, "t2@example.com"), submission) {
		t.Error("TeamLead trong sharedTeamLeads phải có quyền truy cập")
	}

	if CanAccessSubmission(identity(authmodels.RoleTeamLead, primitive.NewObjectID(), "t3@example.com"), submission) {
		t.Error("TeamLead không được gán không được có quyền")
	}
}

func TestCanAccessSubmission_Employee(t *testing.T) {
	_, _, _, e1, submission := buildScenario()

	if !CanAccessSubmission(identity(authmodels.RoleEmployee, e1, "e1@example.com"), submission) {
		t.Error("Employee được gán phải có quyền truy cập")
	}
	if CanAccessSubmission(identity(authmodels.RoleEmployee, primitive.NewObjectID(), "e2@example.com"), submission) {
		t.Error("Employee không được gán không được có quyền")
	}
}

func TestCanAccessSubmission_VaiTroLaVaNilAnToan(t *testing.T) {
	_, _, _, _, submission := buildScenario()

	if CanAccessSubmission(identity("Guest", primitive.NewObjectID(), "guest@example.com"), submission) {
		t.Error("Vai trò lạ phải bị từ chối")
	}
	if CanAccessSubmission(nil, submission) {
		t.Error("Actor nil phải bị từ chối")
	}
	if CanAccessSubmission(identity(authmodels.RoleManager, primitive.NewObjectID(), "m@example.com"), nil) {
		t.Error("Submission nil phải bị từ chối")
	}
}

func TestCanAccessSubmission_DanhSachThieuCoiNhuRong(t *testing.T) {
	// Submission chỉ có owner, các danh sách khác nil
	owner := primitive.NewObjectID()
	submission := &submissionmodels.Submission{ID: primitive.NewObjectID(), Owner: owner}

	if !CanAccessSubmission(identity(authmodels.RoleManager, owner, "owner@example.com"), submission) {
		t.Error("Owner phải có quyền truy cập dù các danh sách khác nil")
	}
	if CanAccessSubmission(identity(authmodels.RoleTeamLead, primitive.NewObjectID(), "t@example.com"), submission) {
		t.Error("Danh sách nil phải được coi như rỗng, không panic và không cho quyền")
	}
	if CanAccessSubmission(identity(authmodels.RoleEmployee, primitive.NewObjectID(), "e@example.com"), submission) {
		t.Error("Danh sách assignedEmployees nil phải được coi như rỗng")
	}
}
