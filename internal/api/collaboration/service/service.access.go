// Package collaborationsvc - access engine, participant resolver và channel store.
package collaborationsvc

import (
	authmodels "task_flow/internal/api/auth/models"
	submissionmodels "task_flow/internal/api/submission/models"
)

// CanAccessSubmission là predicate thuần quyết định actor có được vào
// không gian cộng tác của submission hay không. Total: mọi đầu vào đều
// trả về true/false, không lỗi. Danh sách thiếu (nil) coi như rỗng.
//
//   - Admin: luôn true, không cần membership.
//   - Manager: là owner hoặc nằm trong sharedManagers.
//   - TeamLead: nằm trong assignedTeamLeads hoặc sharedTeamLeads
//     (hai danh sách cho quyền như nhau).
//   - Employee: có entry trong assignedEmployees.
//   - Vai trò khác: false.
func CanAccessSubmission(actor *authmodels.Identity, submission *submissionmodels.Submission) bool {
	if actor == nil || submission == nil {
		return false
	}

	switch actor.Role {
	case authmodels.RoleAdmin:
		return true

	case authmodels.RoleManager:
		if submission.Owner == actor.ID {
			return true
		}
		for _, id := range submission.SharedManagers {
			if id == actor.ID {
				return true
			}
		}
		return false

	case authmodels.RoleTeamLead:
		for _, id := range submission.AssignedTeamLeads {
			if id == actor.ID {
				return true
			}
		}
		for _, id := range submission.SharedTeamLeads {
			if id == actor.ID {
				return true
			}
		}
		return false

	case authmodels.RoleEmployee:
		for _, entry := range submission.AssignedEmployees {
			if entry.EmployeeRef == actor.ID {
				return true
			}
		}
		return false
	}

	return false
}
