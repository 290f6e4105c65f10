// Package models - Test phép tính phần trăm leads và tiến độ subtask.
package models

import (
	"testing"
)

func TestLeadsProgress_BienVaClamp(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		required  int64
		want      int
	}{
		{"required bằng 0 luôn là 0", 50, 0, 0},
		{"required âm coi như 0", 10, -5, 0},
		{"completed bằng 0", 0, 100, 0},
		{"completed âm coi như 0", -3, 100, 0},
		{"đúng một nửa", 50, 100, 50},
		{"hoàn thành đúng target", 100, 100, 100},
		{"vượt target clamp về 100", 150, 100, 100},
		{"vượt target với required nhỏ", 7, 3, 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LeadsProgress(c.completed, c.required); got != c.want {
				t.Errorf("LeadsProgress(%d, %d) = %d, muốn %d", c.completed, c.required, got, c.want)
			}
		})
	}
}

func TestLeadsProgress_LamTronHalfUp(t *testing.T) {
	cases := []struct {
		completed int64
		required  int64
		want      int
	}{
		{1, 3, 33},   // 33.33 -> 33
		{2, 3, 67},   // 66.67 -> 67
		{1, 6, 17},   // 16.67 -> 17
		{1, 200, 1},  // 0.5 -> 1 (half-up)
		{1, 400, 0},  // 0.25 -> 0
		{99, 200, 50}, // 49.5 -> 50 (half-up)
	}

	for _, c := range cases {
		if got := LeadsProgress(c.completed, c.required); got != c.want {
			t.Errorf("LeadsProgress(%d, %d) = %d, muốn %d", c.completed, c.required, got, c.want)
		}
	}
}

func TestSubtaskProgress_CongDonCaBaDanhSach(t *testing.T) {
	subtask := &Subtask{
		TotalLeadsRequired: 100,
		AssignedEmployees: []AssigneeEntry{
			{LeadsCompleted: 20},
			{LeadsCompleted: 10},
		},
		AssignedManagers: []AssigneeEntry{
			{LeadsCompleted: 5},
		},
		AssignedTeamLeads: []AssigneeEntry{
			{LeadsCompleted: 15},
		},
	}

	if got := subtask.Progress(); got != 50 {
		t.Errorf("Progress phải cộng leadsCompleted của cả ba danh sách, có %d, muốn 50", got)
	}
}

func TestSubtaskProgress_KhongCoTarget(t *testing.T) {
	subtask := &Subtask{
		TotalLeadsRequired: 0,
		AssignedEmployees:  []AssigneeEntry{{LeadsCompleted: 42}},
	}
	if got := subtask.Progress(); got != 0 {
		t.Errorf("TotalLeadsRequired = 0 thì progress phải là 0, có %d", got)
	}
}

func TestSubtaskProgress_VuotTarget(t *testing.T) {
	subtask := &Subtask{
		TotalLeadsRequired: 10,
		AssignedEmployees:  []AssigneeEntry{{LeadsCompleted: 25}},
	}
	if got := subtask.Progress(); got != 100 {
		t.Errorf("Completed vượt target thì progress phải clamp về 100, có %d", got)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		if !IsValidStatus(status) {
			t.Errorf("Trạng thái %q phải hợp lệ", status)
		}
	}
	for _, status := range []string{"", "done", "PENDING", "cancelled"} {
		if IsValidStatus(status) {
			t.Errorf("Trạng thái %q không được hợp lệ", status)
		}
	}
}
