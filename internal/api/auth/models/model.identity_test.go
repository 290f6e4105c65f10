// Package models - Test quy tắc dựng tên hiển thị của Identity.
package models

import "testing"

func TestDisplayName_UuTienHoTen(t *testing.T) {
	i := &Identity{FirstName: "Minh", LastName: "Tran", Name: "Bỏ qua", Email: "minh@example.com"}
	if got := i.DisplayName(); got != "Minh Tran" {
		t.Errorf("DisplayName phải ưu tiên firstName + lastName, có %q", got)
	}
}

func TestDisplayName_ChiCoMotPhanTen(t *testing.T) {
	i := &Identity{FirstName: "Minh", Email: "minh@example.com"}
	if got := i.DisplayName(); got != "Minh" {
		t.Errorf("Thiếu lastName thì chỉ dùng firstName đã trim, có %q", got)
	}

	i = &Identity{LastName: "  Tran  ", Email: "minh@example.com"}
	if got := i.DisplayName(); got != "Tran" {
		t.Errorf("Thiếu firstName thì chỉ dùng lastName đã trim, có %q", got)
	}
}

func TestDisplayName_FallbackName(t *testing.T) {
	i := &Identity{Name: "Nguyễn Văn A", Email: "a@example.com"}
	if got := i.DisplayName(); got != "Nguyễn Văn A" {
		t.Errorf("Không có họ tên thì dùng name, có %q", got)
	}
}

func TestDisplayName_FallbackEmailLocalPart(t *testing.T) {
	i := &Identity{Email: "van.a@example.com"}
	if got := i.DisplayName(); got != "van.a" {
		t.Errorf("Không có tên nào thì dùng phần local của email, có %q", got)
	}

	// Email không có @ thì dùng nguyên chuỗi
	i = &Identity{Email: "khongphaiemail"}
	if got := i.DisplayName(); got != "khongphaiemail" {
		t.Errorf("Email không có @ thì dùng nguyên chuỗi, có %q", got)
	}
}
