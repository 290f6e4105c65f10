// Package authsvc - Test chuẩn hóa email và băm mật khẩu.
package authsvc

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com  ", "user@example.com"},
		{"\tUSER@EXAMPLE.COM\n", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeEmail(c.in); got != c.want {
			t.Errorf("NormalizeEmail(%q) = %q, muốn %q", c.in, got, c.want)
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("mat-khau-manh-123")
	if err != nil {
		t.Fatalf("HashPassword trả về lỗi: %v", err)
	}
	if hashed == "mat-khau-manh-123" {
		t.Fatal("Mật khẩu không được lưu plaintext")
	}
	if err := ComparePassword(hashed, "mat-khau-manh-123"); err != nil {
		t.Errorf("ComparePassword phải khớp với mật khẩu gốc: %v", err)
	}
	if err := ComparePassword(hashed, "mat-khau-sai"); err == nil {
		t.Error("ComparePassword phải từ chối mật khẩu sai")
	}
}
