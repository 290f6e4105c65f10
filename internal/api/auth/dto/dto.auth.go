// Package authdto - các input thuộc domain auth.
package authdto

// LoginInput đầu vào đăng nhập (mọi vai trò dùng chung một endpoint).
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput đầu vào đổi mật khẩu của chính actor.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ResolveIdentityInput đầu vào tra cứu danh tính theo email.
type ResolveIdentityInput struct {
	Email string `json:"email" validate:"required,email"`
}
