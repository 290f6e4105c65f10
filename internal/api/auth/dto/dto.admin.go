package authdto

// AdminCreateInput đầu vào tạo quản trị viên (CRUD).
type AdminCreateInput struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// AdminUpdateInput đầu vào cập nhật quản trị viên.
type AdminUpdateInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}
