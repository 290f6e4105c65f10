package authdto

// ManagerCreateInput đầu vào tạo quản lý (CRUD).
type ManagerCreateInput struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// ManagerUpdateInput đầu vào cập nhật quản lý.
type ManagerUpdateInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}
