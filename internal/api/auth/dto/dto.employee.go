package authdto

// EmployeeCreateInput đầu vào tạo nhân viên (CRUD).
type EmployeeCreateInput struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

// EmployeeUpdateInput đầu vào cập nhật nhân viên.
type EmployeeUpdateInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}
