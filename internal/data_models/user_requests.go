package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required"`
	Phone       *string `json:"phone"`
	Email       string  `json:"email" validate:"required,email"`
	BirthDate   *string `json:"birthDate" validate:"omitempty,calendar_date"`
	Gender      *string `json:"gender" validate:"omitempty,gender"`
	Department  *string `json:"department" validate:"omitempty,department"`
	Designation *string `json:"designation"`
	Role        *string `json:"role" validate:"omitempty,user_role"`
}

type UpdateUserStatusRequest struct {
	Status      string  `json:"status" validate:"required,user_status"`
	Role        *string `json:"role" validate:"omitempty,user_role"`
	Department  *string `json:"department" validate:"omitempty,department"`
	Designation *string `json:"designation"`
	EmployeeID  *string `json:"employeeId"`
}

// UpdateProfileRequest is bound from multipart form fields; nil means absent.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate" validate:"omitempty,calendar_date"`
	Gender    *string `json:"gender" validate:"omitempty,gender"`
	Phone     *string `json:"phone"`
}

type UserListRequest struct {
	Status     string `query:"status" validate:"omitempty,user_status"`
	Role       string `query:"role" validate:"omitempty,user_role"`
	Department string `query:"department" validate:"omitempty,department"`
	Search     string `query:"search"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
