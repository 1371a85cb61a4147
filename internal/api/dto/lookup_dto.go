package dto

// CreateClientRequest payload.
type CreateClientRequest struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Domain    *string `json:"domain"`
	CompanyID *int64  `json:"company_id"`
}

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// SetStaffStatusRequest payload.
type SetStaffStatusRequest struct {
	Status string `json:"status"`
}

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
}

// CreateCompanyRequest payload.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}
