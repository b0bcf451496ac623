package employee

type CreateEmployeeRequest struct {
	FirstName       string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName        string  `json:"last_name" binding:"required,min=2,max=100"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	DepartmentID    *int64  `json:"department_id"`
	RoleID          *int64  `json:"role_id"`
	HireDate        *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	DocumentAadhar  *string `json:"document_aadhar"`
	DocumentPan     *string `json:"document_pan"`
	DocumentLicence *string `json:"document_licence"`
}

type UpdateEmployeeRequest struct {
	FirstName       *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName        *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Status          *string `json:"status" binding:"omitempty,oneof=active resigned terminated"`
	DepartmentID    *int64  `json:"department_id"`
	RoleID          *int64  `json:"role_id"`
	HireDate        *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	TerminationDate *string `json:"termination_date" binding:"omitempty,datetime=2006-01-02"`
	DocumentAadhar  *string `json:"document_aadhar"`
	DocumentPan     *string `json:"document_pan"`
	DocumentLicence *string `json:"document_licence"`
}

type EmployeeResponse struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	ProfilePicture  *string `json:"profile_picture,omitempty"`
	Status          string  `json:"status"`
	DepartmentID    *int64  `json:"department_id,omitempty"`
	RoleID          *int64  `json:"role_id,omitempty"`
	HireDate        *string `json:"hire_date,omitempty"`
	TerminationDate *string `json:"termination_date,omitempty"`
}
