package department

type CreateDepartmentRequest struct {
	DepartmentName string `json:"department_name" binding:"required,min=2,max=100"`
}

type UpdateDepartmentRequest struct {
	DepartmentName string `json:"department_name" binding:"required,min=2,max=100"`
}

type DepartmentResponse struct {
	ID             int64  `json:"id"`
	DepartmentName string `json:"department_name"`
}
