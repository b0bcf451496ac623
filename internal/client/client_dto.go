package client

type RegisterClientRequest struct {
	CompanyName       string `json:"company_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	AgreementFilePath string `json:"agreement_file_path"`
}

type UpdateClientRequest struct {
	CompanyName       *string `json:"company_name"`
	AdminEmail        *string `json:"admin_email" binding:"omitempty,email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	AgreementFilePath *string `json:"agreement_file_path"`
	Status            *string `json:"status" binding:"omitempty,oneof=active suspended deleted"`
}

type ClientResponse struct {
	ID                int64  `json:"id"`
	CompanyName       string `json:"company_name"`
	AdminEmail        string `json:"admin_email"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	DBName            string `json:"db_name"`
	AgreementFilePath string `json:"agreement_file_path,omitempty"`
	Status            string `json:"status"`
	ProvisionState    string `json:"provision_state"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

type RegisterClientResponse struct {
	ID     int64  `json:"id"`
	DBName string `json:"db_name"`
}
