package admin

type LoginRequest struct {
	DBName   string `json:"db_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	DBName string `json:"db_name,omitempty"`
}

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        AdminResponse `json:"user"`
}
