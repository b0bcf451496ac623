package attendance

type CheckInRequest struct {
	EmployeeID int64   `json:"employee_id" binding:"required"`
	PhotoURL   string  `json:"photo_url" binding:"required"`
	Latitude   float64 `json:"latitude" binding:"required"`
	Longitude  float64 `json:"longitude" binding:"required"`
	DeviceInfo *string `json:"device_info"`
}

type CheckOutRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
}

type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	PhotoURL     string  `json:"photo_url"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Status       string  `json:"status"`
}
