package leave

type ApplyLeaveRequest struct {
	EmployeeID int64   `json:"employee_id" binding:"required"`
	LeaveType  string  `json:"leave_type" binding:"required,oneof=casual sick earned"`
	FromDate   string  `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate     string  `json:"to_date" binding:"required,datetime=2006-01-02"`
	HalfDay    bool    `json:"half_day"`
	Reason     *string `json:"reason"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	FromDate        string  `json:"from_date"`
	ToDate          string  `json:"to_date"`
	HalfDay         bool    `json:"half_day"`
	Days            int     `json:"days"`
	Reason          *string `json:"reason,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	Status          string  `json:"status"`
}

type LeaveBalanceResponse struct {
	EmployeeID  int64 `json:"employee_id"`
	CasualLeave int   `json:"casual_leave"`
	SickLeave   int   `json:"sick_leave"`
	EarnedLeave int   `json:"earned_leave"`
}
