package patientdirectory

// Patient модель пациента из Patient Directory
type Patient struct {
	ID        int64   `json:"id"`
	VisibleID *string `json:"visible_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	BloodType *string `json:"blood_type"`
}

// ErrorResponse модель ошибки от Patient Directory
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
