package dto

type DashboardAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type DashboardPatientsResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type DashboardCountsResponse struct {
	TotalAppointments     int64 `json:"totalAppointments"`
	ConfirmedAppointments int64 `json:"confirmedAppointments"`
	PendingAppointments   int64 `json:"pendingAppointments"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
}

type ActivityResponse struct {
	Activities []AuditLogResponse `json:"activities"`
}
