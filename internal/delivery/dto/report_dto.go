package dto

type DoctorPerformanceResponse struct {
	Doctor    DoctorSummary `json:"doctor"`
	Total     int64         `json:"total"`
	Completed int64         `json:"completed"`
	Cancelled int64         `json:"cancelled"`
}

type PerformanceReportResponse struct {
	Doctors []DoctorPerformanceResponse `json:"doctors"`
}

type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TrendReportResponse struct {
	Days  int                  `json:"days"`
	Daily []DailyCountResponse `json:"daily"`
	Total int64                `json:"total"`
}

type DemographicsReportResponse struct {
	TotalPatients int              `json:"totalPatients"`
	ByGender      map[string]int64 `json:"byGender"`
	ByAgeGroup    map[string]int64 `json:"byAgeGroup"`
}

// ExportRequest bounds the export by appointment date, both ends inclusive.
type ExportRequest struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

type ExportFile struct {
	Filename string
	Content  []byte
}
