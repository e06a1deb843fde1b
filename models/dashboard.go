package models

type DashboardSummary struct {
	Greeting          string  `json:"greeting"`
	Date              string  `json:"date"`
	TotalStudents     int     `json:"totalStudents"`
	PresentToday      int     `json:"presentToday"`
	AbsentToday       int     `json:"absentToday"`
	LateToday         int     `json:"lateToday"`
	MarkedToday       int     `json:"markedToday"`
	AttendanceToday   float64 `json:"attendanceToday"`
	MonthPayments     float64 `json:"monthPayments"`
	MonthPaymentCount int     `json:"monthPaymentCount"`
}
