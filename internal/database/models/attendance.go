package models

import "time"

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceLate    = "late"
)

// Attendance is one day's check-in/check-out record for an employee
type Attendance struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	EmployeeID uint       `json:"employee_id" gorm:"not null;index"`
	CheckIn    time.Time  `json:"check_in" gorm:"not null"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Status     string     `json:"status" gorm:"size:20;not null;default:present"`
	Notes      string     `json:"notes,omitempty" gorm:"size:500"`
}

// TableName returns the table name for Attendance
func (Attendance) TableName() string {
	return "attendances"
}

// IsCheckedOut reports whether the record already has a departure time
func (a *Attendance) IsCheckedOut() bool {
	return a.CheckOut != nil
}

// WorkSchedule is an employee's expected working window for one weekday
// (0=Monday .. 6=Sunday), used to mark late arrivals and early departures
type WorkSchedule struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	EmployeeID uint   `json:"employee_id" gorm:"not null;index"`
	DayOfWeek  int    `json:"day_of_week" gorm:"not null"`
	StartTime  string `json:"start_time" gorm:"size:5;not null"` // HH:MM
	EndTime    string `json:"end_time" gorm:"size:5;not null"`   // HH:MM
}

// TableName returns the table name for WorkSchedule
func (WorkSchedule) TableName() string {
	return "work_schedules"
}
