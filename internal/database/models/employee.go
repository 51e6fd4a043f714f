package models

// Employee statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee represents a member of staff, owned by the employee-management
// subsystem and read-only for the team views
type Employee struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"not null;index"`
	FirstName  string `json:"first_name" gorm:"size:50;not null"`
	LastName   string `json:"last_name" gorm:"size:50;not null"`
	Email      string `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone      string `json:"phone,omitempty" gorm:"size:20"`
	Department string `json:"department,omitempty" gorm:"size:50"`
	Position   string `json:"position,omitempty" gorm:"size:50"`
	HireDate   string `json:"hire_date,omitempty" gorm:"size:10"`
	Status     string `json:"status" gorm:"size:20;not null;default:active"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsActive reports whether the employee is active
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
