package models

import "time"

// Team member roles
const (
	RoleTeamMember = "member"
	RoleTeamLeader = "leader"
)

// Team represents a named grouping of employees. Name is unique across the
// portal; Status is server-assigned and defaults to active.
type Team struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"size:500"`
	Department  string    `json:"department,omitempty" gorm:"size:50"`
	Status      string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt   time.Time `json:"created_at"`

	Members []TeamMember `json:"members,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// TeamMember binds one employee to one team with a role. An employee appears
// at most once per team.
type TeamMember struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TeamID     uint      `json:"team_id" gorm:"not null;uniqueIndex:idx_team_employee"`
	EmployeeID uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_team_employee"`
	Role       string    `json:"role" gorm:"size:20;not null;default:member"`
	JoinedAt   time.Time `json:"joined_at"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

// TableName returns the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}

// ValidRole reports whether role is one of the accepted member roles
func ValidRole(role string) bool {
	return role == RoleTeamMember || role == RoleTeamLeader
}
