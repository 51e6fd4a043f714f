package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"employee-portal/internal/database/models"
)

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates a test Employee with default values and a unique email
func (f *EmployeeFactory) Create() *models.Employee {
	suffix := uuid.NewString()[:8]
	return &models.Employee{
		FirstName:  "Dana",
		LastName:   "Levi",
		Email:      fmt.Sprintf("dana.levi+%s@test.com", suffix),
		Phone:      "+1-555-0142",
		Department: "Engineering",
		Position:   "Engineer",
		HireDate:   "2023-04-01",
		Status:     models.StatusActive,
	}
}

// WithName sets a custom name for the employee
func (f *EmployeeFactory) WithName(first, last string) *models.Employee {
	employee := f.Create()
	employee.FirstName = first
	employee.LastName = last
	return employee
}

// Inactive creates a deactivated employee
func (f *EmployeeFactory) Inactive() *models.Employee {
	employee := f.Create()
	employee.Status = models.StatusInactive
	return employee
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values and a unique name
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		Name:        "Team " + uuid.NewString()[:8],
		Description: "A test team",
		Department:  "Engineering",
		Status:      "active",
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// MemberFactory provides methods to create test TeamMember data
type MemberFactory struct{}

// NewMemberFactory creates a new MemberFactory
func NewMemberFactory() *MemberFactory {
	return &MemberFactory{}
}

// Create binds an employee to a team with the default role
func (f *MemberFactory) Create(teamID, employeeID uint) *models.TeamMember {
	return &models.TeamMember{
		TeamID:     teamID,
		EmployeeID: employeeID,
		Role:       models.RoleTeamMember,
		JoinedAt:   time.Now(),
	}
}

// WithRole binds an employee to a team with a custom role
func (f *MemberFactory) WithRole(teamID, employeeID uint, role string) *models.TeamMember {
	member := f.Create(teamID, employeeID)
	member.Role = role
	return member
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique username and a known password
func (f *UserFactory) Create(password string) *models.User {
	user := &models.User{
		Username: "user-" + uuid.NewString()[:8],
		Role:     models.RoleEmployee,
	}
	if err := user.SetPassword(password); err != nil {
		panic(err)
	}
	return user
}

// Admin creates a test admin User with a known password
func (f *UserFactory) Admin(password string) *models.User {
	user := f.Create(password)
	user.Role = models.RoleAdmin
	return user
}
