package admin

import (
	"context"

	"employee-portal/internal/client"
	"employee-portal/internal/logger"

	"github.com/go-playground/validator/v10"
)

// StagedMember is a client-only, not-yet-persisted member entry staged while
// creating a team. It holds no server identity and is discarded after the
// create call.
type StagedMember struct {
	EmployeeID int
	Role       string
	Employee   client.Employee
}

// TeamForm creates or updates a team's scalar fields. Member staging is only
// available in create mode; post-creation membership changes go through the
// TeamMembersEditor instead.
type TeamForm struct {
	client   *client.Client
	team     *client.Team // nil in create mode
	validate *validator.Validate

	Name        string
	Description string
	Department  string

	employees []client.Employee
	staged    []StagedMember

	busy bool
	err  string
}

type teamFormInput struct {
	Name string `validate:"required"`
}

// NewTeamForm builds a form; a non-nil team selects edit mode and
// pre-populates the fields
func NewTeamForm(c *client.Client, team *client.Team) *TeamForm {
	f := &TeamForm{
		client:   c,
		team:     team,
		validate: validator.New(),
	}
	if team != nil {
		f.Name = team.Name
		f.Description = team.Description
		f.Department = team.Department
	}
	return f
}

// EditMode reports whether the form updates an existing team
func (f *TeamForm) EditMode() bool {
	return f.team != nil
}

// LoadEmployees fills the member picker. A failure here is logged but not
// surfaced; the form stays usable without the picker.
func (f *TeamForm) LoadEmployees(ctx context.Context) {
	employees, err := f.client.ListEmployees(ctx)
	if err != nil {
		logger.WithContext(ctx).Errorf("failed to load employees for team form: %v", err)
		return
	}
	f.employees = employees
}

// AvailableEmployees returns the picker options: the directory minus the
// already-staged employees
func (f *TeamForm) AvailableEmployees() []client.Employee {
	staged := make(map[int]bool, len(f.staged))
	for _, m := range f.staged {
		staged[m.EmployeeID] = true
	}

	available := make([]client.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		if !staged[e.ID] {
			available = append(available, e)
		}
	}
	return available
}

// StageMember stages an employee for the create call. Staging an employee
// that is already staged is a no-op: the first entry wins, role included.
func (f *TeamForm) StageMember(employee client.Employee, role string) {
	if role == "" {
		role = client.RoleMember
	}
	for _, m := range f.staged {
		if m.EmployeeID == employee.ID {
			return
		}
	}
	f.staged = append(f.staged, StagedMember{
		EmployeeID: employee.ID,
		Role:       role,
		Employee:   employee,
	})
}

// UnstageMember removes a staged entry before submission, with no network
// effect
func (f *TeamForm) UnstageMember(employeeID int) {
	// a fresh slice every time: callers may still hold the previous one
	kept := make([]StagedMember, 0, len(f.staged))
	for _, m := range f.staged {
		if m.EmployeeID != employeeID {
			kept = append(kept, m)
		}
	}
	f.staged = kept
}

// SetStagedRole changes the role on a staged entry
func (f *TeamForm) SetStagedRole(employeeID int, role string) {
	for i := range f.staged {
		if f.staged[i].EmployeeID == employeeID {
			f.staged[i].Role = role
			return
		}
	}
}

// Staged returns the staged member list
func (f *TeamForm) Staged() []StagedMember {
	return f.staged
}

// Busy reports whether a submit is in flight
func (f *TeamForm) Busy() bool {
	return f.busy
}

// Err returns the form-scoped error message
func (f *TeamForm) Err() string {
	return f.err
}

// Submit issues the single create or update call. On failure the field values
// and staged list are kept intact and the server's error text recorded; on
// success the saved team is returned and the caller refreshes its list.
func (f *TeamForm) Submit(ctx context.Context) (*client.Team, error) {
	if f.busy {
		return nil, nil
	}

	if err := f.validate.Struct(teamFormInput{Name: f.Name}); err != nil {
		f.err = "team name is required"
		return nil, err
	}

	f.busy = true
	defer func() { f.busy = false }()

	input := client.TeamInput{
		Name:        f.Name,
		Description: f.Description,
		Department:  f.Department,
	}

	var saved *client.Team
	var err error
	if f.team != nil {
		saved, err = f.client.UpdateTeam(ctx, f.team.ID, input)
	} else {
		members := make([]client.MemberInput, 0, len(f.staged))
		for _, m := range f.staged {
			members = append(members, client.MemberInput{EmployeeID: m.EmployeeID, Role: m.Role})
		}
		saved, err = f.client.CreateTeam(ctx, input, members)
	}

	if err != nil {
		f.err = err.Error()
		return nil, err
	}

	f.err = ""
	return saved, nil
}
