package admin

import (
	"context"

	"employee-portal/internal/client"
	"employee-portal/internal/logger"
)

// UpdateFunc is invoked after every successful mutation so the parent can
// re-fetch and supply a fresh snapshot. It is the editor's only refresh path.
type UpdateFunc func(ctx context.Context) error

// TeamMembersEditor mutates the member associations of one already-persisted
// team, one network call at a time. It operates on a snapshot: the member
// list shown is whatever SetTeam last installed, never locally patched.
type TeamMembersEditor struct {
	client   *client.Client
	team     client.TeamWithMembers
	onUpdate UpdateFunc

	employees []client.Employee
	available []client.Employee

	selected     *client.Employee
	selectedRole string

	// role edit holds at most one row at a time
	editingMemberID int
	draftRole       string

	busy bool
	err  string
}

// NewTeamMembersEditor creates an editor over a team snapshot. onUpdate may
// be nil when no parent re-fetch is wanted.
func NewTeamMembersEditor(c *client.Client, team client.TeamWithMembers, onUpdate UpdateFunc) *TeamMembersEditor {
	return &TeamMembersEditor{
		client:       c,
		team:         team,
		onUpdate:     onUpdate,
		selectedRole: client.RoleMember,
	}
}

// Team returns the current snapshot
func (e *TeamMembersEditor) Team() client.TeamWithMembers {
	return e.team
}

// SetTeam installs a fresh snapshot, typically after the parent's re-fetch
func (e *TeamMembersEditor) SetTeam(team client.TeamWithMembers) {
	e.team = team
}

// LoadEmployees fetches the employee directory and computes the add-picker
// options: directory minus current members. The derived list is computed once
// per call, not kept live against later additions.
func (e *TeamMembersEditor) LoadEmployees(ctx context.Context) error {
	employees, err := e.client.ListEmployees(ctx)
	if err != nil {
		logger.WithContext(ctx).Errorf("failed to load employees for members editor: %v", err)
		e.err = err.Error()
		return err
	}

	e.employees = employees
	memberIDs := e.team.MemberEmployeeIDs()

	// a fresh slice every time: callers may still hold the previous one
	available := make([]client.Employee, 0, len(employees))
	for _, emp := range employees {
		if !memberIDs[emp.ID] {
			available = append(available, emp)
		}
	}
	e.available = available
	return nil
}

// Available returns the add-picker options
func (e *TeamMembersEditor) Available() []client.Employee {
	return e.available
}

// Select picks the employee for the next add; nil clears the selection
func (e *TeamMembersEditor) Select(employee *client.Employee) {
	e.selected = employee
}

// Selected returns the picked employee, nil when none
func (e *TeamMembersEditor) Selected() *client.Employee {
	return e.selected
}

// SetRole sets the role used for the next add
func (e *TeamMembersEditor) SetRole(role string) {
	e.selectedRole = role
}

// CanAdd reports whether the add control is enabled: an employee selected and
// no request in flight
func (e *TeamMembersEditor) CanAdd() bool {
	return e.selected != nil && !e.busy
}

// AddMember adds the selected employee. On success the selection is cleared,
// the role reset to member and the parent callback fired; the member list is
// never appended locally to avoid drifting from a stale directory.
func (e *TeamMembersEditor) AddMember(ctx context.Context) error {
	if !e.CanAdd() {
		return nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	if _, err := e.client.AddTeamMember(ctx, e.team.ID, e.selected.ID, e.selectedRole); err != nil {
		e.err = err.Error()
		return err
	}

	e.selected = nil
	e.selectedRole = client.RoleMember
	e.err = ""
	return e.fireUpdate(ctx)
}

// RemoveMember removes one membership. There is no confirmation prompt; only
// whole-team deletion asks for one.
func (e *TeamMembersEditor) RemoveMember(ctx context.Context, memberID int) error {
	if e.busy {
		return nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	if err := e.client.RemoveTeamMember(ctx, e.team.ID, memberID); err != nil {
		e.err = err.Error()
		return err
	}

	e.err = ""
	return e.fireUpdate(ctx)
}

// StartRoleEdit enters role-edit mode for one member row. Starting an edit on
// another row abandons the previous draft without saving.
func (e *TeamMembersEditor) StartRoleEdit(memberID int) {
	e.editingMemberID = memberID
	e.draftRole = client.RoleMember
	for _, m := range e.team.Members {
		if m.ID == memberID && m.Role != "" {
			e.draftRole = m.Role
			break
		}
	}
}

// EditingMemberID returns the row in role-edit mode, 0 when none
func (e *TeamMembersEditor) EditingMemberID() int {
	return e.editingMemberID
}

// SetDraftRole updates the unsaved role for the row being edited
func (e *TeamMembersEditor) SetDraftRole(role string) {
	e.draftRole = role
}

// DraftRole returns the unsaved role for the row being edited
func (e *TeamMembersEditor) DraftRole() string {
	return e.draftRole
}

// CancelRoleEdit leaves role-edit mode without a network call
func (e *TeamMembersEditor) CancelRoleEdit() {
	e.editingMemberID = 0
	e.draftRole = ""
}

// SaveRoleEdit persists the draft role, clears edit mode and fires the parent
// callback
func (e *TeamMembersEditor) SaveRoleEdit(ctx context.Context) error {
	if e.editingMemberID == 0 || e.busy {
		return nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	if _, err := e.client.UpdateTeamMemberRole(ctx, e.team.ID, e.editingMemberID, e.draftRole); err != nil {
		e.err = err.Error()
		return err
	}

	e.editingMemberID = 0
	e.draftRole = ""
	e.err = ""
	return e.fireUpdate(ctx)
}

// Busy reports whether a mutation is in flight
func (e *TeamMembersEditor) Busy() bool {
	return e.busy
}

// Err returns the editor-scoped error message; each failure replaces the
// previous one
func (e *TeamMembersEditor) Err() string {
	return e.err
}

func (e *TeamMembersEditor) fireUpdate(ctx context.Context) error {
	if e.onUpdate == nil {
		return nil
	}
	return e.onUpdate(ctx)
}
