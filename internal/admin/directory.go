// Package admin holds the team-administration workflows: the team directory,
// the create/edit form and the membership editor. Each type is a
// single-threaded, event-driven state holder over the portal client; every
// mutation reconciles by re-fetching rather than patching local state.
package admin

import (
	"context"

	"employee-portal/internal/client"
	"employee-portal/internal/logger"
)

// TeamDirectory owns the team list view: loading it, confirming deletions
// and dispatching to the form and membership editor.
type TeamDirectory struct {
	client *client.Client

	teams         []client.Team
	loading       bool
	err           string
	pendingDelete *client.Team
}

// NewTeamDirectory creates a directory over the given portal client
func NewTeamDirectory(c *client.Client) *TeamDirectory {
	return &TeamDirectory{client: c}
}

// Refresh re-fetches the full team list. This is the only reconciliation
// mechanism: every successful mutation in the form or editor funnels back
// here. On failure the previous list is retained and the error recorded.
func (d *TeamDirectory) Refresh(ctx context.Context) error {
	log := logger.WithContext(ctx)

	d.loading = true
	defer func() { d.loading = false }()

	teams, err := d.client.ListTeams(ctx)
	if err != nil {
		log.Errorf("failed to refresh team directory: %v", err)
		d.err = err.Error()
		return err
	}

	d.teams = teams
	d.err = ""
	log.Debugf("team directory refreshed: %d teams", len(teams))
	return nil
}

// Teams returns the currently loaded team list
func (d *TeamDirectory) Teams() []client.Team {
	return d.teams
}

// Loading reports whether a list fetch is in flight
func (d *TeamDirectory) Loading() bool {
	return d.loading
}

// Err returns the view-scoped error message, empty when the last operation
// succeeded
func (d *TeamDirectory) Err() string {
	return d.err
}

// RequestDelete opens the delete confirmation for the given team. No network
// call happens until ConfirmDelete.
func (d *TeamDirectory) RequestDelete(team client.Team) {
	d.pendingDelete = &team
}

// PendingDelete returns the delete candidate, or nil when no confirmation is
// open
func (d *TeamDirectory) PendingDelete() *client.Team {
	return d.pendingDelete
}

// CancelDelete discards the delete candidate without a network call
func (d *TeamDirectory) CancelDelete() {
	d.pendingDelete = nil
}

// ConfirmDelete deletes the pending team and unconditionally re-fetches the
// list. On failure the candidate is kept so the confirmation stays open.
func (d *TeamDirectory) ConfirmDelete(ctx context.Context) error {
	if d.pendingDelete == nil {
		return nil
	}

	if err := d.client.DeleteTeam(ctx, d.pendingDelete.ID); err != nil {
		d.err = err.Error()
		return err
	}

	d.pendingDelete = nil
	return d.Refresh(ctx)
}

// NewForm returns a create form (nil team) or an edit form pre-populated from
// the passed team. The form reports success by returning the saved team;
// the caller is expected to Refresh afterwards.
func (d *TeamDirectory) NewForm(team *client.Team) *TeamForm {
	return NewTeamForm(d.client, team)
}

// OpenMembers fetches a fresh snapshot of the team and returns a membership
// editor whose update callback is this directory's Refresh
func (d *TeamDirectory) OpenMembers(ctx context.Context, teamID int) (*TeamMembersEditor, error) {
	team, err := d.client.GetTeam(ctx, teamID)
	if err != nil {
		d.err = err.Error()
		return nil, err
	}

	return NewTeamMembersEditor(d.client, *team, d.Refresh), nil
}
