package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListTeams fetches all teams
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, "/teams/", nil, &resp, "failed to load teams"); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// GetTeam fetches one team with its member list. A missing id surfaces as a
// 404 APIError, detectable with errors.IsNotFound.
func (c *Client) GetTeam(ctx context.Context, id int) (*TeamWithMembers, error) {
	var resp struct {
		Team TeamWithMembers `json:"team"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", id), nil, &resp, "failed to load team members"); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// CreateTeam creates a team together with its initial member list in a single
// request; the server persists the team and memberships atomically.
func (c *Client) CreateTeam(ctx context.Context, input TeamInput, members []MemberInput) (*Team, error) {
	if members == nil {
		members = []MemberInput{}
	}
	payload := struct {
		TeamInput
		Members []MemberInput `json:"members"`
	}{TeamInput: input, Members: members}

	var resp struct {
		Team Team `json:"team"`
	}
	if err := c.do(ctx, http.MethodPost, "/teams/", payload, &resp, "failed to save team"); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// UpdateTeam applies a partial update to a team's scalar fields
func (c *Client) UpdateTeam(ctx context.Context, id int, input TeamInput) (*Team, error) {
	var resp struct {
		Team Team `json:"team"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d", id), input, &resp, "failed to save team"); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

// DeleteTeam removes a team and its memberships
func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d", id), nil, nil, "failed to delete team")
}

// AddTeamMember adds one employee to a team. An empty role defaults to
// RoleMember server-side.
func (c *Client) AddTeamMember(ctx context.Context, teamID, employeeID int, role string) (*TeamMember, error) {
	if role == "" {
		role = RoleMember
	}
	payload := MemberInput{EmployeeID: employeeID, Role: role}

	var resp struct {
		TeamMember TeamMember `json:"team_member"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/members", teamID), payload, &resp, "failed to add team member"); err != nil {
		return nil, err
	}
	return &resp.TeamMember, nil
}

// RemoveTeamMember removes one membership from a team
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, memberID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d/members/%d", teamID, memberID), nil, nil, "failed to remove team member")
}

// UpdateTeamMemberRole changes the role on one membership
func (c *Client) UpdateTeamMemberRole(ctx context.Context, teamID, memberID int, role string) (*TeamMember, error) {
	payload := struct {
		Role string `json:"role"`
	}{Role: role}

	var resp struct {
		TeamMember TeamMember `json:"team_member"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/teams/%d/members/%d", teamID, memberID), payload, &resp, "failed to update role"); err != nil {
		return nil, err
	}
	return &resp.TeamMember, nil
}

// EmployeeTeams fetches the active teams an employee belongs to, each with
// the role held on it
func (c *Client) EmployeeTeams(ctx context.Context, employeeID int) ([]EmployeeTeam, error) {
	var resp struct {
		Teams []EmployeeTeam `json:"teams"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teams/employee/%d", employeeID), nil, &resp, "failed to load employee teams"); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}
