package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-portal/internal/config"
	apperrors "employee-portal/internal/errors"
)

// roundTripFunc allows mocking HTTP responses
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt roundTripFunc) *Client {
	cfg := &config.Config{APIBaseURL: "http://portal.test/api", APITimeoutSec: 5}
	c := NewClient(cfg, StaticToken("test-token"))
	c.httpClient = &http.Client{Transport: rt}
	return c
}

func jsonResponse(status int, body interface{}) *http.Response {
	payload, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(payload)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		return jsonResponse(http.StatusOK, map[string]interface{}{"teams": []Team{}, "total": 0}), nil
	})

	_, err := c.ListTeams(context.Background())
	require.NoError(t, err)
}

func TestClientNilTokenSourceSendsNoHeader(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		return jsonResponse(http.StatusOK, map[string]interface{}{"teams": []Team{}}), nil
	})
	c.SetTokenSource(nil)

	_, err := c.ListTeams(context.Background())
	require.NoError(t, err)
}

func TestClientTrimsTrailingSlashFromBaseURL(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://portal.test/api/", APITimeoutSec: 5}
	c := NewClient(cfg, nil)
	c.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "http://portal.test/api/teams/", req.URL.String())
		return jsonResponse(http.StatusOK, map[string]interface{}{"teams": []Team{}}), nil
	})}

	_, err := c.ListTeams(context.Background())
	require.NoError(t, err)
}

func TestListTeams(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/api/teams/", req.URL.Path)
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"teams": []Team{
				{ID: 1, Name: "Platform", Department: "Engineering"},
				{ID: 2, Name: "Ops"},
			},
			"total": 2,
		}), nil
	})

	teams, err := c.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Platform", teams[0].Name)
	assert.Equal(t, 2, teams[1].ID)
}

func TestListTeamsServerMessagePreferred(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, map[string]string{
			"message": "database is down",
		}), nil
	})

	_, err := c.ListTeams(context.Background())
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database is down", apiErr.Message)
}

func TestListTeamsErrorFieldUsedWhenMessageMissing(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, map[string]string{
			"error": "upstream timeout",
		}), nil
	})

	_, err := c.ListTeams(context.Background())
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream timeout", apiErr.Message)
}

func TestListTeamsFallbackWhenBodyEmpty(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(bytes.NewReader(nil)),
		}, nil
	})

	_, err := c.ListTeams(context.Background())
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "failed to load teams", apiErr.Message)
}

func TestListTeamsTransportErrorWrapsFallback(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := c.ListTeams(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load teams")
	assert.Contains(t, err.Error(), "connection refused")

	var apiErr *apperrors.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestGetTeamNotFound(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/teams/42", req.URL.Path)
		return jsonResponse(http.StatusNotFound, map[string]string{"message": "team not found"}), nil
	})

	_, err := c.GetTeam(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetTeamReturnsMembers(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"team": map[string]interface{}{
				"id":   7,
				"name": "Platform",
				"members": []map[string]interface{}{
					{"id": 11, "team_id": 7, "employee_id": 101, "role": RoleLeader},
					{"id": 12, "team_id": 7, "employee_id": 102, "role": RoleMember},
				},
			},
		}), nil
	})

	team, err := c.GetTeam(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, team.ID)
	require.Len(t, team.Members, 2)
	assert.Equal(t, RoleLeader, team.Members[0].Role)

	ids := team.MemberEmployeeIDs()
	assert.True(t, ids[101])
	assert.True(t, ids[102])
	assert.False(t, ids[103])
}

func TestCreateTeamSendsMembersArray(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, "Platform", payload["name"])

		members, ok := payload["members"].([]interface{})
		require.True(t, ok, "members must always be present")
		require.Len(t, members, 1)
		first := members[0].(map[string]interface{})
		assert.Equal(t, float64(101), first["employee_id"])
		assert.Equal(t, RoleLeader, first["role"])

		return jsonResponse(http.StatusCreated, map[string]interface{}{
			"message": "Team created successfully",
			"team":    Team{ID: 1, Name: "Platform"},
		}), nil
	})

	team, err := c.CreateTeam(context.Background(), TeamInput{Name: "Platform"},
		[]MemberInput{{EmployeeID: 101, Role: RoleLeader}})
	require.NoError(t, err)
	assert.Equal(t, 1, team.ID)
}

func TestCreateTeamNilMembersBecomesEmptyArray(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))

		members, ok := payload["members"].([]interface{})
		require.True(t, ok)
		assert.Empty(t, members)

		return jsonResponse(http.StatusCreated, map[string]interface{}{"team": Team{ID: 2}}), nil
	})

	_, err := c.CreateTeam(context.Background(), TeamInput{Name: "Empty"}, nil)
	require.NoError(t, err)
}

func TestCreateTeamDuplicateName(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusConflict, map[string]string{"message": "team name already exists"}), nil
	})

	_, err := c.CreateTeam(context.Background(), TeamInput{Name: "Platform"}, nil)
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "team name already exists", apiErr.Message)
}

func TestUpdateTeamAlwaysSendsAllFields(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/teams/3", req.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		// empty strings still go on the wire so fields can be cleared
		desc, present := payload["description"]
		assert.True(t, present)
		assert.Equal(t, "", desc)

		return jsonResponse(http.StatusOK, map[string]interface{}{"team": Team{ID: 3, Name: "Renamed"}}), nil
	})

	team, err := c.UpdateTeam(context.Background(), 3, TeamInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", team.Name)
}

func TestDeleteTeam(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/api/teams/5", req.URL.Path)
		return jsonResponse(http.StatusOK, map[string]string{"message": "Team deleted successfully"}), nil
	})

	require.NoError(t, c.DeleteTeam(context.Background(), 5))
}

func TestAddTeamMemberDefaultsRole(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/teams/7/members", req.URL.Path)

		var payload MemberInput
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, 101, payload.EmployeeID)
		assert.Equal(t, RoleMember, payload.Role)

		return jsonResponse(http.StatusCreated, map[string]interface{}{
			"team_member": TeamMember{ID: 20, TeamID: 7, EmployeeID: 101, Role: RoleMember},
		}), nil
	})

	member, err := c.AddTeamMember(context.Background(), 7, 101, "")
	require.NoError(t, err)
	assert.Equal(t, 20, member.ID)
	assert.Equal(t, RoleMember, member.Role)
}

func TestAddTeamMemberConflict(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusConflict, map[string]string{
			"message": "employee is already a member of this team",
		}), nil
	})

	_, err := c.AddTeamMember(context.Background(), 7, 101, RoleMember)
	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestRemoveTeamMember(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/api/teams/7/members/20", req.URL.Path)
		return jsonResponse(http.StatusOK, map[string]string{"message": "Team member removed successfully"}), nil
	})

	require.NoError(t, c.RemoveTeamMember(context.Background(), 7, 20))
}

func TestUpdateTeamMemberRole(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/api/teams/7/members/20", req.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, RoleLeader, payload["role"])

		return jsonResponse(http.StatusOK, map[string]interface{}{
			"team_member": TeamMember{ID: 20, Role: RoleLeader},
		}), nil
	})

	member, err := c.UpdateTeamMemberRole(context.Background(), 7, 20, RoleLeader)
	require.NoError(t, err)
	assert.Equal(t, RoleLeader, member.Role)
}

func TestListEmployees(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/employees/", req.URL.Path)
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"employees": []Employee{
				{ID: 101, FirstName: "Dana", LastName: "Levi"},
			},
			"total": 1,
		}), nil
	})

	employees, err := c.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Dana Levi", employees[0].FullName())
}

func TestLoginDoesNotRequireToken(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://portal.test/api", APITimeoutSec: 5}
	c := NewClient(cfg, nil)
	c.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, "/api/auth/login", req.URL.Path)
		return jsonResponse(http.StatusOK, LoginResult{
			AccessToken: "issued-token",
			User:        User{ID: 1, Username: "admin", Role: "admin"},
		}), nil
	})}

	result, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", result.AccessToken)
	assert.Equal(t, "admin", result.User.Username)
}

func TestCanceledContextAbortsRequest(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}
		return jsonResponse(http.StatusOK, map[string]interface{}{"teams": []Team{}}), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTeams(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load teams")
}

func TestEmployeeAttendanceBuildsQueryString(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/attendance/employee/7", req.URL.Path)
		assert.Equal(t, "2026-08-01", req.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-31", req.URL.Query().Get("end_date"))
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "25", req.URL.Query().Get("per_page"))
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"employee_id":        7,
			"attendance_records": []Attendance{},
			"total":              0,
		}), nil
	})

	_, err := c.EmployeeAttendance(context.Background(), 7, AttendanceQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Page:      2,
		PerPage:   25,
	})
	require.NoError(t, err)
}

func TestEmployeeAttendanceOmitsEmptyQuery(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.URL.RawQuery)
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"employee_id":        7,
			"attendance_records": []Attendance{},
		}), nil
	})

	_, err := c.EmployeeAttendance(context.Background(), 7, AttendanceQuery{})
	require.NoError(t, err)
}

func TestUpdateAttendanceSendsOnlySetFields(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&payload))
		assert.Equal(t, map[string]interface{}{"status": "late"}, payload)
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"attendance": Attendance{ID: 3, Status: "late"},
		}), nil
	})

	status := "late"
	updated, err := c.UpdateAttendance(context.Background(), 3, AttendanceInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "late", updated.Status)
}
