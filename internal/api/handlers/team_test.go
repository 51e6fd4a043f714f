package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"employee-portal/internal/api/routes"
	"employee-portal/internal/auth"
	"employee-portal/internal/database/models"
	"employee-portal/internal/testutils"
)

// setupAPI wires the full router over an in-memory database and returns an
// admin bearer token for it
func setupAPI(t *testing.T) (*testutils.HTTPTestSuite, *gorm.DB, string) {
	t.Helper()

	db := testutils.SetupTestDB(t)
	cfg := testutils.TestConfig()

	admin := testutils.NewUserFactory().Admin("password")
	require.NoError(t, db.Create(admin).Error)

	token, err := auth.NewAuthService(db, cfg).GenerateJWT(admin)
	require.NoError(t, err)

	suite := testutils.SetupHTTPTest()
	suite.Router = routes.Setup(cfg, db)
	return suite, db, token
}

func seedEmployees(t *testing.T, db *gorm.DB, n int) []uint {
	t.Helper()

	factory := testutils.NewEmployeeFactory()
	var ids []uint
	for i := 0; i < n; i++ {
		employee := factory.Create()
		require.NoError(t, db.Create(employee).Error)
		ids = append(ids, employee.ID)
	}
	return ids
}

func TestListTeamsEmpty(t *testing.T) {
	suite, _, token := setupAPI(t)

	recorder := suite.MakeAuthRequest(http.MethodGet, "/api/teams/", nil, token)

	var resp struct {
		Teams []models.Team `json:"teams"`
		Total int           `json:"total"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
	assert.Empty(t, resp.Teams)
	assert.Zero(t, resp.Total)
}

func TestListTeamsRequiresAuth(t *testing.T) {
	suite, _, _ := setupAPI(t)

	recorder := suite.MakeRequest(http.MethodGet, "/api/teams/", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = suite.MakeAuthRequest(http.MethodGet, "/api/teams/", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateTeam(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 2)

	recorder := suite.MakeAuthRequest(http.MethodPost, "/api/teams/", map[string]interface{}{
		"name":        "Platform",
		"description": "Build pipeline owners",
		"department":  "Engineering",
		"members": []map[string]interface{}{
			{"employee_id": ids[0], "role": "leader"},
			{"employee_id": ids[1]},
		},
	}, token)

	var resp struct {
		Message string      `json:"message"`
		Team    models.Team `json:"team"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &resp)
	assert.Equal(t, "Team created successfully", resp.Message)
	assert.NotZero(t, resp.Team.ID)
	assert.Equal(t, "active", resp.Team.Status)

	var members []models.TeamMember
	require.NoError(t, db.Where("team_id = ?", resp.Team.ID).Order("id").Find(&members).Error)
	require.Len(t, members, 2)
	assert.Equal(t, models.RoleTeamLeader, members[0].Role)
	assert.Equal(t, models.RoleTeamMember, members[1].Role, "omitted role defaults to member")
}

func TestCreateTeamValidation(t *testing.T) {
	suite, _, token := setupAPI(t)

	recorder := suite.MakeAuthRequest(http.MethodPost, "/api/teams/", map[string]interface{}{
		"description": "no name",
	}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "team name is required")

	recorder = suite.MakeAuthRequest(http.MethodPost, "/api/teams/", map[string]interface{}{
		"name": "Platform",
		"members": []map[string]interface{}{
			{"employee_id": 1, "role": "owner"},
		},
	}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid role")
}

func TestCreateTeamDuplicateName(t *testing.T) {
	suite, _, token := setupAPI(t)

	body := map[string]interface{}{"name": "Platform"}
	recorder := suite.MakeAuthRequest(http.MethodPost, "/api/teams/", body, token)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = suite.MakeAuthRequest(http.MethodPost, "/api/teams/", body, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "team name already exists")
}

func TestCreateTeamRequiresAdmin(t *testing.T) {
	suite, db, _ := setupAPI(t)
	cfg := testutils.TestConfig()

	user := testutils.NewUserFactory().Create("password")
	require.NoError(t, db.Create(user).Error)
	token, err := auth.NewAuthService(db, cfg).GenerateJWT(user)
	require.NoError(t, err)

	recorder := suite.MakeAuthRequest(http.MethodPost, "/api/teams/", map[string]interface{}{
		"name": "Platform",
	}, token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetTeamWithMembers(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	team := testutils.NewTeamFactory().WithName("Platform")
	require.NoError(t, db.Create(team).Error)
	member := testutils.NewMemberFactory().WithRole(team.ID, ids[0], models.RoleTeamLeader)
	require.NoError(t, db.Create(member).Error)

	recorder := suite.MakeAuthRequest(http.MethodGet, fmt.Sprintf("/api/teams/%d", team.ID), nil, token)

	var resp struct {
		Team models.Team `json:"team"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
	assert.Equal(t, "Platform", resp.Team.Name)
	require.Len(t, resp.Team.Members, 1)
	assert.Equal(t, models.RoleTeamLeader, resp.Team.Members[0].Role)
	require.NotNil(t, resp.Team.Members[0].Employee, "member rows carry the employee record")
}

func TestGetTeamNotFound(t *testing.T) {
	suite, _, token := setupAPI(t)

	recorder := suite.MakeAuthRequest(http.MethodGet, "/api/teams/999", nil, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "team not found")
}

func TestUpdateTeamPartial(t *testing.T) {
	suite, db, token := setupAPI(t)

	team := testutils.NewTeamFactory().WithName("Platform")
	team.Description = "old"
	require.NoError(t, db.Create(team).Error)

	recorder := suite.MakeAuthRequest(http.MethodPut, fmt.Sprintf("/api/teams/%d", team.ID),
		map[string]interface{}{"description": "new"}, token)

	var resp struct {
		Team models.Team `json:"team"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
	assert.Equal(t, "Platform", resp.Team.Name, "omitted fields stay untouched")
	assert.Equal(t, "new", resp.Team.Description)
}

func TestUpdateTeamDuplicateName(t *testing.T) {
	suite, db, token := setupAPI(t)

	require.NoError(t, db.Create(testutils.NewTeamFactory().WithName("Platform")).Error)
	ops := testutils.NewTeamFactory().WithName("Ops")
	require.NoError(t, db.Create(ops).Error)

	recorder := suite.MakeAuthRequest(http.MethodPut, fmt.Sprintf("/api/teams/%d", ops.ID),
		map[string]interface{}{"name": "Platform"}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "team name already exists")

	// renaming to its own name is not a conflict
	recorder = suite.MakeAuthRequest(http.MethodPut, fmt.Sprintf("/api/teams/%d", ops.ID),
		map[string]interface{}{"name": "Ops"}, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteTeamCascadesMemberships(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	team := testutils.NewTeamFactory().WithName("Platform")
	require.NoError(t, db.Create(team).Error)
	require.NoError(t, db.Create(testutils.NewMemberFactory().Create(team.ID, ids[0])).Error)

	recorder := suite.MakeAuthRequest(http.MethodDelete, fmt.Sprintf("/api/teams/%d", team.ID), nil, token)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var teamCount, memberCount int64
	db.Model(&models.Team{}).Where("id = ?", team.ID).Count(&teamCount)
	db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount)
	assert.Zero(t, teamCount, "the row is gone, not soft-deleted")
	assert.Zero(t, memberCount)

	recorder = suite.MakeAuthRequest(http.MethodDelete, fmt.Sprintf("/api/teams/%d", team.ID), nil, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "team not found")
}

func TestAddTeamMember(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	team := testutils.NewTeamFactory().Create()
	require.NoError(t, db.Create(team).Error)

	recorder := suite.MakeAuthRequest(http.MethodPost, fmt.Sprintf("/api/teams/%d/members", team.ID),
		map[string]interface{}{"employee_id": ids[0], "role": "leader"}, token)

	var resp struct {
		TeamMember models.TeamMember `json:"team_member"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &resp)
	assert.Equal(t, models.RoleTeamLeader, resp.TeamMember.Role)
	require.NotNil(t, resp.TeamMember.Employee)

	// adding the same employee again conflicts
	recorder = suite.MakeAuthRequest(http.MethodPost, fmt.Sprintf("/api/teams/%d/members", team.ID),
		map[string]interface{}{"employee_id": ids[0]}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusConflict, "already a member")
}

func TestAddTeamMemberMissingEmployee(t *testing.T) {
	suite, db, token := setupAPI(t)

	team := testutils.NewTeamFactory().Create()
	require.NoError(t, db.Create(team).Error)

	recorder := suite.MakeAuthRequest(http.MethodPost, fmt.Sprintf("/api/teams/%d/members", team.ID),
		map[string]interface{}{"employee_id": 999}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "employee not found")
}

func TestAddTeamMemberInvalidRole(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	team := testutils.NewTeamFactory().Create()
	require.NoError(t, db.Create(team).Error)

	recorder := suite.MakeAuthRequest(http.MethodPost, fmt.Sprintf("/api/teams/%d/members", team.ID),
		map[string]interface{}{"employee_id": ids[0], "role": "owner"}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid role")
}

func TestRemoveTeamMemberScopedToTeam(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	platform := testutils.NewTeamFactory().WithName("Platform")
	require.NoError(t, db.Create(platform).Error)
	ops := testutils.NewTeamFactory().WithName("Ops")
	require.NoError(t, db.Create(ops).Error)

	member := testutils.NewMemberFactory().Create(platform.ID, ids[0])
	require.NoError(t, db.Create(member).Error)

	// the membership id must belong to the addressed team
	recorder := suite.MakeAuthRequest(http.MethodDelete,
		fmt.Sprintf("/api/teams/%d/members/%d", ops.ID, member.ID), nil, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "team member not found")

	recorder = suite.MakeAuthRequest(http.MethodDelete,
		fmt.Sprintf("/api/teams/%d/members/%d", platform.ID, member.ID), nil, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateTeamMemberRole(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	team := testutils.NewTeamFactory().Create()
	require.NoError(t, db.Create(team).Error)
	member := testutils.NewMemberFactory().Create(team.ID, ids[0])
	require.NoError(t, db.Create(member).Error)

	recorder := suite.MakeAuthRequest(http.MethodPut,
		fmt.Sprintf("/api/teams/%d/members/%d", team.ID, member.ID),
		map[string]interface{}{"role": "leader"}, token)

	var resp struct {
		TeamMember models.TeamMember `json:"team_member"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
	assert.Equal(t, models.RoleTeamLeader, resp.TeamMember.Role)

	recorder = suite.MakeAuthRequest(http.MethodPut,
		fmt.Sprintf("/api/teams/%d/members/%d", team.ID, member.ID),
		map[string]interface{}{"role": "owner"}, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid role")
}

func TestListEmployeeTeams(t *testing.T) {
	suite, db, token := setupAPI(t)
	ids := seedEmployees(t, db, 1)

	platform := models.Team{Name: "Platform", Status: models.StatusActive}
	require.NoError(t, db.Create(&platform).Error)
	ops := models.Team{Name: "Ops", Status: models.StatusActive}
	require.NoError(t, db.Create(&ops).Error)
	retired := models.Team{Name: "Retired", Status: models.StatusInactive}
	require.NoError(t, db.Create(&retired).Error)

	for team, role := range map[uint]string{
		platform.ID: models.RoleTeamLeader,
		ops.ID:      models.RoleTeamMember,
		retired.ID:  models.RoleTeamMember,
	} {
		require.NoError(t, db.Create(&models.TeamMember{
			TeamID:     team,
			EmployeeID: ids[0],
			Role:       role,
		}).Error)
	}

	path := fmt.Sprintf("/api/teams/employee/%d", ids[0])
	recorder := suite.MakeAuthRequest(http.MethodGet, path, nil, token)

	var resp struct {
		EmployeeID uint `json:"employee_id"`
		Teams      []struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"teams"`
	}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
	assert.Equal(t, ids[0], resp.EmployeeID)
	require.Len(t, resp.Teams, 2, "inactive teams stay out of the list")

	roles := map[string]string{}
	for _, team := range resp.Teams {
		roles[team.Name] = team.Role
	}
	assert.Equal(t, models.RoleTeamLeader, roles["Platform"])
	assert.Equal(t, models.RoleTeamMember, roles["Ops"])
}

func TestListEmployeeTeamsVisibility(t *testing.T) {
	suite, db, token, employee := setupEmployeeSession(t)

	other := testutils.NewEmployeeFactory().Create()
	require.NoError(t, db.Create(other).Error)

	path := fmt.Sprintf("/api/teams/employee/%d", employee.ID)
	recorder := suite.MakeAuthRequest(http.MethodGet, path, nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	path = fmt.Sprintf("/api/teams/employee/%d", other.ID)
	recorder = suite.MakeAuthRequest(http.MethodGet, path, nil, token)
	testutils.AssertErrorResponse(t, recorder, http.StatusForbidden, "not authorized")
}
