package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"employee-portal/internal/auth"
	"employee-portal/internal/database/models"
	apperrors "employee-portal/internal/errors"
	"employee-portal/internal/testutils"
)

func setupService(t *testing.T) (*auth.AuthService, *gorm.DB) {
	t.Helper()
	db := testutils.SetupTestDB(t)
	return auth.NewAuthService(db, testutils.TestConfig()), db
}

func TestLogin(t *testing.T) {
	service, db := setupService(t)

	user := testutils.NewUserFactory().Create("correct-horse")
	require.NoError(t, db.Create(user).Error)

	token, loggedIn, err := service.Login(user.Username, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := service.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	service, db := setupService(t)

	user := testutils.NewUserFactory().Create("correct-horse")
	require.NoError(t, db.Create(user).Error)

	_, _, err := service.Login(user.Username, "battery-staple")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	service, _ := setupService(t)

	_, _, err := service.Login("nobody", "whatever")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestRegisterCreatesUserAndEmployee(t *testing.T) {
	service, db := setupService(t)

	user, err := service.Register(&auth.RegisterRequest{
		Username:  "dana",
		Password:  "secret-pass",
		Role:      models.RoleEmployee,
		FirstName: "Dana",
		LastName:  "Levi",
		Email:     "dana@test.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.CheckPassword("secret-pass"))

	var employee models.Employee
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&employee).Error)
	assert.Equal(t, "dana@test.com", employee.Email)
	assert.Equal(t, models.StatusActive, employee.Status)
	assert.NotEmpty(t, employee.HireDate, "hire date defaults to today")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, db := setupService(t)

	existing := testutils.NewUserFactory().Create("password")
	require.NoError(t, db.Create(existing).Error)

	_, err := service.Register(&auth.RegisterRequest{
		Username:  existing.Username,
		Password:  "secret-pass",
		Role:      models.RoleEmployee,
		FirstName: "Dana",
		LastName:  "Levi",
		Email:     "unique@test.com",
	})
	assert.True(t, errors.Is(err, apperrors.ErrUserExists))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, db := setupService(t)

	employee := testutils.NewEmployeeFactory().Create()
	require.NoError(t, db.Create(employee).Error)

	_, err := service.Register(&auth.RegisterRequest{
		Username:  "fresh-user",
		Password:  "secret-pass",
		Role:      models.RoleEmployee,
		FirstName: "Dana",
		LastName:  "Levi",
		Email:     employee.Email,
	})
	assert.True(t, errors.Is(err, apperrors.ErrEmployeeExists))
}

func TestValidateJWTRejectsForeignSecret(t *testing.T) {
	service, _ := setupService(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.AuthClaims{UserID: 1})
	signed, err := foreign.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = service.ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	fixture := testutils.StartServer(t)

	for _, tc := range []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"valid token", "Bearer " + fixture.AdminToken, http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, fixture.Server.URL+"/api/auth/profile", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
