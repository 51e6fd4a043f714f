package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"employee-portal/internal/database"
	"employee-portal/internal/database/models"
)

// wednesdayMorning is a fixed wall-clock instant; its weekday maps to
// schedule day 2
var wednesdayMorning = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.Local)

// setupClockedAttendance wires the attendance and schedule handlers onto a
// bare router with a frozen clock. Moving *clock moves the handler's notion
// of now.
func setupClockedAttendance(t *testing.T, at time.Time) (*gin.Engine, *gorm.DB, *models.Employee, *time.Time) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitializeInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	user := &models.User{Username: "clock-user", Role: models.RoleEmployee}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, db.Create(user).Error)

	employee := &models.Employee{
		UserID:    user.ID,
		FirstName: "Noa",
		LastName:  "Bar",
		Email:     "noa.bar@test.com",
		Status:    models.StatusActive,
	}
	require.NoError(t, db.Create(employee).Error)

	clock := at
	attendance := NewAttendanceHandler(db)
	attendance.now = func() time.Time { return clock }
	schedules := NewScheduleHandler(db)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
	})
	router.POST("/check-in", attendance.CheckIn)
	router.POST("/check-out", attendance.CheckOut)
	router.POST("/employees/:id/schedules", schedules.AddEmployeeSchedule)

	return router, db, employee, &clock
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func addSchedule(t *testing.T, router *gin.Engine, employee *models.Employee, day int, start, end string) {
	t.Helper()

	recorder := postJSON(t, router, fmt.Sprintf("/employees/%d/schedules", employee.ID), map[string]interface{}{
		"day_of_week": day,
		"start_time":  start,
		"end_time":    end,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func decodeAttendance(t *testing.T, recorder *httptest.ResponseRecorder) models.Attendance {
	t.Helper()

	var resp struct {
		Attendance models.Attendance `json:"attendance"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp.Attendance
}

func TestCheckInPastScheduledStartIsLate(t *testing.T) {
	router, _, employee, _ := setupClockedAttendance(t, wednesdayMorning)
	addSchedule(t, router, employee, 2, "09:00", "17:30")

	recorder := postJSON(t, router, "/check-in", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, models.AttendanceLate, decodeAttendance(t, recorder).Status)
}

func TestCheckInWithinGraceIsPresent(t *testing.T) {
	router, _, employee, clock := setupClockedAttendance(t, wednesdayMorning)
	addSchedule(t, router, employee, 2, "09:00", "17:30")

	*clock = time.Date(2026, time.March, 4, 9, 5, 0, 0, time.Local)
	recorder := postJSON(t, router, "/check-in", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, models.AttendancePresent, decodeAttendance(t, recorder).Status)
}

func TestCheckInWithoutScheduleIsPresent(t *testing.T) {
	router, _, _, _ := setupClockedAttendance(t, wednesdayMorning)

	recorder := postJSON(t, router, "/check-in", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, models.AttendancePresent, decodeAttendance(t, recorder).Status)
}

func TestCheckOutBeforeScheduledEndGetsNote(t *testing.T) {
	router, _, employee, clock := setupClockedAttendance(t, wednesdayMorning)
	addSchedule(t, router, employee, 2, "09:00", "17:30")

	recorder := postJSON(t, router, "/check-in", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	*clock = time.Date(2026, time.March, 4, 16, 0, 0, 0, time.Local)
	recorder = postJSON(t, router, "/check-out", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "left early at 16:00", decodeAttendance(t, recorder).Notes)
}

func TestCheckOutAfterScheduledEndHasNoNote(t *testing.T) {
	router, _, employee, clock := setupClockedAttendance(t, wednesdayMorning)
	addSchedule(t, router, employee, 2, "09:00", "17:30")

	recorder := postJSON(t, router, "/check-in", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	*clock = time.Date(2026, time.March, 4, 17, 45, 0, 0, time.Local)
	recorder = postJSON(t, router, "/check-out", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeAttendance(t, recorder).Notes)
}
