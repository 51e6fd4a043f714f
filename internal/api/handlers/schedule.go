package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"employee-portal/internal/database/models"
	"employee-portal/internal/logger"
)

// ScheduleHandler manages the per-weekday working windows that drive
// late-arrival and early-departure marking
type ScheduleHandler struct {
	db *gorm.DB
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// selfOrAdmin reports whether the authenticated account may read data scoped
// to the given employee: admins always, employees only their own record
func selfOrAdmin(c *gin.Context, employee *models.Employee) bool {
	if role, _ := c.Get("role"); role == models.RoleAdmin {
		return true
	}
	userID, _ := c.Get("user_id")
	id, ok := userID.(uint)
	return ok && employee.UserID == id
}

func (h *ScheduleHandler) findEmployee(c *gin.Context) (*models.Employee, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid employee id"})
		return nil, false
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return nil, false
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch employee %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return nil, false
	}
	return &employee, true
}

// ListEmployeeSchedules handles GET /employees/:id/schedules. Admins can
// read anyone's schedule; employees only their own.
func (h *ScheduleHandler) ListEmployeeSchedules(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}
	if !selfOrAdmin(c, employee) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to view this schedule"})
		return
	}

	var schedules []models.WorkSchedule
	if err := h.db.Where("employee_id = ?", employee.ID).
		Order("day_of_week asc").Find(&schedules).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list schedules for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id":   employee.ID,
		"employee_name": employee.FullName(),
		"schedules":     schedules,
	})
}

type addScheduleRequest struct {
	DayOfWeek *int   `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AddEmployeeSchedule handles POST /employees/:id/schedules; admin only
func (h *ScheduleHandler) AddEmployeeSchedule(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	var req addScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.DayOfWeek == nil || req.StartTime == "" || req.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "day_of_week, start_time and end_time are required"})
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "day_of_week must be between 0 and 6"})
		return
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "start_time must be HH:MM"})
		return
	}
	if _, err := time.Parse("15:04", req.EndTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "end_time must be HH:MM"})
		return
	}

	schedule := models.WorkSchedule{
		EmployeeID: employee.ID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := h.db.Create(&schedule).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to create schedule for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule added successfully",
		"schedule": schedule,
	})
}

// DeleteEmployeeSchedule handles DELETE /employees/:id/schedules/:scheduleId;
// admin only. The schedule must belong to the addressed employee.
func (h *ScheduleHandler) DeleteEmployeeSchedule(c *gin.Context) {
	employee, ok := h.findEmployee(c)
	if !ok {
		return
	}

	scheduleID, err := strconv.Atoi(c.Param("scheduleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid schedule id"})
		return
	}

	var schedule models.WorkSchedule
	if err := h.db.Where("id = ? AND employee_id = ?", scheduleID, employee.ID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "schedule not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch schedule %d: %v", scheduleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	if err := h.db.Delete(&schedule).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to delete schedule %d: %v", scheduleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
