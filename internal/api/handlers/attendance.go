package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"employee-portal/internal/database/models"
	"employee-portal/internal/logger"
)

// lateGrace is how far past the scheduled start a check-in still counts as
// on time
const lateGrace = 10 * time.Minute

// AttendanceHandler serves the check-in/check-out endpoints for the
// authenticated user's employee record
type AttendanceHandler struct {
	db *gorm.DB

	// now is replaceable so schedule comparisons can be tested at a fixed
	// wall-clock time
	now func() time.Time
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db, now: time.Now}
}

func (h *AttendanceHandler) currentEmployee(c *gin.Context) (*models.Employee, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing credentials"})
		return nil, false
	}

	var employee models.Employee
	if err := h.db.Where("user_id = ?", userID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no employee record for this account"})
			return nil, false
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch employee for user %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return nil, false
	}
	if !employee.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{"message": "employee is inactive"})
		return nil, false
	}
	return &employee, true
}

func (h *AttendanceHandler) todayRecord(employeeID uint, now time.Time) (*models.Attendance, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var record models.Attendance
	err := h.db.Where("employee_id = ? AND check_in >= ?", employeeID, dayStart).
		Order("check_in desc").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// scheduleFor returns the employee's expected window for the weekday of now,
// or nil when no schedule row exists. DayOfWeek counts 0=Monday..6=Sunday.
func (h *AttendanceHandler) scheduleFor(employeeID uint, now time.Time) *models.WorkSchedule {
	day := (int(now.Weekday()) + 6) % 7

	var schedule models.WorkSchedule
	err := h.db.Where("employee_id = ? AND day_of_week = ?", employeeID, day).First(&schedule).Error
	if err != nil {
		return nil
	}
	return &schedule
}

func parseClock(now time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// CheckIn handles POST /attendance/check-in. Arrivals more than ten minutes
// past the scheduled start are recorded as late.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	employee, ok := h.currentEmployee(c)
	if !ok {
		return
	}

	now := h.now()
	existing, err := h.todayRecord(employee.ID, now)
	if err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to look up attendance for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "already checked in today"})
		return
	}

	status := models.AttendancePresent
	if schedule := h.scheduleFor(employee.ID, now); schedule != nil {
		if start, err := parseClock(now, schedule.StartTime); err == nil && now.After(start.Add(lateGrace)) {
			status = models.AttendanceLate
		}
	}

	record := models.Attendance{
		EmployeeID: employee.ID,
		CheckIn:    now,
		Status:     status,
	}
	if err := h.db.Create(&record).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to record check-in for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Checked in successfully",
		"attendance": record,
	})
}

// CheckOut handles POST /attendance/check-out. Departures before the
// scheduled end get an early-leave note on the record.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	employee, ok := h.currentEmployee(c)
	if !ok {
		return
	}

	now := h.now()
	record, err := h.todayRecord(employee.ID, now)
	if err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to look up attendance for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	if record == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "not checked in today"})
		return
	}
	if record.IsCheckedOut() {
		c.JSON(http.StatusConflict, gin.H{"message": "already checked out today"})
		return
	}

	record.CheckOut = &now
	if schedule := h.scheduleFor(employee.ID, now); schedule != nil {
		if end, err := parseClock(now, schedule.EndTime); err == nil && now.Before(end) {
			record.Notes = fmt.Sprintf("left early at %s", now.Format("15:04"))
		}
	}

	if err := h.db.Save(record).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to record check-out for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Checked out successfully",
		"attendance": record,
	})
}

// MyStatus handles GET /attendance/my-status
func (h *AttendanceHandler) MyStatus(c *gin.Context) {
	employee, ok := h.currentEmployee(c)
	if !ok {
		return
	}

	record, err := h.todayRecord(employee.ID, h.now())
	if err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to look up attendance for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	resp := gin.H{
		"checked_in":  record != nil,
		"checked_out": record != nil && record.IsCheckedOut(),
	}
	if record != nil {
		resp["attendance"] = record
	}
	c.JSON(http.StatusOK, resp)
}

// EmployeeAttendance handles GET /attendance/employee/:id with optional
// start_date/end_date (YYYY-MM-DD) filters and page/per_page pagination.
// Admins can read anyone's history; employees only their own.
func (h *AttendanceHandler) EmployeeAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid employee id"})
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch employee %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	if !selfOrAdmin(c, &employee) {
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to view this attendance"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 {
		perPage = 10
	}

	query := h.db.Model(&models.Attendance{}).Where("employee_id = ?", employee.ID)
	if from := c.Query("start_date"); from != "" {
		start, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "start_date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("check_in >= ?", start)
	}
	if to := c.Query("end_date"); to != "" {
		end, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "end_date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("check_in < ?", end.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to count attendance for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var records []models.Attendance
	if err := query.Order("check_in desc").
		Offset((page - 1) * perPage).Limit(perPage).Find(&records).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list attendance for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	c.JSON(http.StatusOK, gin.H{
		"employee_id":        employee.ID,
		"employee_name":      employee.FullName(),
		"attendance_records": records,
		"total":              total,
		"pages":              pages,
		"current_page":       page,
	})
}

// TodayOverview handles GET /attendance/today; admin only. Every active
// employee appears in the list, absentees with status absent.
func (h *AttendanceHandler) TodayOverview(c *gin.Context) {
	now := h.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var records []models.Attendance
	if err := h.db.Where("check_in >= ?", dayStart).Find(&records).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list today's attendance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var employees []models.Employee
	if err := h.db.Where("status = ?", models.StatusActive).
		Order("last_name asc, first_name asc").Find(&employees).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list active employees: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	byEmployee := make(map[uint]*models.Attendance, len(records))
	for i := range records {
		byEmployee[records[i].EmployeeID] = &records[i]
	}

	overview := make([]gin.H, 0, len(employees))
	for i := range employees {
		employee := &employees[i]
		entry := gin.H{
			"employee_id":   employee.ID,
			"employee_name": employee.FullName(),
			"department":    employee.Department,
			"position":      employee.Position,
			"present":       false,
			"status":        "absent",
		}
		if record := byEmployee[employee.ID]; record != nil {
			entry["present"] = true
			entry["status"] = record.Status
			entry["check_in"] = record.CheckIn
			entry["check_out"] = record.CheckOut
		}
		overview = append(overview, entry)
	}

	present := 0
	for i := range employees {
		if byEmployee[employees[i].ID] != nil {
			present++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            now.Format("2006-01-02"),
		"total_employees": len(employees),
		"present":         present,
		"absent":          len(employees) - present,
		"attendance":      overview,
	})
}

type updateAttendanceRequest struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   *string    `json:"status"`
	Notes    *string    `json:"notes"`
}

// UpdateAttendance handles PUT /attendance/:id with a partial update; admin
// only. Used to correct forgotten check-outs and wrong statuses.
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid attendance id"})
		return
	}

	var record models.Attendance
	if err := h.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "attendance record not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch attendance %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var req updateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Status != nil {
		if *req.Status != models.AttendancePresent && *req.Status != models.AttendanceLate {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status: " + *req.Status})
			return
		}
		record.Status = *req.Status
	}
	if req.CheckIn != nil {
		record.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		record.CheckOut = req.CheckOut
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := h.db.Save(&record).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to update attendance %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance updated successfully",
		"attendance": record,
	})
}
