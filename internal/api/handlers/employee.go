package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"employee-portal/internal/database/models"
	"employee-portal/internal/logger"
)

// EmployeeHandler serves the employee directory endpoints
type EmployeeHandler struct {
	db *gorm.DB
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// ListEmployees handles GET /employees/
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var employees []models.Employee
	query := h.db.Order("last_name asc, first_name asc")

	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&employees).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list employees: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": employees,
		"total":     len(employees),
	})
}

// GetEmployee handles GET /employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

type updateEmployeeRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

// UpdateEmployee handles PUT /employees/:id with a partial update
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
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

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Email != nil && *req.Email != employee.Email {
		var count int64
		h.db.Model(&models.Employee{}).Where("email = ? AND id != ?", *req.Email, employee.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "email already exists"})
			return
		}
		employee.Email = *req.Email
	}
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}

	if err := h.db.Save(&employee).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to update employee %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Employee updated successfully",
		"employee": employee,
	})
}

// DeleteEmployee handles DELETE /employees/:id. The record is kept and its
// status flips to inactive so attendance history survives.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
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

	employee.Status = models.StatusInactive
	if err := h.db.Save(&employee).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to deactivate employee %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	logger.WithContext(c.Request.Context()).WithField("employee_id", employee.ID).Info("employee deactivated")
	c.JSON(http.StatusOK, gin.H{"message": "Employee deactivated successfully"})
}
