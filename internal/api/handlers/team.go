package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"employee-portal/internal/database/models"
	"employee-portal/internal/logger"
)

// TeamHandler serves the team and team membership endpoints
type TeamHandler struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{
		db:       db,
		validate: validator.New(),
	}
}

// ListTeams handles GET /teams/
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var teams []models.Team
	query := h.db.Order("name asc")

	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&teams).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list teams: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"total": len(teams),
	})
}

// GetTeam handles GET /teams/:id and returns the team with its member list
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}

	var team models.Team
	if err := h.db.Preload("Members.Employee").First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

type createTeamRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Description string              `json:"description" validate:"max=500"`
	Department  string              `json:"department" validate:"max=50"`
	Members     []memberItemRequest `json:"members"`
}

type memberItemRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Role       string `json:"role"`
}

// CreateTeam handles POST /teams/. The team and its initial memberships are
// created in one transaction; duplicate employee ids in the request keep the
// first occurrence and ids with no matching employee are skipped.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "team name is required"})
		return
	}
	for _, m := range req.Members {
		if m.Role != "" && !models.ValidRole(m.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid role: " + m.Role})
			return
		}
	}

	var count int64
	h.db.Model(&models.Team{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "team name already exists"})
		return
	}

	team := models.Team{
		Name:        req.Name,
		Description: req.Description,
		Department:  req.Department,
		Status:      "active",
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(req.Members))
		for _, m := range req.Members {
			if seen[m.EmployeeID] {
				continue
			}
			seen[m.EmployeeID] = true

			var employee models.Employee
			if err := tx.First(&employee, m.EmployeeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			role := m.Role
			if role == "" {
				role = models.RoleTeamMember
			}
			member := models.TeamMember{
				TeamID:     team.ID,
				EmployeeID: m.EmployeeID,
				Role:       role,
				JoinedAt:   time.Now(),
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to create team: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	logger.WithContext(c.Request.Context()).WithField("team_id", team.ID).Info("team created")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    team,
	})
}

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Department  *string `json:"department"`
}

// UpdateTeam handles PUT /teams/:id with a partial update; only fields
// present in the body change
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}

	var team models.Team
	if err := h.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "team name is required"})
			return
		}
		if *req.Name != team.Name {
			var count int64
			h.db.Model(&models.Team{}).Where("name = ? AND id != ?", *req.Name, team.ID).Count(&count)
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"message": "team name already exists"})
				return
			}
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Department != nil {
		team.Department = *req.Department
	}

	if err := h.db.Save(&team).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to update team %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team updated successfully",
		"team":    team,
	})
}

// DeleteTeam handles DELETE /teams/:id. The team and its memberships are
// removed for good; a deleted id never reappears in the team list.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}

	var team models.Team
	if err := h.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to delete team %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	logger.WithContext(c.Request.Context()).WithField("team_id", team.ID).Info("team deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// AddTeamMember handles POST /teams/:id/members
func (h *TeamHandler) AddTeamMember(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}

	var req memberItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "employee_id is required"})
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleTeamMember
	}
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid role: " + role})
		return
	}

	var team models.Team
	if err := h.db.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team %d: %v", teamID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var employee models.Employee
	if err := h.db.First(&employee, req.EmployeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch employee %d: %v", req.EmployeeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var count int64
	h.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND employee_id = ?", team.ID, employee.ID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "employee is already a member of this team"})
		return
	}

	member := models.TeamMember{
		TeamID:     team.ID,
		EmployeeID: employee.ID,
		Role:       role,
		JoinedAt:   time.Now(),
	}
	if err := h.db.Create(&member).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to add member to team %d: %v", teamID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}
	member.Employee = &employee

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Team member added successfully",
		"team_member": member,
	})
}

// RemoveTeamMember handles DELETE /teams/:id/members/:memberId
func (h *TeamHandler) RemoveTeamMember(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}
	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid member id"})
		return
	}

	var member models.TeamMember
	if err := h.db.Where("id = ? AND team_id = ?", memberID, teamID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team member not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	if err := h.db.Delete(&member).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to remove team member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateTeamMemberRole handles PUT /teams/:id/members/:memberId
func (h *TeamHandler) UpdateTeamMemberRole(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid team id"})
		return
	}
	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid member id"})
		return
	}

	var req updateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid role: " + req.Role})
		return
	}

	var member models.TeamMember
	if err := h.db.Preload("Employee").
		Where("id = ? AND team_id = ?", memberID, teamID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "team member not found"})
			return
		}
		logger.WithContext(c.Request.Context()).Errorf("failed to fetch team member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	member.Role = req.Role
	if err := h.db.Save(&member).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to update team member %d: %v", memberID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Team member updated successfully",
		"team_member": member,
	})
}

// ListEmployeeTeams handles GET /teams/employee/:id: the active teams the
// employee belongs to, each with the membership role attached. Admins can
// read anyone's teams; employees only their own.
func (h *TeamHandler) ListEmployeeTeams(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"message": "not authorized to view these teams"})
		return
	}

	var memberships []models.TeamMember
	if err := h.db.Where("employee_id = ?", employee.ID).Find(&memberships).Error; err != nil {
		logger.WithContext(c.Request.Context()).Errorf("failed to list memberships for employee %d: %v", employee.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	type employeeTeam struct {
		models.Team
		Role string `json:"role"`
	}

	teams := make([]employeeTeam, 0, len(memberships))
	for _, membership := range memberships {
		var team models.Team
		if err := h.db.First(&team, membership.TeamID).Error; err != nil {
			continue
		}
		if team.Status != models.StatusActive {
			continue
		}
		teams = append(teams, employeeTeam{Team: team, Role: membership.Role})
	}

	c.JSON(http.StatusOK, gin.H{
		"employee_id":   employee.ID,
		"employee_name": employee.FullName(),
		"teams":         teams,
	})
}
