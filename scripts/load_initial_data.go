package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"employee-portal/internal/config"
	"employee-portal/internal/database"
	"employee-portal/internal/database/models"
)

// Simple structures that directly match the YAML seed files
type UserData struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type EmployeeData struct {
	Username   string         `yaml:"username"`
	FirstName  string         `yaml:"first_name"`
	LastName   string         `yaml:"last_name"`
	Email      string         `yaml:"email"`
	Phone      string         `yaml:"phone,omitempty"`
	Department string         `yaml:"department,omitempty"`
	Position   string         `yaml:"position,omitempty"`
	HireDate   string         `yaml:"hire_date,omitempty"`
	Schedules  []ScheduleData `yaml:"schedules,omitempty"`
}

type ScheduleData struct {
	DayOfWeek int    `yaml:"day_of_week"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

type TeamData struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Department  string           `yaml:"department,omitempty"`
	Members     []TeamMemberData `yaml:"members,omitempty"`
}

type TeamMemberData struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role,omitempty"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type EmployeesFile struct {
	Employees []EmployeeData `yaml:"employees"`
}

type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(cfg, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	dataDir := "scripts/data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	if err := loadDataFromYAMLFiles(db, dataDir); err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry waits out a dockerized Postgres still starting up
func connectWithRetry(cfg *config.Config, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel:    gormlogger.Silent,
		AutoMigrate: true,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(cfg, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var usersFile UsersFile
	if err := readYAML(filepath.Join(dataDir, "users.yaml"), &usersFile); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	var employeesFile EmployeesFile
	if err := readYAML(filepath.Join(dataDir, "employees.yaml"), &employeesFile); err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	var teamsFile TeamsFile
	if err := readYAML(filepath.Join(dataDir, "teams.yaml"), &teamsFile); err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	// Create users first; employees reference them by username
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range usersFile.Users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Username, err)
		}
		userMap[userData.Username] = user
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(usersFile.Users))

	// Create employees; teams reference them by email
	employeeMap := make(map[string]*models.Employee)
	employeeCreated := 0
	scheduleCreated := 0
	for _, employeeData := range employeesFile.Employees {
		employee, created, err := createEmployee(db, employeeData, userMap)
		if err != nil {
			return fmt.Errorf("failed to create employee %s: %w", employeeData.Email, err)
		}
		employeeMap[employeeData.Email] = employee
		if created {
			employeeCreated++
		}

		n, err := createSchedules(db, employee, employeeData.Schedules)
		if err != nil {
			return fmt.Errorf("failed to create schedules for %s: %w", employeeData.Email, err)
		}
		scheduleCreated += n
	}
	log.Printf("Employees: %d created, %d total", employeeCreated, len(employeesFile.Employees))
	log.Printf("Schedules: %d created", scheduleCreated)

	teamCreated := 0
	for _, teamData := range teamsFile.Teams {
		created, err := createTeam(db, teamData, employeeMap)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		if created {
			teamCreated++
		}
	}
	log.Printf("Teams: %d created, %d total", teamCreated, len(teamsFile.Teams))

	return nil
}

func readYAML(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Skipping %s: file not found", path)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, target)
}

func createUser(db *gorm.DB, data UserData) (*models.User, bool, error) {
	var existing models.User
	err := db.Where("username = ?", data.Username).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := &models.User{
		Username: data.Username,
		Role:     data.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	if err := user.SetPassword(data.Password); err != nil {
		return nil, false, err
	}
	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func createEmployee(db *gorm.DB, data EmployeeData, userMap map[string]*models.User) (*models.Employee, bool, error) {
	var existing models.Employee
	err := db.Where("email = ?", data.Email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user, ok := userMap[data.Username]
	if !ok {
		return nil, false, fmt.Errorf("unknown user %q", data.Username)
	}

	hireDate := data.HireDate
	if hireDate == "" {
		hireDate = time.Now().Format("2006-01-02")
	}

	employee := &models.Employee{
		UserID:     user.ID,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Email:      data.Email,
		Phone:      data.Phone,
		Department: data.Department,
		Position:   data.Position,
		HireDate:   hireDate,
		Status:     models.StatusActive,
	}
	if err := db.Create(employee).Error; err != nil {
		return nil, false, err
	}
	return employee, true, nil
}

// createSchedules is idempotent per employee and weekday: an existing row
// for the day is left untouched
func createSchedules(db *gorm.DB, employee *models.Employee, schedules []ScheduleData) (int, error) {
	created := 0
	for _, data := range schedules {
		if data.DayOfWeek < 0 || data.DayOfWeek > 6 {
			log.Printf("Skipping schedule for %s: invalid day %d", employee.Email, data.DayOfWeek)
			continue
		}

		var existing models.WorkSchedule
		err := db.Where("employee_id = ? AND day_of_week = ?", employee.ID, data.DayOfWeek).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		schedule := &models.WorkSchedule{
			EmployeeID: employee.ID,
			DayOfWeek:  data.DayOfWeek,
			StartTime:  data.StartTime,
			EndTime:    data.EndTime,
		}
		if err := db.Create(schedule).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func createTeam(db *gorm.DB, data TeamData, employeeMap map[string]*models.Employee) (bool, error) {
	var existing models.Team
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	team := &models.Team{
		Name:        data.Name,
		Description: data.Description,
		Department:  data.Department,
		Status:      "active",
	}

	return true, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		for _, memberData := range data.Members {
			employee, ok := employeeMap[memberData.Email]
			if !ok {
				log.Printf("Warning: team %s references unknown employee %s, skipping", data.Name, memberData.Email)
				continue
			}
			role := memberData.Role
			if !models.ValidRole(role) {
				role = models.RoleTeamMember
			}
			member := &models.TeamMember{
				TeamID:     team.ID,
				EmployeeID: employee.ID,
				Role:       role,
				JoinedAt:   time.Now(),
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
