package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"employee-portal/internal/api/handlers"
	"employee-portal/internal/api/middleware"
	"employee-portal/internal/auth"
	"employee-portal/internal/config"
)

// Setup builds the gin engine with all middleware and routes wired
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	authService := auth.NewAuthService(db, cfg)
	authMiddleware := auth.NewAuthMiddleware(authService)

	authHandler := auth.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	attendanceHandler := handlers.NewAttendanceHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register",
				authMiddleware.RequireAuth(), authMiddleware.RequireAdmin(), authHandler.Register)
			authRoutes.GET("/profile", authMiddleware.RequireAuth(), authHandler.Profile)
		}

		teams := api.Group("/teams", authMiddleware.RequireAuth())
		{
			teams.GET("/", teamHandler.ListTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.POST("/", authMiddleware.RequireAdmin(), teamHandler.CreateTeam)
			teams.PUT("/:id", authMiddleware.RequireAdmin(), teamHandler.UpdateTeam)
			teams.DELETE("/:id", authMiddleware.RequireAdmin(), teamHandler.DeleteTeam)

			teams.GET("/employee/:id", teamHandler.ListEmployeeTeams)

			teams.POST("/:id/members", authMiddleware.RequireAdmin(), teamHandler.AddTeamMember)
			teams.PUT("/:id/members/:memberId", authMiddleware.RequireAdmin(), teamHandler.UpdateTeamMemberRole)
			teams.DELETE("/:id/members/:memberId", authMiddleware.RequireAdmin(), teamHandler.RemoveTeamMember)
		}

		employees := api.Group("/employees", authMiddleware.RequireAuth())
		{
			employees.GET("/", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", authMiddleware.RequireAdmin(), employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", authMiddleware.RequireAdmin(), employeeHandler.DeleteEmployee)

			employees.GET("/:id/schedules", scheduleHandler.ListEmployeeSchedules)
			employees.POST("/:id/schedules", authMiddleware.RequireAdmin(), scheduleHandler.AddEmployeeSchedule)
			employees.DELETE("/:id/schedules/:scheduleId", authMiddleware.RequireAdmin(), scheduleHandler.DeleteEmployeeSchedule)
		}

		attendance := api.Group("/attendance", authMiddleware.RequireAuth())
		{
			attendance.POST("/check-in", attendanceHandler.CheckIn)
			attendance.POST("/check-out", attendanceHandler.CheckOut)
			attendance.GET("/my-status", attendanceHandler.MyStatus)
			attendance.GET("/employee/:id", attendanceHandler.EmployeeAttendance)
			attendance.GET("/today", authMiddleware.RequireAdmin(), attendanceHandler.TodayOverview)
			attendance.PUT("/:id", authMiddleware.RequireAdmin(), attendanceHandler.UpdateAttendance)
		}
	}

	return router
}
