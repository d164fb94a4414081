package routes

import (
	"classroom-dashboard/backend/config"
	"classroom-dashboard/backend/controllers"
	"classroom-dashboard/backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, service controllers.DashboardService, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	adminMiddleware := middleware.AdminMiddleware(cfg.AdminRoles)

	// Classroom dashboard routes
	dashboardController := controllers.NewDashboardController(service)
	classrooms := app.Group("/api/classrooms/:classroomId", authMiddleware, adminMiddleware)
	classrooms.Get("/dashboard", dashboardController.GetDashboard)
	classrooms.Get("/dashboard/attendance", dashboardController.GetWeeklyAttendance)
	classrooms.Get("/dashboard/pendencies", dashboardController.GetWeeklyPendencies)
	classrooms.Get("/dashboard/active-project", dashboardController.GetActiveProject)
	classrooms.Get("/dashboard/absences", dashboardController.GetConsecutiveAbsences)
	classrooms.Get("/dashboard/pending-students", dashboardController.GetConsecutivePendencies)

	// Per-student views
	classrooms.Get("/students/:studentId/presence", dashboardController.GetStudentPresence)
}
