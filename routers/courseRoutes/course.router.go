package courseRoutes

import (
	controllers "edusetu/controllers/course"
	"edusetu/middleware"
	"edusetu/models"
	validators "edusetu/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, enrollment, attendance and feedback routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole(), controllers.GetAllCourses)
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:id/approve", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNodalOfficer), validators.CourseID(), controllers.ApproveCourse)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CourseID(), controllers.EnrollInCourse)

	courseGroup.Post("/attendance", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleNodalOfficer), validators.MarkAttendance(), controllers.MarkAttendance)
	courseGroup.Post("/feedback", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.SubmitFeedback(), controllers.SubmitFeedback)
}
