package courseRoutes

import (
	courseControllers "cursos/controllers/course"
	lessonControllers "cursos/controllers/lesson"
	"cursos/middleware"
	courseValidators "cursos/validators/course"
	lessonValidators "cursos/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the course and nested lesson endpoints. Static
// paths (search, published) are registered before the :id routes.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	courseGroup.Get("/", middleware.JWTMiddleware, courseControllers.GetAllCourses)
	courseGroup.Get("/published", middleware.JWTMiddleware, courseControllers.GetPublishedCourses)
	courseGroup.Get("/search", middleware.JWTMiddleware, courseValidators.SearchCourses(), courseControllers.SearchCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetCourse)
	courseGroup.Get("/:id/summary", middleware.JWTMiddleware, courseControllers.GetCourseSummary)
	courseGroup.Post("/", middleware.JWTMiddleware, courseValidators.CreateCourse(), courseControllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, courseValidators.UpdateCourse(), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteCourse)
	courseGroup.Patch("/:id/publish", middleware.JWTMiddleware, courseControllers.PublishCourse)
	courseGroup.Patch("/:id/unpublish", middleware.JWTMiddleware, courseControllers.UnpublishCourse)

	lessonGroup := app.Group("/api/courses/:courseId/lessons")

	lessonGroup.Get("/", middleware.JWTMiddleware, lessonControllers.GetLessons)
	lessonGroup.Post("/", middleware.JWTMiddleware, lessonValidators.LessonBody(), lessonControllers.CreateLesson)
	lessonGroup.Put("/:id", middleware.JWTMiddleware, lessonValidators.LessonBody(), lessonControllers.UpdateLesson)
	lessonGroup.Delete("/:id", middleware.JWTMiddleware, lessonControllers.DeleteLesson)
	lessonGroup.Patch("/:id/move-up", middleware.JWTMiddleware, lessonControllers.MoveLessonUp)
	lessonGroup.Patch("/:id/move-down", middleware.JWTMiddleware, lessonControllers.MoveLessonDown)
}
