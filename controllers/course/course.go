package courseController

import (
	"cursos/database"
	"cursos/middleware"
	"cursos/models"
	"cursos/repository"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func courseListItem(course models.Course) fiber.Map {
	return fiber.Map{
		"id":     course.ID,
		"title":  course.Title,
		"status": course.Status,
	}
}

func courseDetail(course *models.Course) fiber.Map {
	return fiber.Map{
		"id":        course.ID,
		"title":     course.Title,
		"status":    course.Status,
		"createdAt": course.CreatedAt,
		"updatedAt": course.UpdatedAt,
	}
}

func GetAllCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	courses, err := repo.GetAll()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", "INTERNAL")
	}

	list := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		list = append(list, courseListItem(course))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", list)
}

func GetPublishedCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	courses, err := repo.GetPublished()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", "INTERNAL")
	}

	list := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		list = append(list, courseListItem(course))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Published courses fetched successfully!", list)
}

func SearchCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	reqData, ok := c.Locals("validatedSearch").(*struct {
		Query    string
		Status   *models.CourseStatus
		Page     int
		PageSize int
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	courses, total, err := repo.Search(reqData.Query, reqData.Status, reqData.Page, reqData.PageSize)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search courses!", "INTERNAL")
	}

	list := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		list = append(list, courseListItem(course))
	}

	return middleware.PagedResponse(c, "Search results", list, reqData.Page, reqData.PageSize, total)
}

func GetCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	course, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course detail", courseDetail(course))
}

// GetCourseSummary reports the live lesson count and the most recent
// modification across the course row and its live lessons.
func GetCourseSummary(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	courseRepo := repository.NewCourseRepository(database.Database.Db)
	lessonRepo := repository.NewLessonRepository(database.Database.Db)

	course, err := courseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	lessons, err := lessonRepo.GetByCourse(id)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lessons!", "INTERNAL")
	}

	lastModified := course.UpdatedAt
	for _, lesson := range lessons {
		if lesson.UpdatedAt.After(lastModified) {
			lastModified = lesson.UpdatedAt
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course summary", fiber.Map{
		"id":             course.ID,
		"title":          course.Title,
		"status":         course.Status,
		"totalLessons":   len(lessons),
		"lastModifiedAt": lastModified,
	})
}

func CreateCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title string `json:"title"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	// New courses always start as drafts
	course := models.Course{
		Title:  reqData.Title,
		Status: models.CourseStatusDraft,
	}

	if err := repo.Create(&course); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", courseDetail(&course))
}

func UpdateCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	course, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	course.Title = reqData.Title

	// Unknown status strings keep the previous status
	if status, ok := models.ParseCourseStatus(reqData.Status); ok {
		course.Status = status
	}

	if err := repo.Update(course); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", courseDetail(course))
}

func DeleteCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	if err := repo.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// PublishCourse allows the Draft -> Published transition only while the
// course owns at least one live lesson.
func PublishCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	courseRepo := repository.NewCourseRepository(database.Database.Db)
	lessonRepo := repository.NewLessonRepository(database.Database.Db)

	course, err := courseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	lessons, err := lessonRepo.GetByCourse(id)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lessons!", "INTERNAL")
	}
	if len(lessons) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "A course can only be published with at least one active lesson!", "BUSINESS_RULE")
	}

	course.Status = models.CourseStatusPublished
	if err := courseRepo.Update(course); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to publish course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", nil)
}

func UnpublishCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	repo := repository.NewCourseRepository(database.Database.Db)

	course, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	course.Status = models.CourseStatusDraft
	if err := repo.Update(course); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to unpublish course!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unpublished successfully!", nil)
}
