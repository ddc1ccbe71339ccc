package lessonController

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

func lessonResponse(lesson *models.Lesson) fiber.Map {
	return fiber.Map{
		"id":        lesson.ID,
		"title":     lesson.Title,
		"position":  lesson.Position,
		"createdAt": lesson.CreatedAt,
		"updatedAt": lesson.UpdatedAt,
	}
}

// resolveLesson loads the live lesson and enforces that it belongs to the
// course named in the route; a mismatch reads as NotFound before any
// mutation happens.
func resolveLesson(c *fiber.Ctx) (*models.Lesson, error) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}
	id, ok := parseID(c, "id")
	if !ok {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lesson id!", "VALIDATION_ERROR")
	}

	repo := repository.NewLessonRepository(database.Database.Db)

	lesson, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, middleware.ErrorResponse(c, fiber.StatusNotFound, "Lesson not found!", "NOT_FOUND")
		}
		return nil, middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lesson!", "INTERNAL")
	}
	if lesson.CourseID != courseID {
		return nil, middleware.ErrorResponse(c, fiber.StatusNotFound, "Lesson not found!", "NOT_FOUND")
	}

	return lesson, nil
}

func GetLessons(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	courseID, ok := parseID(c, "courseId")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	courseRepo := repository.NewCourseRepository(database.Database.Db)
	lessonRepo := repository.NewLessonRepository(database.Database.Db)

	if _, err := courseRepo.GetByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	lessons, err := lessonRepo.GetByCourse(courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch lessons!", "INTERNAL")
	}

	list := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		list = append(list, lessonResponse(&lessons[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", list)
}

// CreateLesson appends the lesson at the end of the course's ordering.
func CreateLesson(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	courseID, ok := parseID(c, "courseId")
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", "VALIDATION_ERROR")
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title string `json:"title"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", "VALIDATION_ERROR")
	}

	courseRepo := repository.NewCourseRepository(database.Database.Db)
	lessonRepo := repository.NewLessonRepository(database.Database.Db)

	if _, err := courseRepo.GetByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch course!", "INTERNAL")
	}

	position, err := lessonRepo.NextPosition(courseID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lesson!", "INTERNAL")
	}

	lesson := models.Lesson{
		CourseID: courseID,
		Title:    reqData.Title,
		Position: position,
	}

	if err := lessonRepo.Create(&lesson); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create lesson!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lessonResponse(&lesson))
}

func UpdateLesson(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title string `json:"title"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", "VALIDATION_ERROR")
	}

	lesson, errResp := resolveLesson(c)
	if lesson == nil {
		return errResp
	}

	repo := repository.NewLessonRepository(database.Database.Db)

	lesson.Title = reqData.Title
	if err := repo.Update(lesson); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lesson!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lessonResponse(lesson))
}

func DeleteLesson(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	lesson, errResp := resolveLesson(c)
	if lesson == nil {
		return errResp
	}

	repo := repository.NewLessonRepository(database.Database.Db)

	if err := repo.SoftDelete(lesson.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Lesson not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete lesson!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// MoveLessonUp swaps the lesson with its predecessor; the first lesson
// stays put and the call still succeeds.
func MoveLessonUp(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	lesson, errResp := resolveLesson(c)
	if lesson == nil {
		return errResp
	}

	repo := repository.NewLessonRepository(database.Database.Db)

	if err := repo.MoveUp(lesson.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Lesson not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to move lesson!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson moved up successfully!", nil)
}

// MoveLessonDown is the symmetric swap with the successor.
func MoveLessonDown(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!", "UNAUTHORIZED")
	}

	lesson, errResp := resolveLesson(c)
	if lesson == nil {
		return errResp
	}

	repo := repository.NewLessonRepository(database.Database.Db)

	if err := repo.MoveDown(lesson.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Lesson not found!", "NOT_FOUND")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to move lesson!", "INTERNAL")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson moved down successfully!", nil)
}
