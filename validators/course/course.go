package courseValidator

import (
	"cursos/middleware"
	"cursos/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func validateTitle(errors map[string]string, title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		errors["title"] = "Title is required!"
	} else if len(trimmed) > 200 {
		errors["title"] = "Title must be at most 200 characters long!"
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", "VALIDATION_ERROR")
		}

		errors := make(map[string]string)
		validateTitle(errors, reqData.Title)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", "VALIDATION_ERROR")
		}

		errors := make(map[string]string)
		validateTitle(errors, reqData.Title)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// SearchCourses sanitizes paging before the repository sees it: missing or
// non-positive values fall back to page 1, size 10. The status filter is
// parsed case-insensitively and silently dropped when unknown.
func SearchCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := 1
		if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
			page = v
		}

		pageSize := 10
		if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
			pageSize = v
		}

		var status *models.CourseStatus
		if raw := strings.TrimSpace(c.Query("status")); raw != "" {
			if parsed, ok := models.ParseCourseStatusFold(raw); ok {
				status = &parsed
			}
		}

		reqData := &struct {
			Query    string
			Status   *models.CourseStatus
			Page     int
			PageSize int
		}{
			Query:    c.Query("q"),
			Status:   status,
			Page:     page,
			PageSize: pageSize,
		}

		c.Locals("validatedSearch", reqData)
		return c.Next()
	}
}
