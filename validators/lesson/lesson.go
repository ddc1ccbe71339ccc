package lessonValidator

import (
	"cursos/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func LessonBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", "VALIDATION_ERROR")
		}

		errors := make(map[string]string)

		trimmed := strings.TrimSpace(reqData.Title)
		if trimmed == "" {
			errors["title"] = "Title is required!"
		} else if len(trimmed) > 200 {
			errors["title"] = "Title must be at most 200 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
