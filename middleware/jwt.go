package middleware

import (
	"cursos/config"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateJWT generates a signed bearer token for the user
func GenerateJWT(userID uint, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"email": email,
		"jti":   uuid.NewString(),
		"iss":   config.AppConfig.JWTIssuer,
		"aud":   config.AppConfig.JWTAudience,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Duration(config.AppConfig.TokenTTLHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header", "UNAUTHORIZED")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format", "UNAUTHORIZED")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", "UNAUTHORIZED")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token payload", "UNAUTHORIZED")
	}

	if !claims.VerifyIssuer(config.AppConfig.JWTIssuer, true) {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token issuer", "UNAUTHORIZED")
	}
	if !claims.VerifyAudience(config.AppConfig.JWTAudience, true) {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token audience", "UNAUTHORIZED")
	}

	var userID uint
	if sub, ok := claims["sub"].(string); ok {
		if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token payload", "UNAUTHORIZED")
		}
	}

	c.Locals("userId", userID)
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, errorCode string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success":   false,
		"message":   message,
		"errorCode": errorCode,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":   false,
		"message":   "Validation failed!",
		"errorCode": "VALIDATION_ERROR",
		"data":      errors,
	})
}

func PagedResponse(c *fiber.Ctx, message string, data interface{}, pageNumber, pageSize int, totalCount int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pageNumber": pageNumber,
		"pageSize":   pageSize,
		"totalCount": totalCount,
	})
}
