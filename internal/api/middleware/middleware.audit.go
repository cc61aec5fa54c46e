package middleware

import (
	"github.com/gofiber/fiber/v3"

	"live_commerce/internal/logger"
)

// AuditMiddleware ghi audit log cho các request thay đổi dữ liệu (POST/PUT/DELETE).
// resourceType là loại tài nguyên của route group (ví dụ: "live_order", "purchase_order").
func AuditMiddleware(resourceType string) fiber.Handler {
	return func(c fiber.Ctx) error {
		method := c.Method()
		if method == fiber.MethodPost || method == fiber.MethodPut || method == fiber.MethodDelete {
			logger.LogCRUD(method, resourceType, c.Params("id"), c, map[string]interface{}{
				"path": c.Path(),
			})
		}
		return c.Next()
	}
}
