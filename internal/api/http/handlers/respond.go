package handlers

import "github.com/gofiber/fiber/v2"

// respond writes the standard success envelope.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"status":  status,
		"data":    data,
	})
}
