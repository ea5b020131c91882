package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// firstHeaderValue returns the first non-empty value among the given headers.
func firstHeaderValue(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(c.Get(k))
		if v != "" {
			return v
		}
	}
	return ""
}
