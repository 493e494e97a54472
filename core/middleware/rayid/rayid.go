package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName carries the ray id on requests and responses.
	HeaderName = "X-Ray-ID"
	// LocalsKey is where handlers and logger.WithRayID find the ray id.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning every request a ray id. A ray id sent by
// the caller is kept so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
