package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Bablu7011/internship-project/internal/http/middleware"
	"github.com/Bablu7011/internship-project/internal/logging"
	"github.com/Bablu7011/internship-project/internal/readiness"
)

// HealthBody is the liveness probe response.
const HealthBody = "OK"

// HealthCheck is the liveness probe used by load balancers and auto-scaling groups.
// It must stay free of I/O so that a slow dependency never takes instances out of rotation.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  plain
// @Success  200 {string} string "OK"
// @Router   /health [get]
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString(HealthBody)
	}
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Readiness reports whether the configured dependencies are reachable.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} readinessResponse
// @Failure  503 {object} errorPayload
// @Router   /ready [get]
func Readiness(prober *readiness.Prober, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := prober.Probe(c.UserContext())
		if !res.Ready {
			for _, name := range res.Failed() {
				logging.JSON(loc, map[string]any{
					"component":     "readiness",
					"event":         "dependency_unavailable",
					"status":        "error",
					"dependency":    name,
					"error_message": res.Errors[name].Error(),
					"request_id":    middleware.RequestIDFromCtx(c),
				})
			}
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.JSON(readinessResponse{Status: "ready", Checks: res.Checks})
	}
}
