package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Bablu7011/internship-project/internal/view"
)

// GreetingMessage is bound to the "message" slot of the hello template.
const GreetingMessage = "Auto Scaling Works!"

// Greeting renders the hello page.
//
// @Summary  Greeting page
// @Tags     pages
// @Produce  html
// @Success  200 {string} string "rendered HTML"
// @Router   / [get]
func Greeting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render(view.HelloTemplate, fiber.Map{
			"message": GreetingMessage,
		})
	}
}
