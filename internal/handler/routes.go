package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the tournament API on the given fiber app.
func RegisterRoutes(app *fiber.App, h *TournamentHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	tournaments := app.Group("/tournaments")
	tournaments.Get("/", h.ListTournaments)
	tournaments.Post("/", h.CreateTournament)
	tournaments.Get("/:id", h.GetTournament)
	tournaments.Get("/:id/claimable", h.GetClaimable)
	tournaments.Post("/:id/enter", h.EnterTournament)

	app.Post("/timeline/preview", h.PreviewTimeline)
}
