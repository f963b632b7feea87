package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/service"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

type TournamentHandler struct {
	tournamentService service.TournamentService
	logger            *logger.Logger
}

func NewTournamentHandler(tournamentService service.TournamentService, logger *logger.Logger) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		logger:            logger,
	}
}

func (h *TournamentHandler) ListTournaments(c *fiber.Ctx) error {
	status := models.Open
	if c.Query("status") == "settled" {
		status = models.Settled
	}

	tournaments, err := h.tournamentService.ListTournaments(c.Context(), status)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"tournaments": tournaments})
}

func (h *TournamentHandler) GetTournament(c *fiber.Ctx) error {
	view, err := h.tournamentService.GetTournamentView(c.Context(), c.Params("id"), time.Now().UTC())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(view)
}

func (h *TournamentHandler) GetClaimable(c *fiber.Ctx) error {
	claimable, err := h.tournamentService.GetClaimableShares(c.Context(), c.Params("id"), time.Now().UTC())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"claimable": claimable})
}

func (h *TournamentHandler) CreateTournament(c *fiber.Ctx) error {
	var input service.CreateTournamentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed tournament payload"})
	}

	tournament, err := h.tournamentService.CreateTournament(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tournament)
}

func (h *TournamentHandler) EnterTournament(c *fiber.Ctx) error {
	var body struct {
		EntrantAddress string `json:"entrantAddress"`
	}
	if err := c.BodyParser(&body); err != nil || body.EntrantAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "entrantAddress is required"})
	}

	tournament, err := h.tournamentService.EnterTournament(c.Context(), c.Params("id"), body.EntrantAddress, time.Now().UTC())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(tournament)
}

func (h *TournamentHandler) PreviewTimeline(c *fiber.Ctx) error {
	var input service.TimelinePreviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed timeline payload"})
	}

	preview, err := h.tournamentService.PreviewTimeline(input, time.Now().UTC())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(preview)
}

func (h *TournamentHandler) fail(c *fiber.Ctx, err *apperrors.AppError) error {
	status := apperrors.ToHTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Path(), "error", err)
	} else {
		h.logger.Debug("request rejected", "path", c.Path(), "code", err.Code)
	}

	return c.Status(status).JSON(fiber.Map{
		"code":  err.Code,
		"error": err.Message,
	})
}
