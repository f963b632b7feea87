package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/claims"
	"github.com/podiumlabs/podium/internal/service"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

type stubService struct {
	tournament *models.Tournament
	view       *service.TournamentView
	err        *apperrors.AppError
}

func (s *stubService) CreateTournament(ctx context.Context, input service.CreateTournamentInput) (*models.Tournament, *apperrors.AppError) {
	return s.tournament, s.err
}

func (s *stubService) ListTournaments(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, *apperrors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	if s.tournament == nil {
		return nil, nil
	}
	return []models.Tournament{*s.tournament}, nil
}

func (s *stubService) GetTournamentView(ctx context.Context, id string, now time.Time) (*service.TournamentView, *apperrors.AppError) {
	return s.view, s.err
}

func (s *stubService) GetClaimableShares(ctx context.Context, id string, now time.Time) ([]claims.Claimable, *apperrors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *stubService) EnterTournament(ctx context.Context, id, entrant string, now time.Time) (*models.Tournament, *apperrors.AppError) {
	return s.tournament, s.err
}

func (s *stubService) PreviewTimeline(input service.TimelinePreviewInput, now time.Time) (*service.TimelinePreview, *apperrors.AppError) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.TimelinePreview{Valid: true}, nil
}

func newTestApp(stub *stubService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, NewTournamentHandler(stub, logger.Development("test")))
	return app
}

func TestGetTournamentNotFound(t *testing.T) {
	app := newTestApp(&stubService{
		err: apperrors.New(apperrors.CodeNotFound, "tournament not found"),
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/tournaments/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeNotFound, body["code"])
}

func TestCreateTournamentRejectedMapsToBadRequest(t *testing.T) {
	app := newTestApp(&stubService{
		err: apperrors.New(apperrors.CodeScheduleInvalid, "tournament starts too soon"),
	})

	req := httptest.NewRequest("POST", "/tournaments", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateTournamentReturnsCreated(t *testing.T) {
	app := newTestApp(&stubService{
		tournament: &models.Tournament{TournamentId: "t1", Name: "spring cup"},
	})

	req := httptest.NewRequest("POST", "/tournaments", strings.NewReader(`{"name":"spring cup"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body models.Tournament
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "t1", body.TournamentId)
}

func TestEnterTournamentRequiresEntrant(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest("POST", "/tournaments/t1/enter", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEnterTournamentClosedMapsToConflict(t *testing.T) {
	app := newTestApp(&stubService{
		err: apperrors.New(apperrors.CodeRegistrationClosed, "tournament is not accepting entries"),
	})

	req := httptest.NewRequest("POST", "/tournaments/t1/enter", strings.NewReader(`{"entrantAddress":"0xabc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPreviewTimeline(t *testing.T) {
	app := newTestApp(&stubService{})

	req := httptest.NewRequest("POST", "/timeline/preview", strings.NewReader(`{"schedule":{}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
