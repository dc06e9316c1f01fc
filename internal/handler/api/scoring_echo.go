package api

import (
	"errors"
	"net/http"
	"time"

	"FlipScout/internal/domain/models"
	domrepo "FlipScout/internal/domain/repository"
	"FlipScout/internal/usecase"
	xhttp "FlipScout/pkg/http"
	"FlipScout/pkg/http/middleware"
	xlogger "FlipScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScoringHandler exposes the scoring run and signal read endpoints.
type ScoringHandler struct {
	logger        *xlogger.Logger
	runner        *usecase.ScoreRunner
	reader        *usecase.SignalReader
	runToken      string
	defaultWindow time.Duration
}

func NewScoringHandler(logger *xlogger.Logger, runner *usecase.ScoreRunner, reader *usecase.SignalReader, runToken string, defaultWindow time.Duration) *ScoringHandler {
	return &ScoringHandler{
		logger:        logger,
		runner:        runner,
		reader:        reader,
		runToken:      runToken,
		defaultWindow: defaultWindow,
	}
}

func (h *ScoringHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/run", h.Run, middleware.BearerAuth(h.runToken))

	g := e.Group("/api", middleware.BearerAuth(h.runToken))
	g.GET("/signals/recent", h.Recent)
}

// Health always reports ok; it carries no auth and touches no dependencies.
func (h *ScoringHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Run triggers one scoring pass. The body is optional; an empty POST scores
// with the configured freshness window.
func (h *ScoringHandler) Run(c echo.Context) error {
	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	window := h.defaultWindow
	if req.WindowHours > 0 {
		window = time.Duration(req.WindowHours) * time.Hour
	}

	res, err := h.runner.Run(c.Request().Context(), models.RunOptions{
		Window: window,
		DryRun: req.DryRun,
	})
	if err != nil {
		h.logger.Error("scoring run error", xlogger.Error(err))
		if errors.Is(err, domrepo.ErrNotReady) {
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, "storage not ready")
		}
		return xhttp.AppErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

// Recent lists persisted signals, newest first.
func (h *ScoringHandler) Recent(c echo.Context) error {
	req := &models.RecentSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	since := xhttp.ParseTimeDefault(req.Since, time.Time{})

	rows, err := h.reader.Recent(c.Request().Context(), req.ProductID, since, req.Limit)
	if err != nil {
		h.logger.Error("recent signals error", xlogger.Error(err))
		if errors.Is(err, domrepo.ErrNotReady) {
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, "storage not ready")
		}
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
