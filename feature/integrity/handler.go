package integrity

import (
	"errors"

	"follower-tracker/core/logger"
	"follower-tracker/core/utils"
	"follower-tracker/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.ServerReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/server", h.HandleServerCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the schema and report storage checks.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 503 {object} map[string]interface{} "Combined Report with failures"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	healthy, report := h.service.Healthy(c.Context())
	if !healthy {
		l.Warn("Integrity checks failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleServerCheck checks server schema integrity.
// @Summary Check Database Schema
// @Description Checks that every tracker table exists with the expected columns.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the report bucket.
// @Summary Check Report Storage
// @Description Checks that the report archive bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 404 {object} map[string]string "Storage disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var (
		report *checks.StorageReport
		err    error
	)
	if utils.ToBool(c.Query("fix")) {
		report, err = h.service.FixStorage(c.Context())
	} else {
		report, err = h.service.CheckStorage(c.Context())
	}

	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Exists {
		l.Warn("Report bucket missing", zap.String("bucket", report.Bucket))
	}
	return c.JSON(report)
}
