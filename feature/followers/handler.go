package followers

import (
	"errors"
	"strings"
	"time"

	"follower-tracker/core/logger"
	"follower-tracker/core/utils"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Handler handles HTTP requests for followers.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the follower routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/accounts", h.HandleListAccounts)
	app.Get("/accounts/:platformID", h.HandleGetAccount)
	app.Get("/followers/:target", h.HandleFollowers)
	app.Get("/events", h.HandleEvents)
	app.Post("/runs/:target", h.HandleTriggerRun)
	app.Get("/reports/:target", h.HandleListReports)
	app.Get("/reports/:target/:name", h.HandleGetReport)
}

// HandleListAccounts lists registered accounts.
// @Summary List Accounts
// @Description Pages through every account the tracker has registered.
// @Tags followers
// @Produce json
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Offset"
// @Success 200 {array} followers.Account
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts [get]
func (h *Handler) HandleListAccounts(c *fiber.Ctx) error {
	limit := clampLimit(utils.ToInt(c.Query("limit"), defaultPageSize))
	offset := max(utils.ToInt(c.Query("offset"), 0), 0)

	accounts, err := h.service.ListAccounts(c.Context(), limit, offset)
	if err != nil {
		return h.fail(c, "Failed to list accounts", err)
	}
	return c.JSON(accounts)
}

// HandleGetAccount returns one account.
// @Summary Get Account
// @Description Returns the account registered for a platform id.
// @Tags followers
// @Produce json
// @Param platformID path string true "Platform user id"
// @Success 200 {object} followers.Account
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /accounts/{platformID} [get]
func (h *Handler) HandleGetAccount(c *fiber.Ctx) error {
	id, err := utils.ParseID(c.Params("platformID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	acc, err := h.service.GetAccount(c.Context(), id)
	if err != nil {
		return h.fail(c, "Failed to get account", err)
	}
	return c.JSON(acc)
}

// HandleFollowers returns the stored follower set of a target.
// @Summary Current Followers
// @Description Returns the follower set recorded by the last successful run.
// @Tags followers
// @Produce json
// @Param target path string true "Tracked handle"
// @Success 200 {array} followers.Account
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /followers/{target} [get]
func (h *Handler) HandleFollowers(c *fiber.Ctx) error {
	accounts, err := h.service.Followers(c.Context(), c.Params("target"))
	if err != nil {
		return h.fail(c, "Failed to list followers", err)
	}
	return c.JSON(accounts)
}

// HandleEvents lists follow events.
// @Summary Follow Events
// @Description Lists JOINED and LEFT events, newest first.
// @Tags followers
// @Produce json
// @Param target query string false "Tracked handle"
// @Param kind query string false "JOINED or LEFT"
// @Param since query string false "RFC 3339 timestamp or duration such as 24h"
// @Param limit query int false "Maximum events (max 1000)"
// @Success 200 {array} followers.FollowEvent
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	kind := EventKind(strings.ToUpper(c.Query("kind")))
	if kind != "" && !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be JOINED or LEFT"})
	}
	since, err := ParseSince(c.Query("since"), time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid since: " + err.Error()})
	}

	events, err := h.service.History(c.Context(), EventFilter{
		Target: c.Query("target"),
		Kind:   kind,
		Since:  since,
		Limit:  clampLimit(utils.ToInt(c.Query("limit"), defaultPageSize)),
	})
	if err != nil {
		return h.fail(c, "Failed to list events", err)
	}
	return c.JSON(events)
}

// HandleTriggerRun reconciles a target now.
// @Summary Trigger Run
// @Description Runs a reconcile for the target. Concurrent triggers share one run.
// @Tags followers
// @Produce json
// @Param target path string true "Tracked handle"
// @Success 200 {object} followers.RunResult
// @Failure 409 {object} map[string]string "Run in progress elsewhere"
// @Failure 502 {object} map[string]string "Platform failure"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs/{target} [post]
func (h *Handler) HandleTriggerRun(c *fiber.Ctx) error {
	if !h.service.CanTrigger() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "runs are not enabled"})
	}
	// The target outlives the request as the coalescing key and in the result.
	target := fiberutils.CopyString(c.Params("target"))
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Run triggered", zap.String("target", target))

	result, err := h.service.Trigger(c.Context(), target)
	if err != nil {
		return h.fail(c, "Run failed", err)
	}
	return c.JSON(result)
}

// HandleListReports lists archived run reports.
// @Summary List Reports
// @Description Lists run reports archived in object storage.
// @Tags followers
// @Produce json
// @Param target path string true "Tracked handle"
// @Success 200 {array} followers.ArchivedReport
// @Failure 404 {object} map[string]string "Archive disabled"
// @Router /reports/{target} [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.Context(), c.Params("target"))
	if err != nil {
		return h.fail(c, "Failed to list reports", err)
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived run report.
// @Summary Get Report
// @Description Returns an archived run report by name.
// @Tags followers
// @Produce json
// @Param target path string true "Tracked handle"
// @Param name path string true "Report name, e.g. 20240101T120000Z"
// @Success 200 {object} followers.RunResult
// @Failure 404 {object} map[string]string "Not Found"
// @Router /reports/{target}/{name} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	result, err := h.service.Report(c.Context(), c.Params("target"), c.Params("name"))
	if err != nil {
		return h.fail(c, "Failed to get report", err)
	}
	return c.JSON(result)
}

// fail maps domain errors to HTTP statuses.
func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrRunInProgress):
		status = fiber.StatusConflict
	case errors.Is(err, ErrAuthorization), errors.Is(err, ErrFetch):
		status = fiber.StatusBadGateway
	}
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return min(limit, maxPageSize)
}
