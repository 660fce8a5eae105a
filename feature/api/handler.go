package api

import (
	"errors"

	"tablediff/core/compare"
	"tablediff/core/diff"
	"tablediff/core/logger"
	"tablediff/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CompareRequest selects the tables of a batch comparison.
type CompareRequest struct {
	// Tables to compare. Empty compares every listed table.
	Tables []string `json:"tables"`
	// MaxParallelism bounds concurrent tables. Zero uses the server default.
	MaxParallelism int `json:"max_parallelism"`
}

// CompareResponse carries batch summaries and per-table failures.
type CompareResponse struct {
	Summaries []diff.Summary `json:"summaries"`
	Errors    []TableFailure `json:"errors"`
	Cancelled bool           `json:"cancelled"`
}

// TableFailure is a table whose comparison failed.
type TableFailure struct {
	Table string `json:"table,omitempty"`
	Error string `json:"error"`
}

// TableResponse is a detailed result with its entries capped.
type TableResponse struct {
	Result       *diff.TableResult `json:"result"`
	TotalEntries int               `json:"total_entries"`
	Truncated    bool              `json:"truncated"`
}

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
	server  server.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg server.Config) *Handler {
	return &Handler{service: service, server: cfg}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/tables", h.HandleTables)
	app.Get("/compare/:table", h.HandleCompareTable)
	app.Post("/compare", h.HandleCompareTables)
}

// HandleTables lists the source tables.
// @Summary List Tables
// @Description Lists the source tables, excluding the configured ones.
// @Tags compare
// @Produce json
// @Success 200 {array} string "Table names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tables [get]
func (h *Handler) HandleTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	tables, err := h.service.Tables(c.Context())
	if err != nil {
		l.Error("Failed to list tables", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if tables == nil {
		tables = []string{}
	}
	return c.JSON(tables)
}

// HandleCompareTable compares one table in detail.
// @Summary Compare Table
// @Description Compares one table and returns its entries ordered by key.
// @Tags compare
// @Produce json
// @Param table path string true "Table name"
// @Param limit query int false "Maximum entries returned"
// @Success 200 {object} TableResponse "Detailed result"
// @Failure 404 {object} map[string]string "Table not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare/{table} [get]
func (h *Handler) HandleCompareTable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	table := c.Params("table")

	result, err := h.service.CompareTable(c.Context(), table)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Table comparison failed", zap.String("table", table), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	total := len(result.Entries)
	limit := h.server.Limit(c.QueryInt("limit"))
	if total > limit {
		result.Entries = result.Entries[:limit]
	}

	l.Info("Compared table",
		zap.String("table", table),
		zap.String("key_tier", result.KeyTier),
		zap.Int("entries", total))

	return c.JSON(TableResponse{Result: result, TotalEntries: total, Truncated: total > limit})
}

// HandleCompareTables summarizes many tables.
// @Summary Compare Tables
// @Description Compares many tables in parallel and returns per-table counts.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body CompareRequest false "Tables to compare"
// @Success 200 {object} CompareResponse "Summaries"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compare [post]
func (h *Handler) HandleCompareTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CompareRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	summaries, failures, err := h.service.CompareTables(c.Context(), req.Tables, req.MaxParallelism)
	if err != nil {
		l.Error("Batch comparison failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp := CompareResponse{Summaries: summaries, Errors: []TableFailure{}}
	if resp.Summaries == nil {
		resp.Summaries = []diff.Summary{}
	}
	for _, ferr := range failures {
		var tableErr *compare.TableError
		switch {
		case errors.As(ferr, &tableErr):
			resp.Errors = append(resp.Errors, TableFailure{Table: tableErr.Table, Error: tableErr.Err.Error()})
		case errors.Is(ferr, compare.ErrCancelled):
			resp.Cancelled = true
		default:
			resp.Errors = append(resp.Errors, TableFailure{Error: ferr.Error()})
		}
	}

	l.Info("Compared tables",
		zap.Int("summaries", len(resp.Summaries)),
		zap.Int("failures", len(resp.Errors)))

	return c.JSON(resp)
}
