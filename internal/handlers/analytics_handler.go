package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// ListEvents lists stored analytics events
// @Summary List analytics events
// @Tags analytics
// @Produce json
// @Param event_name query string false "Event name"
// @Param test_id query int false "Exercise id"
// @Param user_id query string false "User id"
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Offset"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} SuccessResponse{data=services.EventListResponse}
// @Failure 400 {object} ErrorResponse
// @Router /analytics/events [get]
func (h *AnalyticsHandler) ListEvents(c *gin.Context) {
	var filters repositories.EventFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid query parameters", err, err.Error())
		return
	}

	resp, err := h.analyticsService.ListEvents(c.Request.Context(), &filters)
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Events retrieved", resp, "total", resp.Total)
}

// GetStats returns per-exercise event counts and score statistics
// @Summary Analytics stats
// @Tags analytics
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.AnalyticsSummary}
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	summary, err := h.analyticsService.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Stats retrieved", summary)
}

// ExportEvents downloads the matching events as xlsx (default) or csv
// @Summary Export analytics events
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "xlsx or csv"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /analytics/events/export [get]
func (h *AnalyticsHandler) ExportEvents(c *gin.Context) {
	var filters repositories.EventFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid query parameters", err, err.Error())
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = h.analyticsService.ExportEventsToExcel(c.Request.Context(), &filters)
		contentType = contentTypeXLSX
	case "csv":
		data, err = h.analyticsService.ExportEventsToCSV(c.Request.Context(), &filters)
		contentType = contentTypeCSV
	default:
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Unsupported export format", nil, format)
		return
	}
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	filename := fmt.Sprintf("analytics-events-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	h.LogInfo(c, "Analytics events exported", "format", format, "bytes", len(data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
