package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewCatalogHandler(sessionService services.SessionService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// ListCatalog returns the home screen tiles
// @Summary List catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} SuccessResponse{data=[]models.CatalogEntry}
// @Router /catalog [get]
func (h *CatalogHandler) ListCatalog(c *gin.Context) {
	catalog := h.sessionService.Catalog(c.Request.Context())
	h.RespondWithSuccess(c, http.StatusOK, "Catalog retrieved", catalog, "tiles", len(catalog))
}
