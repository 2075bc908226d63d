package prices

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc}
}

// RegisterRoutes wires the quote endpoint on the public group (the landing
// page ticker needs no session) and the portfolio view on the protected one.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/prices", h.quotes)
	protected.GET("/wallet/holdings", h.holdings)
}

// @Summary Cached USD quotes for supported assets
// @Tags prices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /prices [get]
func (h *Handler) quotes(c *gin.Context) {
	quotes, err := h.service.Quotes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quotes})
}

// @Summary Portfolio holdings with coin amounts
// @Tags prices
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /wallet/holdings [get]
func (h *Handler) holdings(c *gin.Context) {
	holdings, err := h.service.Holdings(c.Request.Context(), sessionmw.CredentialsFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": holdings})
}
