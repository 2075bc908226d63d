package card

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qfs-ledger-gateway/internal/common/errors"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	card := protected.Group("/card")
	{
		card.GET("/eligibility", h.eligibility)
		card.POST("/create", h.create)
	}
}

// @Summary Virtual card eligibility
// @Tags card
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /card/eligibility [get]
func (h *Handler) eligibility(c *gin.Context) {
	elig, err := h.service.Eligibility(c.Request.Context(), sessionmw.CredentialsFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": elig})
}

// @Summary Apply for a virtual card
// @Tags card
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Card application"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Below the balance floor"
// @Router /card/create [post]
func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Card application received", "data": result})
}
