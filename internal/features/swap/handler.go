package swap

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
	protected.POST("/swap/execute", h.execute)
}

// @Summary Swap one asset for another
// @Tags swap
// @Accept json
// @Produce json
// @Param request body ExecuteRequest true "Swap request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /swap/execute [post]
func (h *Handler) execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.Execute(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
