package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qfs-ledger-gateway/internal/common/errors"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
	"qfs-ledger-gateway/internal/features/wallet/models"
	"qfs-ledger-gateway/internal/features/wallet/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	wallet := protected.Group("/wallet")
	{
		wallet.POST("/deposit/request", h.requestDeposit)
		wallet.POST("/withdraw/request", h.requestWithdrawal)
		wallet.GET("/transactions", h.transactions)
		wallet.POST("/link", h.linkWallet)
	}
}

// @Summary Request a deposit
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.DepositRequest true "Deposit request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /wallet/deposit/request [post]
func (h *Handler) requestDeposit(c *gin.Context) {
	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.RequestDeposit(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// @Summary Request a withdrawal
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.WithdrawRequest true "Withdrawal request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Validation or balance rejection"
// @Router /wallet/withdraw/request [post]
func (h *Handler) requestWithdrawal(c *gin.Context) {
	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.RequestWithdrawal(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// @Summary Transaction history
// @Tags wallet
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /wallet/transactions [get]
func (h *Handler) transactions(c *gin.Context) {
	data, err := h.service.Transactions(c.Request.Context(), sessionmw.CredentialsFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// @Summary Link an external wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body models.LinkRequest true "Wallet name and recovery phrase"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /wallet/link [post]
func (h *Handler) linkWallet(c *gin.Context) {
	var req models.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	data, err := h.service.LinkWallet(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
