package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qfs-ledger-gateway/internal/common/errors"
	"qfs-ledger-gateway/internal/features/admin/models"
	"qfs-ledger-gateway/internal/features/admin/service"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// RegisterRoutes wires the admin console endpoints. Both groups passed in
// must already carry the admin guard; nothing here re-checks the role. User
// management keeps its historical /api/users prefix, everything else lives
// under /api/admin.
func (h *Handler) RegisterRoutes(admin, users *gin.RouterGroup) {
	users.GET("/users", h.users)
	users.POST("/users/:id/suspend", h.suspendUser)
	users.POST("/users/:id/activate", h.activateUser)
	admin.POST("/users/:id/fund", h.fundUser)

	deposits := admin.Group("/transactions/deposits")
	{
		deposits.GET("/pending", h.pendingDeposits)
		deposits.POST("/:id/confirm", h.confirmDeposit)
		deposits.POST("/:id/reject", h.rejectDeposit)
	}

	withdrawals := admin.Group("/transactions/withdrawals")
	{
		withdrawals.GET("/pending", h.pendingWithdrawals)
		withdrawals.POST("/:id/confirm", h.confirmWithdrawal)
		withdrawals.POST("/:id/reject", h.rejectWithdrawal)
	}

	kyc := admin.Group("/kyc")
	{
		kyc.GET("/pending", h.pendingKyc)
		kyc.GET("/:id/document", h.kycDocument)
		kyc.POST("/:id/verify", h.verifyKyc)
		kyc.POST("/:id/reject", h.rejectKyc)
	}

	admin.GET("/crypto-addresses", h.cryptoAddresses)
	admin.POST("/crypto-addresses", h.setCryptoAddress)
	admin.GET("/wallets/linked", h.linkedWallets)
}

// @Summary List platform users
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *Handler) users(c *gin.Context) {
	data, err := h.service.Users(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

// @Summary Suspend a user account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users/{id}/suspend [post]
func (h *Handler) suspendUser(c *gin.Context) {
	data, err := h.service.SuspendUser(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Reactivate a user account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users/{id}/activate [post]
func (h *Handler) activateUser(c *gin.Context) {
	data, err := h.service.ActivateUser(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Credit a user's balance
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.FundRequest true "Asset and amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /admin/users/{id}/fund [post]
func (h *Handler) fundUser(c *gin.Context) {
	var req models.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}
	data, err := h.service.FundUser(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"), req)
	h.respond(c, data, err)
}

// @Summary Pending deposit requests
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/deposits/pending [get]
func (h *Handler) pendingDeposits(c *gin.Context) {
	data, err := h.service.PendingDeposits(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

// @Summary Confirm a deposit
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/deposits/{id}/confirm [post]
func (h *Handler) confirmDeposit(c *gin.Context) {
	data, err := h.service.ConfirmDeposit(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Reject a deposit
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/deposits/{id}/reject [post]
func (h *Handler) rejectDeposit(c *gin.Context) {
	data, err := h.service.RejectDeposit(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Pending withdrawal requests
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/withdrawals/pending [get]
func (h *Handler) pendingWithdrawals(c *gin.Context) {
	data, err := h.service.PendingWithdrawals(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

// @Summary Confirm a withdrawal
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/withdrawals/{id}/confirm [post]
func (h *Handler) confirmWithdrawal(c *gin.Context) {
	data, err := h.service.ConfirmWithdrawal(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Reject a withdrawal
// @Tags admin
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/transactions/withdrawals/{id}/reject [post]
func (h *Handler) rejectWithdrawal(c *gin.Context) {
	data, err := h.service.RejectWithdrawal(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Pending KYC submissions
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/kyc/pending [get]
func (h *Handler) pendingKyc(c *gin.Context) {
	data, err := h.service.PendingKyc(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

// @Summary Fetch a submitted KYC document
// @Tags admin
// @Produce octet-stream
// @Param id path string true "Submission ID"
// @Success 200 {file} binary
// @Router /admin/kyc/{id}/document [get]
func (h *Handler) kycDocument(c *gin.Context) {
	resp, err := h.service.KycDocument(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(resp.Status, resp.ContentType, resp.Body)
}

// @Summary Approve a KYC submission
// @Tags admin
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/kyc/{id}/verify [post]
func (h *Handler) verifyKyc(c *gin.Context) {
	data, err := h.service.VerifyKyc(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Reject a KYC submission
// @Tags admin
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/kyc/{id}/reject [post]
func (h *Handler) rejectKyc(c *gin.Context) {
	data, err := h.service.RejectKyc(c.Request.Context(), sessionmw.CredentialsFrom(c), c.Param("id"))
	h.respond(c, data, err)
}

// @Summary Platform deposit addresses
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/crypto-addresses [get]
func (h *Handler) cryptoAddresses(c *gin.Context) {
	data, err := h.service.CryptoAddresses(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

// @Summary Register a platform deposit address
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AddressRequest true "Asset, address and network"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /admin/crypto-addresses [post]
func (h *Handler) setCryptoAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request body"))
		return
	}
	data, err := h.service.SetCryptoAddress(c.Request.Context(), sessionmw.CredentialsFrom(c), req)
	h.respond(c, data, err)
}

// @Summary Linked external wallets
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/wallets/linked [get]
func (h *Handler) linkedWallets(c *gin.Context) {
	data, err := h.service.LinkedWallets(c.Request.Context(), sessionmw.CredentialsFrom(c))
	h.respond(c, data, err)
}

func (h *Handler) respond(c *gin.Context, data any, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
