// Package kyc forwards identity-document uploads to the ledger backend. The
// multipart body is streamed through untouched so file contents never need to
// be parsed or buffered per field on the gateway.
package kyc

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qfs-ledger-gateway/internal/common/errors"
	sessionmw "qfs-ledger-gateway/internal/features/session/middleware"
	"qfs-ledger-gateway/internal/upstream"
)

// maxUploadBytes caps a single KYC submission (documents are photos or PDFs).
const maxUploadBytes = 20 << 20

type Handler struct {
	backend *upstream.Client
}

func NewHandler(backend *upstream.Client) *Handler {
	return &Handler{backend: backend}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/kyc/upload", h.upload)
}

// @Summary Submit KYC documents
// @Tags kyc
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /kyc/upload [post]
func (h *Handler) upload(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		_ = c.Error(errors.New(errors.ErrCodeBadRequest, "Missing content type"))
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	resp, err := h.backend.CallRaw(c.Request.Context(), http.MethodPost, "/api/kyc/upload", sessionmw.CredentialsFrom(c), contentType, body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(resp.Status, resp.ContentType, resp.Body)
}
