package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solarverify/internal/services"
)

type VerifyHandler struct {
	auth services.AuthService
	log  *zap.Logger
}

func NewVerifyHandler(auth services.AuthService, log *zap.Logger) *VerifyHandler {
	return &VerifyHandler{auth: auth, log: log}
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type VerifyTokenResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// @Summary      Verify a magic link
// @Description  Redeems a magic-link token once and emails the buyer's guide PDF.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyTokenRequest  true  "Token from the link"
// @Success      200      {object}  utils.SuccessResponse{data=VerifyTokenResponse}
// @Failure      400      {object}  utils.ErrorResponse
// @Failure      502      {object}  utils.ErrorResponse
// @Router       /verify-token [post]
func (h *VerifyHandler) VerifyToken(c *gin.Context) {
	var req VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "token is required")
		return
	}

	email, err := h.auth.VerifyMagicLink(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, VerifyTokenResponse{
		Email:    email,
		Verified: true,
		Message:  "Email verified. Your Solar Buyer's Guide is on its way.",
	})
}
