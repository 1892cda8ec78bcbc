package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solarverify/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type MagicLinkRequest struct {
	Email            string `json:"email" binding:"required,email"`
	GDPRConsent      bool   `json:"gdpr_consent"`
	ConsentTimestamp string `json:"consent_timestamp"`
}

type MagicLinkResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// @Summary      Send a magic link
// @Description  Issues a single-use sign-in token and emails it as a link.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      MagicLinkRequest  true  "Email address and GDPR consent"
// @Success      200      {object}  utils.SuccessResponse{data=MagicLinkResponse}
// @Failure      400      {object}  utils.ErrorResponse
// @Failure      502      {object}  utils.ErrorResponse
// @Router       /send-magic-link [post]
func (h *AuthHandler) SendMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindMessage(err, "invalid request body"))
		return
	}

	consentAt := consentTime(req.GDPRConsent, req.ConsentTimestamp)
	exp, err := h.auth.RequestMagicLink(c.Request.Context(), req.Email, consentAt)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, MagicLinkResponse{Message: "Magic link sent. Check your inbox.", ExpiresAt: exp})
}
