package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solarverify/internal/services"
)

type UsageHandler struct {
	usage services.UsageService
	log   *zap.Logger
}

func NewUsageHandler(usage services.UsageService, log *zap.Logger) *UsageHandler {
	return &UsageHandler{usage: usage, log: log}
}

// UsageRequest also accepts user_id, the older name for client_id.
type UsageRequest struct {
	Email            string `json:"email" binding:"omitempty,email"`
	ClientID         string `json:"client_id"`
	UserID           string `json:"user_id"`
	GDPRConsent      bool   `json:"gdpr_consent"`
	ConsentTimestamp string `json:"consent_timestamp"`
}

func (r UsageRequest) clientID() string {
	if r.ClientID != "" {
		return r.ClientID
	}
	return r.UserID
}

func bindUsage(c *gin.Context) (UsageRequest, bool) {
	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, bindMessage(err, "invalid request body"))
		return req, false
	}
	return req, true
}

// @Summary      Register an email for free checks
// @Tags         Usage
// @Accept       json
// @Produce      json
// @Param        request  body      UsageRequest  true  "Email and optional browser client id"
// @Success      200      {object}  utils.SuccessResponse{data=services.UserSummary}
// @Failure      400      {object}  utils.ErrorResponse
// @Router       /register-email [post]
func (h *UsageHandler) RegisterEmail(c *gin.Context) {
	req, ok := bindUsage(c)
	if !ok {
		return
	}
	sum, err := h.usage.RegisterEmail(c.Request.Context(), req.Email, req.clientID(), consentTime(req.GDPRConsent, req.ConsentTimestamp))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, sum)
}

// @Summary      Check the free-check allowance
// @Tags         Usage
// @Accept       json
// @Produce      json
// @Param        request  body      UsageRequest  true  "Browser client id and optional email"
// @Success      200      {object}  utils.SuccessResponse{data=services.UsageStatus}
// @Failure      400      {object}  utils.ErrorResponse
// @Router       /track-usage [post]
func (h *UsageHandler) TrackUsage(c *gin.Context) {
	req, ok := bindUsage(c)
	if !ok {
		return
	}
	st, err := h.usage.TrackUsage(c.Request.Context(), req.clientID(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, st)
}

// @Summary      Look up a registered email
// @Tags         Usage
// @Accept       json
// @Produce      json
// @Param        request  body      UsageRequest  true  "Email"
// @Success      200      {object}  utils.SuccessResponse{data=services.EmailStatus}
// @Failure      400      {object}  utils.ErrorResponse
// @Router       /check-email-status [post]
func (h *UsageHandler) CheckEmailStatus(c *gin.Context) {
	req, ok := bindUsage(c)
	if !ok {
		return
	}
	st, err := h.usage.CheckEmailStatus(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, st)
}

// @Summary      Analysis history for a registered email
// @Tags         Usage
// @Produce      json
// @Param        email  query     string  true  "Registered email"
// @Success      200    {object}  utils.SuccessResponse{data=services.UserAnalytics}
// @Failure      400    {object}  utils.ErrorResponse
// @Failure      404    {object}  utils.ErrorResponse
// @Router       /user-analytics [get]
func (h *UsageHandler) UserAnalytics(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondBadRequest(c, "email parameter required")
		return
	}
	out, err := h.usage.Analytics(c.Request.Context(), email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, out)
}
