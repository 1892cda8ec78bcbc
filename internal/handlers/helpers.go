package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"solarverify/internal/apperrors"
	"solarverify/internal/utils"
)

const (
	codeValidation = "VALIDATION_ERROR"
	codeNotFound   = "NOT_FOUND"
	codeToken      = "TOKEN_INVALID"
	codeDelivery   = "DELIVERY_FAILED"
	codeInternal   = "INTERNAL_ERROR"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(data))
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(codeValidation, message))
}

// bindMessage turns a binding failure into the message shown to the client.
// A rejected email field gets its own message; anything else uses fallback.
func bindMessage(err error, fallback string) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Field() == "Email" {
				return "a valid email address is required"
			}
		}
	}
	return fallback
}

// consentTime is nil unless consent was given. The client timestamp is used
// when it parses as RFC 3339, otherwise the server clock.
func consentTime(consent bool, raw string) *time.Time {
	if !consent {
		return nil
	}
	at, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		at = time.Now()
	}
	at = at.UTC()
	return &at
}

// respondError maps service errors onto the public error contract. Token
// rejections share one message; the precise reason only goes to the log.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := utils.CreateErrorResponse(codeValidation, ve.Message)
		resp.Error.Field = ve.Field
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse(codeNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		reason, _ := apperrors.Reason(err)
		log.Info("token rejected", zap.String("reason", string(reason)), zap.String("path", c.FullPath()))
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(codeToken, "This link is invalid or has expired. Please request a new one."))
	case errors.Is(err, apperrors.ErrDeliveryFailure):
		log.Warn("email delivery failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(codeDelivery, "We could not send the email. Please try again shortly."))
	default:
		log.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(codeInternal, "An unexpected error occurred"))
	}
	_ = c.Error(err)
}
