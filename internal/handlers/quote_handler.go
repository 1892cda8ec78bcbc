package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solarverify/internal/models"
	"solarverify/internal/services"
)

type QuoteHandler struct {
	service services.QuoteService
	log     *zap.Logger
}

func NewQuoteHandler(service services.QuoteService, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, log: log}
}

// @Summary      Grade a solar quote
// @Description  Scores the quote on price, component quality and sizing and returns an A-F grade with the reasoning.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        quote  body      models.QuoteSubmission  true  "Quote details"
// @Success      200    {object}  utils.SuccessResponse{data=models.GradeResult}
// @Failure      400    {object}  utils.ErrorResponse
// @Failure      500    {object}  utils.ErrorResponse
// @Router       /analyze-quote [post]
func (h *QuoteHandler) AnalyzeQuote(c *gin.Context) {
	var req models.QuoteSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	res, err := h.service.AnalyzeQuote(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, res)
}
