package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Tougashi/Stunting-sub001/service"
	"github.com/gin-gonic/gin"
)

type ChatbotController struct {
	Service *service.ConsultationService
}

// Consult handles POST /chatbot: one generation call, one atomic append of the
// user/assistant pair, reply returned only after the pair is stored.
func (ctrl *ChatbotController) Consult(c *gin.Context) {
	var input struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	reply, err := ctrl.Service.Submit(c.Request.Context(), input.UserID, input.Message)
	if err != nil {
		ctrl.failSubmit(c, err)
		return
	}

	ok(c, http.StatusOK, reply)
}

// Generation and persistence failures get distinct status codes so the client
// can tell "the assistant failed to answer" from "your answer was not saved".
func (ctrl *ChatbotController) failSubmit(c *gin.Context, err error) {
	var genErr *service.GenerationError
	var persistErr *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrMissingUserID):
		fail(c, http.StatusBadRequest, "Missing userId")
	case errors.Is(err, service.ErrMissingMessage):
		fail(c, http.StatusBadRequest, "Missing message")
	case errors.As(err, &genErr):
		logger.Warnf("[%s] Failed to generate reply: %s", c.GetString("requestId"), err)
		fail(c, http.StatusBadGateway, "Failed to generate reply")
	case errors.As(err, &persistErr):
		logger.Warnf("[%s] Failed to save consultation: %s", c.GetString("requestId"), err)
		fail(c, http.StatusInternalServerError, "Failed to save consultation")
	default:
		logger.Warnf("[%s] Consultation failed: %s", c.GetString("requestId"), err)
		fail(c, http.StatusInternalServerError, "Failed to process consultation")
	}
}

// History handles GET /chatbot/:userId, oldest message first.
func (ctrl *ChatbotController) History(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		fail(c, http.StatusBadRequest, "Missing userId")
		return
	}

	messages, err := ctrl.Service.History(c.Request.Context(), userID)
	if err != nil {
		logger.Warnf("[%s] Failed to load history for %s: %s", c.GetString("requestId"), userID, err)
		fail(c, http.StatusInternalServerError, "Failed to load history")
		return
	}

	ok(c, http.StatusOK, messages)
}
