package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"receptionist/services/voice"
)

// CallHandler triggers outbound receptionist calls.
type CallHandler struct {
	Voice voice.Service
}

func NewCallHandler(voiceSvc voice.Service) *CallHandler {
	return &CallHandler{Voice: voiceSvc}
}

// StartCall starts a new session with the receptionist voice agent.
func (h *CallHandler) StartCall(c *gin.Context) {
	var params voice.StartSessionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Voice.StartReceptionistSession(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": session})
}
