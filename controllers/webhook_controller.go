package controllers

import (
	"net/http"
	"strconv"

	"applicant-tracking-api/services"

	"github.com/gin-gonic/gin"
)

// SendEmailNotification is the server-side relay function. It exists so the
// webhook URL and secret never reach a client: the caller supplies the
// payload, the relay adds the bearer secret and applies the per-event rate
// limit, and every attempt lands in the audit log.
func SendEmailNotification(c *gin.Context) {
	var payload services.EmailEventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Caller identity for rate-limit accounting: the session user, or the
	// X-User-Id header when invoked service-to-service.
	var senderID *uint
	if uid, ok := getCurrentUserID(c); ok {
		senderID = uintPtr(uid)
	} else if header := c.GetHeader("X-User-Id"); header != "" {
		if v, err := strconv.Atoi(header); err == nil && v > 0 {
			senderID = uintPtr(v)
		}
	}

	status, body := services.RelayEmailEvent(getDB(), payload, senderID)
	c.JSON(status, body)
}
