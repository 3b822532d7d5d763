package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"applicant-tracking-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailEventPayload is the body accepted by the send-email-notification
// function and forwarded verbatim to the external automation webhook.
type EmailEventPayload struct {
	EventType      string                 `json:"event_type" binding:"required"`
	CandidateID    uint                   `json:"candidate_id" binding:"required"`
	RecipientEmail string                 `json:"recipient_email" binding:"required,email"`
	RecipientName  string                 `json:"recipient_name,omitempty"`
	Data           map[string]interface{} `json:"data"`
}

// RateLimitPerMinute is the fixed relay budget per event type per rolling
// minute. Enforced by counting recent audit rows, so concurrent senders can
// race past it; that matches the backing-store semantics the relay replaces.
const RateLimitPerMinute = 10

// httpClient is a package variable so tests can swap it out.
var httpClient = &http.Client{}

// RelayEmailEvent looks up the event's webhook config, applies the rolling
// rate limit, records the attempt and forwards the payload with the bearer
// secret. It returns the HTTP status and response body for the caller to
// write out.
func RelayEmailEvent(db *gorm.DB, payload EmailEventPayload, senderUserID *uint) (int, map[string]interface{}) {
	if strings.TrimSpace(payload.EventType) == "" || payload.RecipientEmail == "" || payload.CandidateID == 0 {
		return http.StatusBadRequest, map[string]interface{}{
			"error": "event_type, candidate_id and recipient_email are required",
		}
	}

	var cfg models.NotificationConfig
	if err := db.Where("event_type = ?", payload.EventType).First(&cfg).Error; err != nil {
		return http.StatusNotFound, map[string]interface{}{
			"error": fmt.Sprintf("no notification config for event type '%s'", payload.EventType),
		}
	}

	if !cfg.Enabled {
		return http.StatusOK, map[string]interface{}{
			"success":    false,
			"message":    fmt.Sprintf("webhook for event type '%s' is disabled", payload.EventType),
			"event_type": payload.EventType,
		}
	}

	// Read-then-act rolling window over the audit log.
	var recent int64
	windowStart := time.Now().Add(-time.Minute)
	if err := db.Model(&models.EmailNotification{}).
		Where("event_type = ? AND created_at > ?", payload.EventType, windowStart).
		Count(&recent).Error; err != nil {
		return http.StatusInternalServerError, map[string]interface{}{"error": err.Error()}
	}
	if recent >= RateLimitPerMinute {
		return http.StatusTooManyRequests, map[string]interface{}{
			"error":      "rate limit exceeded for event type",
			"event_type": payload.EventType,
			"limit":      RateLimitPerMinute,
		}
	}

	logRow := models.EmailNotification{
		EventType:      payload.EventType,
		CandidateID:    payload.CandidateID,
		RecipientEmail: payload.RecipientEmail,
		Status:         models.EmailStatusPending,
		Reference:      uuid.NewString(),
		SenderUserID:   senderUserID,
		CreatedAt:      time.Now(),
	}
	if payload.RecipientName != "" {
		logRow.RecipientName = &payload.RecipientName
	}
	if err := db.Create(&logRow).Error; err != nil {
		return http.StatusInternalServerError, map[string]interface{}{"error": err.Error()}
	}

	status, upstreamBody, callErr := callWebhook(cfg.WebhookURL, cfg.Secret, payload)

	response := upstreamBody
	if callErr != nil {
		response = callErr.Error()
	}
	finalStatus := models.EmailStatusSent
	if callErr != nil || status < 200 || status >= 300 {
		finalStatus = models.EmailStatusFailed
	}
	if err := db.Model(&models.EmailNotification{}).
		Where("email_id = ?", logRow.EmailID).
		Updates(map[string]interface{}{
			"status":           finalStatus,
			"webhook_response": response,
		}).Error; err != nil {
		return http.StatusInternalServerError, map[string]interface{}{"error": err.Error()}
	}

	if finalStatus == models.EmailStatusFailed {
		details := response
		return http.StatusInternalServerError, map[string]interface{}{
			"error":      "webhook call failed",
			"details":    details,
			"event_type": payload.EventType,
		}
	}

	return http.StatusOK, map[string]interface{}{
		"success":         true,
		"notification_id": logRow.Reference,
		"event_type":      payload.EventType,
	}
}

func callWebhook(url, secret string, payload EmailEventPayload) (int, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, string(respBody), fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(respBody))
	}
	return resp.StatusCode, string(respBody), nil
}
