package services

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	"applicant-tracking-api/config"
	"applicant-tracking-api/models"

	"gorm.io/gorm"
)

// Notify inserts an in-app notification row. Best-effort: failures are
// logged and never returned to workflow code.
func Notify(db *gorm.DB, userID uint, ntype, title, message string, candidateID, proposalID *uint) {
	n := models.Notification{
		UserID:             userID,
		Title:              title,
		Message:            message,
		Type:               ntype,
		RelatedCandidateID: candidateID,
		RelatedProposalID:  proposalID,
		IsRead:             false,
		CreateAt:           time.Now(),
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("in-app notification insert failed (user=%d title=%q): %v", userID, title, err)
	}
}

// SendEmailEvent dispatches one outbound email event, best-effort. The
// production transport relays through the webhook function; setting
// NOTIFY_TRANSPORT=smtp switches to the legacy direct SMTP path with the
// same payload shape and the same audit logging.
func SendEmailEvent(db *gorm.DB, payload EmailEventPayload, senderUserID *uint) {
	if strings.EqualFold(os.Getenv("NOTIFY_TRANSPORT"), "smtp") {
		sendViaSMTP(db, payload, senderUserID)
		return
	}

	status, body := RelayEmailEvent(db, payload, senderUserID)
	if status != 200 {
		log.Printf("email relay failed (event=%s to=%s status=%d): %v",
			payload.EventType, payload.RecipientEmail, status, body)
	}
}

func sendViaSMTP(db *gorm.DB, payload EmailEventPayload, senderUserID *uint) {
	subject := emailSubjectForEvent(payload.EventType)
	html := buildFormalEmailHTML(subject, payload.RecipientName, renderEventBody(payload))

	logRow := models.EmailNotification{
		EventType:      payload.EventType,
		CandidateID:    payload.CandidateID,
		RecipientEmail: payload.RecipientEmail,
		Status:         models.EmailStatusPending,
		Reference:      fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SenderUserID:   senderUserID,
		CreatedAt:      time.Now(),
	}
	if payload.RecipientName != "" {
		logRow.RecipientName = &payload.RecipientName
	}
	if err := db.Create(&logRow).Error; err != nil {
		log.Printf("email audit insert failed (event=%s): %v", payload.EventType, err)
	}

	status := models.EmailStatusSent
	response := "smtp delivery ok"
	if err := config.SendMail([]string{payload.RecipientEmail}, subject, html); err != nil {
		log.Printf("notification email send failed (subject=%q to=%s): %v", subject, payload.RecipientEmail, err)
		status = models.EmailStatusFailed
		response = err.Error()
	}

	if logRow.EmailID != 0 {
		if err := db.Model(&models.EmailNotification{}).
			Where("email_id = ?", logRow.EmailID).
			Updates(map[string]interface{}{"status": status, "webhook_response": response}).Error; err != nil {
			log.Printf("email audit update failed (event=%s): %v", payload.EventType, err)
		}
	}
}

func emailSubjectForEvent(eventType string) string {
	switch eventType {
	case "interview_scheduled":
		return "Interview Scheduled"
	case "feedback_submitted":
		return "Interview Feedback Submitted"
	case "offer_pending_approval":
		return "Job Offer Pending Approval"
	case "offer_approved":
		return "Job Offer Approved"
	case "offer_rejected":
		return "Job Offer Rejected"
	case "offer_acknowledged":
		return "Job Offer Acknowledged"
	default:
		return "Recruitment Notification"
	}
}

func renderEventBody(payload EmailEventPayload) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You have a new %s notification.\n", strings.ReplaceAll(payload.EventType, "_", " ")))
	for key, value := range payload.Data {
		if key == "calendar_invite" {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %v\n", strings.ReplaceAll(key, "_", " "), value))
	}
	return b.String()
}

func buildFormalEmailHTML(subject, recipientName, message string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "recipient"
	}

	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Dear %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">%s</p>
    <p style="margin:0 0 0 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}

// CalendarInvite is the sub-object attached to interview_scheduled events so
// the downstream automation can generate a calendar invitation.
type CalendarInvite struct {
	Summary       string   `json:"summary"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Location      string   `json:"location,omitempty"`
	MeetingLink   string   `json:"meeting_link,omitempty"`
	Attendees     []string `json:"attendees"`
	OnlineMeeting bool     `json:"online_meeting"`
}

// BuildInterviewInvite shapes the calendar payload for a scheduled interview.
func BuildInterviewInvite(candidate models.Candidate, interview models.Interview) CalendarInvite {
	duration := interview.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	invite := CalendarInvite{
		Summary:       fmt.Sprintf("Interview: %s (%s)", candidate.FullName(), candidate.PositionApplied),
		StartTime:     interview.ScheduledAt.Format(time.RFC3339),
		EndTime:       interview.ScheduledAt.Add(time.Duration(duration) * time.Minute).Format(time.RFC3339),
		Attendees:     []string{candidate.Email, interview.InterviewerEmail},
		OnlineMeeting: interview.IsOnline,
	}
	if interview.Location != nil {
		invite.Location = *interview.Location
	}
	if interview.MeetingLink != nil {
		invite.MeetingLink = *interview.MeetingLink
	}
	return invite
}

// FindHRManager resolves an active HR Manager to address offer approvals to.
func FindHRManager(db *gorm.DB) (*models.User, error) {
	var manager models.User
	if err := db.Where("role_id = ? AND is_active = 1 AND delete_at IS NULL", models.RoleHRManager).
		Order("user_id ASC").First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}
