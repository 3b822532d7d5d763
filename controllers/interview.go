package controllers

import (
	"net/http"
	"time"

	"applicant-tracking-api/models"
	"applicant-tracking-api/services"

	"github.com/gin-gonic/gin"
)

type scheduleInterviewRequest struct {
	InterviewerName  string  `json:"interviewer_name" binding:"required"`
	InterviewerEmail string  `json:"interviewer_email" binding:"required,email"`
	ScheduledAt      string  `json:"scheduled_at" binding:"required"` // RFC 3339
	DurationMinutes  int     `json:"duration_minutes"`
	Location         *string `json:"location"`
	MeetingLink      *string `json:"meeting_link"`
	IsOnline         bool    `json:"is_online"`
	Note             string  `json:"note"`
}

// ScheduleInterview creates, reschedules or reassigns an interview. The
// branch is picked by comparing the requested interviewer with the
// candidate's existing scheduled interview, if any:
//   - same interviewer: update the existing row in place, no status change
//   - different interviewer: cancel the old row, deactivate the old
//     assignment, insert a new interview and active assignment
//   - no scheduled interview: insert one and move the candidate to
//     interview_scheduled if not there already
func ScheduleInterview(c *gin.Context) {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return
	}

	var req scheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at must be RFC 3339"})
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	actor := currentActor(c)
	now := time.Now()

	var existing models.Interview
	hasScheduled := getDB().
		Where("candidate_id = ? AND status = ?", candidateID, models.InterviewScheduled).
		First(&existing).Error == nil

	var interview models.Interview
	var message string

	switch {
	case hasScheduled && existing.InterviewerEmail == req.InterviewerEmail:
		// Reschedule: mutate date/time/location fields in place.
		updates := map[string]interface{}{
			"scheduled_at":     scheduledAt,
			"duration_minutes": req.DurationMinutes,
			"location":         req.Location,
			"meeting_link":     req.MeetingLink,
			"is_online":        req.IsOnline,
			"update_at":        now,
		}
		if err := getDB().Model(&models.Interview{}).
			Where("interview_id = ?", existing.InterviewID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule interview"})
			return
		}
		existing.ScheduledAt = scheduledAt
		existing.DurationMinutes = req.DurationMinutes
		existing.Location = req.Location
		existing.MeetingLink = req.MeetingLink
		existing.IsOnline = req.IsOnline
		interview = existing
		message = "Interview rescheduled"

	case hasScheduled:
		// Reassign: cancel the old interview, supersede the assignment.
		if err := getDB().Model(&models.Interview{}).
			Where("interview_id = ?", existing.InterviewID).
			Updates(map[string]interface{}{"status": models.InterviewCancelled, "update_at": now}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel previous interview"})
			return
		}
		note := "Reassigned from " + existing.InterviewerName
		if req.Note != "" {
			note = note + ": " + req.Note
		}
		assignment, err := services.AssignInterviewer(getDB(), candidateID,
			req.InterviewerName, req.InterviewerEmail, "in_progress", actor, &note)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
			return
		}

		interview = models.Interview{
			CandidateID:      candidateID,
			AssignmentID:     assignment.AssignmentID,
			InterviewerName:  req.InterviewerName,
			InterviewerEmail: req.InterviewerEmail,
			ScheduledAt:      scheduledAt,
			DurationMinutes:  req.DurationMinutes,
			Location:         req.Location,
			MeetingLink:      req.MeetingLink,
			IsOnline:         req.IsOnline,
			Status:           models.InterviewScheduled,
			CreateAt:         now,
		}
		if err := getDB().Create(&interview).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create interview"})
			return
		}
		message = "Interview reassigned"

	default:
		// New interview for this assignment cycle.
		var assignment models.CandidateAssignment
		if err := getDB().Where("candidate_id = ? AND is_active = 1", candidateID).
			First(&assignment).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate has no active assignment"})
			return
		}

		interview = models.Interview{
			CandidateID:      candidateID,
			AssignmentID:     assignment.AssignmentID,
			InterviewerName:  req.InterviewerName,
			InterviewerEmail: req.InterviewerEmail,
			ScheduledAt:      scheduledAt,
			DurationMinutes:  req.DurationMinutes,
			Location:         req.Location,
			MeetingLink:      req.MeetingLink,
			IsOnline:         req.IsOnline,
			Status:           models.InterviewScheduled,
			CreateAt:         now,
		}
		if err := getDB().Create(&interview).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create interview"})
			return
		}

		if candidate.Status != models.StatusInterviewScheduled {
			if err := services.ChangeStatus(getDB(), &candidate, models.StatusInterviewScheduled, actor, req.Note); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		message = "Interview scheduled"
	}

	// Best-effort notification with calendar details for the downstream
	// invite generation. Never gates the scheduling itself.
	invite := services.BuildInterviewInvite(candidate, interview)
	payload := services.EmailEventPayload{
		EventType:      "interview_scheduled",
		CandidateID:    uint(candidate.CandidateID),
		RecipientEmail: interview.InterviewerEmail,
		RecipientName:  interview.InterviewerName,
		Data: map[string]interface{}{
			"candidate_name":   candidate.FullName(),
			"position":         candidate.PositionApplied,
			"interview_date":   interview.ScheduledAt.Format("02/01/2006 15:04"),
			"calendar_invite":  invite,
			"interviewer_name": interview.InterviewerName,
		},
	}
	senderID := uintPtr(actor.UserID)
	go services.SendEmailEvent(getDB(), payload, senderID)

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"interview": interview,
		"candidate": candidate,
	})
}

// GetInterviews lists interviews. Interviewers only see their own sessions;
// HR roles see everything.
func GetInterviews(c *gin.Context) {
	roleID, _ := getCurrentRoleID(c)

	query := getDB().Model(&models.Interview{})
	if roleID == models.RoleInterviewer {
		query = query.Where("interviewer_email = ?", getCurrentEmail(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if candidateID := c.Query("candidate_id"); candidateID != "" {
		query = query.Where("candidate_id = ?", candidateID)
	}

	var interviews []models.Interview
	if err := query.Order("scheduled_at ASC").Find(&interviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch interviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"total":      len(interviews),
	})
}
