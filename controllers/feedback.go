package controllers

import (
	"net/http"
	"strconv"
	"time"

	"applicant-tracking-api/models"
	"applicant-tracking-api/services"

	"github.com/gin-gonic/gin"
)

// SubmitFeedback stores the interviewer's scored assessment. Every rubric
// topic must be scored; resubmission for the same interview is blocked.
func SubmitFeedback(c *gin.Context) {
	interviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil || interviewID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interview id"})
		return
	}

	type FeedbackRequest struct {
		Scores          []services.RubricScore `json:"scores" binding:"required"`
		Decision        string                 `json:"decision" binding:"required"`
		StrengthOpinion *string                `json:"strength_opinion"`
		OverallOpinion  *string                `json:"overall_opinion"`
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Decision != models.DecisionToOffer && req.Decision != models.DecisionOnHold && req.Decision != models.DecisionReject {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be to_offer, on_hold or reject"})
		return
	}

	if err := services.ValidateRubric(req.Scores); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var interview models.Interview
	if err := getDB().Where("interview_id = ?", interviewID).First(&interview).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interview not found"})
		return
	}

	if interview.FeedbackSubmitted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already submitted for this interview"})
		return
	}

	if email := getCurrentEmail(c); interview.InterviewerEmail != email {
		roleID, _ := getCurrentRoleID(c)
		if roleID == models.RoleInterviewer {
			c.JSON(http.StatusForbidden, gin.H{"error": "Interview is assigned to another interviewer"})
			return
		}
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", interview.CandidateID).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	total, max, percentage := services.ComputeScore(req.Scores)

	now := time.Now()
	feedback := models.InterviewFeedback{
		InterviewID:      interview.InterviewID,
		CandidateID:      interview.CandidateID,
		InterviewerEmail: interview.InterviewerEmail,
		TotalScore:       total,
		MaxScore:         max,
		Percentage:       percentage,
		Decision:         req.Decision,
		StrengthOpinion:  req.StrengthOpinion,
		OverallOpinion:   req.OverallOpinion,
		CreateAt:         now,
	}
	if err := getDB().Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	for _, s := range req.Scores {
		row := models.FeedbackScore{
			FeedbackID: feedback.FeedbackID,
			Topic:      s.Topic,
			Category:   s.Category,
			Score:      s.Score,
		}
		if err := getDB().Create(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rubric scores"})
			return
		}
	}

	if err := getDB().Model(&models.Interview{}).
		Where("interview_id = ?", interview.InterviewID).
		Updates(map[string]interface{}{
			"feedback_submitted": true,
			"status":             models.InterviewCompleted,
			"update_at":          now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update interview"})
		return
	}

	// Map the decision onto the candidate status.
	target := map[string]models.CandidateStatus{
		models.DecisionToOffer: models.StatusToOffer,
		models.DecisionOnHold:  models.StatusOnHold,
		models.DecisionReject:  models.StatusRejected,
	}[req.Decision]

	actor := currentActor(c)
	note := "Interview feedback: " + req.Decision
	if err := services.ChangeStatus(getDB(), &candidate, target, actor, note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Notify the HR user who made the assignment, best-effort.
	var assignment models.CandidateAssignment
	if err := getDB().Where("assignment_id = ?", interview.AssignmentID).First(&assignment).Error; err == nil &&
		assignment.AssignedBy != nil && assignment.AssignedByEmail != nil {
		candID := uintPtr(candidate.CandidateID)
		services.Notify(getDB(), uint(*assignment.AssignedBy), "info",
			"Interview feedback submitted",
			"Feedback for "+candidate.FullName()+" was submitted with decision "+req.Decision,
			candID, nil)

		payload := services.EmailEventPayload{
			EventType:      "feedback_submitted",
			CandidateID:    uint(candidate.CandidateID),
			RecipientEmail: *assignment.AssignedByEmail,
			Data: map[string]interface{}{
				"candidate_name": candidate.FullName(),
				"decision":       req.Decision,
				"total_score":    total,
				"percentage":     percentage,
			},
		}
		go services.SendEmailEvent(getDB(), payload, uintPtr(actor.UserID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Feedback submitted",
		"feedback":  feedback,
		"candidate": candidate,
	})
}

// GetCandidateFeedback returns all feedback (with rubric rows) for a candidate.
func GetCandidateFeedback(c *gin.Context) {
	id := c.Param("id")

	var feedbacks []models.InterviewFeedback
	if err := getDB().Preload("Scores").
		Where("candidate_id = ?", id).
		Order("create_at DESC").Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedbacks": feedbacks,
		"total":     len(feedbacks),
	})
}

// BackfillFeedback is the limited HR edit allowed after submission: only the
// proposed salary/position fields used during offer preparation.
func BackfillFeedback(c *gin.Context) {
	feedbackID, err := strconv.Atoi(c.Param("id"))
	if err != nil || feedbackID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	type BackfillRequest struct {
		ProposedSalary   *float64 `json:"proposed_salary"`
		ProposedPosition *string  `json:"proposed_position"`
	}

	var req BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProposedSalary == nil && req.ProposedPosition == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	var feedback models.InterviewFeedback
	if err := getDB().Where("feedback_id = ?", feedbackID).First(&feedback).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.ProposedSalary != nil {
		updates["proposed_salary"] = *req.ProposedSalary
	}
	if req.ProposedPosition != nil {
		updates["proposed_position"] = *req.ProposedPosition
	}

	if err := getDB().Model(&models.InterviewFeedback{}).
		Where("feedback_id = ?", feedbackID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback updated"})
}
