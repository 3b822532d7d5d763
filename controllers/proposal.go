package controllers

import (
	"net/http"
	"strconv"
	"time"

	"applicant-tracking-api/models"
	"applicant-tracking-api/services"
	"applicant-tracking-api/utils"

	"github.com/gin-gonic/gin"
)

type offerRequest struct {
	Position   string   `json:"position" binding:"required"`
	Level      *string  `json:"level"`
	Grade      *string  `json:"grade"`
	Department *string  `json:"department"`
	Salary     float64  `json:"salary" binding:"required,gt=0"`
	StartDate  *string  `json:"start_date"` // RFC 3339
	FeedbackID *int     `json:"feedback_id"`
	NationalID *string  `json:"national_id"`
	Address    *string  `json:"address"`
	Note       string   `json:"note"`
}

// SendOffer creates the job proposal and moves the candidate into the
// two-stage approval. The candidate's personal-identification fields are
// completed here as part of offer preparation.
func SendOffer(c *gin.Context) {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	if req.NationalID != nil && !utils.ValidateNationalID(*req.NationalID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid national ID"})
		return
	}

	var startDate *time.Time
	if req.StartDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be RFC 3339"})
			return
		}
		startDate = &parsed
	}

	actor := currentActor(c)
	now := time.Now()

	proposal := models.JobProposal{
		CandidateID:      candidate.CandidateID,
		FeedbackID:       req.FeedbackID,
		Position:         req.Position,
		Level:            req.Level,
		Grade:            req.Grade,
		Department:       req.Department,
		Salary:           req.Salary,
		StartDate:        startDate,
		OfferStatus:      "pending",
		SubmittedBy:      actor.UserID,
		SubmittedByEmail: actor.Email,
		CreateAt:         now,
	}
	if err := services.SubmitProposal(getDB(), &candidate, &proposal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Complete personal-identification fields gathered for the offer.
	if req.NationalID != nil || req.Address != nil {
		updates := map[string]interface{}{"update_at": now}
		if req.NationalID != nil {
			updates["national_id"] = *req.NationalID
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if err := getDB().Model(&models.Candidate{}).
			Where("candidate_id = ?", candidate.CandidateID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate"})
			return
		}
	}

	if err := services.ChangeStatus(getDB(), &candidate, models.StatusPendingApproval, actor, req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Notify an HR Manager in-app and by email that the first approval
	// stage is waiting on them.
	if manager, err := services.FindHRManager(getDB()); err == nil {
		candID := uintPtr(candidate.CandidateID)
		propID := uintPtr(proposal.ProposalID)
		services.Notify(getDB(), uint(manager.UserID), "info",
			"Job offer pending approval",
			"An offer for "+candidate.FullName()+" ("+proposal.Position+") awaits your approval",
			candID, propID)
		payload := services.EmailEventPayload{
			EventType:      "offer_pending_approval",
			CandidateID:    uint(candidate.CandidateID),
			RecipientEmail: manager.Email,
			RecipientName:  manager.FullName(),
			Data: map[string]interface{}{
				"candidate_name": candidate.FullName(),
				"position":       proposal.Position,
				"salary":         proposal.Salary,
			},
		}
		go services.SendEmailEvent(getDB(), payload, uintPtr(actor.UserID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Offer sent for approval",
		"proposal":  proposal,
		"candidate": candidate,
	})
}

// ApproveOfferHRManager is the first approval stage.
func ApproveOfferHRManager(c *gin.Context) {
	proposal, candidate, ok := loadProposal(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if err := services.ApproveProposal(getDB(), proposal, actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve proposal"})
		return
	}

	candID := uintPtr(candidate.CandidateID)
	propID := uintPtr(proposal.ProposalID)

	// Notify the interviewer on the active assignment (in-app if they have
	// an account, plus email) and the original submitter.
	var assignment models.CandidateAssignment
	if err := getDB().Where("candidate_id = ? AND is_active = 1", candidate.CandidateID).
		First(&assignment).Error; err == nil {
		var interviewer models.User
		if err := getDB().Where("email = ? AND delete_at IS NULL", assignment.InterviewerEmail).
			First(&interviewer).Error; err == nil {
			services.Notify(getDB(), uint(interviewer.UserID), "info",
				"Offer awaiting your acknowledgment",
				"The offer for "+candidate.FullName()+" was approved by the HR Manager",
				candID, propID)
		}
		payload := services.EmailEventPayload{
			EventType:      "offer_approved",
			CandidateID:    uint(candidate.CandidateID),
			RecipientEmail: assignment.InterviewerEmail,
			RecipientName:  assignment.InterviewerName,
			Data: map[string]interface{}{
				"candidate_name": candidate.FullName(),
				"position":       proposal.Position,
			},
		}
		go services.SendEmailEvent(getDB(), payload, uintPtr(actor.UserID))
	}

	services.Notify(getDB(), uint(proposal.SubmittedBy), "success",
		"Offer approved by HR Manager",
		"The offer for "+candidate.FullName()+" passed HR Manager approval",
		candID, propID)

	c.JSON(http.StatusOK, gin.H{"message": "Offer approved"})
}

// RejectOfferHRManager records rejection notes; the candidate stays in
// pending_approval until HR edits and resubmits.
func RejectOfferHRManager(c *gin.Context) {
	proposal, candidate, ok := loadProposal(c)
	if !ok {
		return
	}

	type RejectRequest struct {
		Notes string `json:"notes" binding:"required"`
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	if err := services.RejectProposalByManager(getDB(), proposal, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject proposal"})
		return
	}

	if err := services.RecordNote(getDB(), candidate, actor, "Offer rejected by HR Manager: "+req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	candID := uintPtr(candidate.CandidateID)
	propID := uintPtr(proposal.ProposalID)
	services.Notify(getDB(), uint(proposal.SubmittedBy), "warning",
		"Offer rejected by HR Manager",
		"The offer for "+candidate.FullName()+" was rejected: "+req.Notes,
		candID, propID)

	c.JSON(http.StatusOK, gin.H{"message": "Offer rejected"})
}

// AcknowledgeOfferInterviewer is the second approval stage; it completes the
// approval and marks the offer as sent to the candidate.
func AcknowledgeOfferInterviewer(c *gin.Context) {
	proposal, candidate, ok := loadProposal(c)
	if !ok {
		return
	}

	if !proposal.HRManagerApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Offer is not yet approved by the HR Manager"})
		return
	}

	actor := currentActor(c)
	if err := services.AcknowledgeProposal(getDB(), proposal, actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge proposal"})
		return
	}

	if err := services.ChangeStatus(getDB(), candidate, models.StatusOfferSent, actor, "Offer acknowledged by interviewer"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candID := uintPtr(candidate.CandidateID)
	propID := uintPtr(proposal.ProposalID)
	services.Notify(getDB(), uint(proposal.SubmittedBy), "success",
		"Offer fully approved",
		"The offer for "+candidate.FullName()+" was acknowledged and sent",
		candID, propID)
	if proposal.HRManagerApprovedBy != nil {
		services.Notify(getDB(), uint(*proposal.HRManagerApprovedBy), "success",
			"Offer fully approved",
			"The offer for "+candidate.FullName()+" was acknowledged and sent",
			candID, propID)
	}

	payload := services.EmailEventPayload{
		EventType:      "offer_acknowledged",
		CandidateID:    uint(candidate.CandidateID),
		RecipientEmail: proposal.SubmittedByEmail,
		Data: map[string]interface{}{
			"candidate_name": candidate.FullName(),
			"position":       proposal.Position,
		},
	}
	go services.SendEmailEvent(getDB(), payload, uintPtr(actor.UserID))

	c.JSON(http.StatusOK, gin.H{"message": "Offer acknowledged"})
}

// RejectOfferInterviewer records the interviewer's rejection and rolls back
// the HR Manager approval, forcing re-approval after HR edits.
func RejectOfferInterviewer(c *gin.Context) {
	proposal, candidate, ok := loadProposal(c)
	if !ok {
		return
	}

	type RejectRequest struct {
		Notes string `json:"notes" binding:"required"`
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	if err := services.RejectProposalByInterviewer(getDB(), proposal, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject proposal"})
		return
	}

	if err := services.RecordNote(getDB(), candidate, actor, "Offer rejected by interviewer: "+req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	candID := uintPtr(candidate.CandidateID)
	propID := uintPtr(proposal.ProposalID)
	services.Notify(getDB(), uint(proposal.SubmittedBy), "warning",
		"Offer rejected by interviewer",
		"The offer for "+candidate.FullName()+" was rejected: "+req.Notes,
		candID, propID)

	c.JSON(http.StatusOK, gin.H{"message": "Offer rejected"})
}

// ResubmitOffer restarts the two-stage approval after HR edits: both
// rejection-note fields and both approval flags are reset.
func ResubmitOffer(c *gin.Context) {
	proposal, candidate, ok := loadProposal(c)
	if !ok {
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var startDate *time.Time
	if req.StartDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be RFC 3339"})
			return
		}
		startDate = &parsed
	}

	actor := currentActor(c)
	terms := services.ProposalTerms{
		Position:   req.Position,
		Level:      req.Level,
		Grade:      req.Grade,
		Department: req.Department,
		Salary:     req.Salary,
		StartDate:  startDate,
	}
	if err := services.ResubmitProposal(getDB(), proposal, terms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resubmit proposal"})
		return
	}

	if err := services.RecordNote(getDB(), candidate, actor, "Offer resubmitted for approval"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if manager, err := services.FindHRManager(getDB()); err == nil {
		candID := uintPtr(candidate.CandidateID)
		propID := uintPtr(proposal.ProposalID)
		services.Notify(getDB(), uint(manager.UserID), "info",
			"Job offer resubmitted",
			"The offer for "+candidate.FullName()+" was updated and awaits your approval",
			candID, propID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer resubmitted"})
}

// GetProposals lists job proposals, optionally filtered by candidate.
func GetProposals(c *gin.Context) {
	query := getDB().Model(&models.JobProposal{})
	if candidateID := c.Query("candidate_id"); candidateID != "" {
		query = query.Where("candidate_id = ?", candidateID)
	}
	if status := c.Query("offer_status"); status != "" {
		query = query.Where("offer_status = ?", status)
	}

	var proposals []models.JobProposal
	if err := query.Order("create_at DESC").Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"total":     len(proposals),
	})
}

func loadProposal(c *gin.Context) (*models.JobProposal, *models.Candidate, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return nil, nil, false
	}

	var proposal models.JobProposal
	if err := getDB().Where("proposal_id = ?", id).First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return nil, nil, false
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", proposal.CandidateID).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return nil, nil, false
	}

	return &proposal, &candidate, true
}
