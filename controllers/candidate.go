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

// ApplyCandidate handles the public application form submission.
func ApplyCandidate(c *gin.Context) {
	type ApplyRequest struct {
		FirstName       string   `json:"first_name" binding:"required"`
		LastName        string   `json:"last_name" binding:"required"`
		Email           string   `json:"email" binding:"required"`
		Phone           string   `json:"phone" binding:"required"`
		NationalID      *string  `json:"national_id"`
		Address         *string  `json:"address"`
		PositionApplied string   `json:"position_applied" binding:"required"`
		ExperienceYears int      `json:"experience_years"`
		Education       *string  `json:"education"`
		ExpectedSalary  *float64 `json:"expected_salary"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	if req.NationalID != nil && !utils.ValidateNationalID(*req.NationalID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid national ID"})
		return
	}

	candidate := models.Candidate{
		FirstName:       utils.SanitizeInput(req.FirstName),
		LastName:        utils.SanitizeInput(req.LastName),
		Email:           req.Email,
		Phone:           utils.SanitizeInput(req.Phone),
		NationalID:      req.NationalID,
		Address:         req.Address,
		PositionApplied: utils.SanitizeInput(req.PositionApplied),
		ExperienceYears: req.ExperienceYears,
		Education:       req.Education,
		ExpectedSalary:  req.ExpectedSalary,
		Status:          models.StatusNew,
		CreateAt:        time.Now(),
	}

	if err := getDB().Create(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Application submitted successfully",
		"candidate": candidate,
	})
}

// GetCandidates returns the candidate list with optional filters.
func GetCandidates(c *gin.Context) {
	var candidates []models.Candidate
	query := getDB().Model(&models.Candidate{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if position := c.Query("position"); position != "" {
		query = query.Where("position_applied = ?", position)
	}

	if err := query.Order("create_at DESC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"total":      len(candidates),
	})
}

// GetCandidate returns one candidate with its active assignment and
// scheduled interview.
func GetCandidate(c *gin.Context) {
	id := c.Param("id")

	var candidate models.Candidate
	if err := getDB().Preload("Resume").Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	var assignment models.CandidateAssignment
	hasAssignment := getDB().
		Where("candidate_id = ? AND is_active = 1", candidate.CandidateID).
		First(&assignment).Error == nil

	var interview models.Interview
	hasInterview := getDB().
		Where("candidate_id = ? AND status = ?", candidate.CandidateID, models.InterviewScheduled).
		First(&interview).Error == nil

	resp := gin.H{"candidate": candidate}
	if hasAssignment {
		resp["assignment"] = assignment
	}
	if hasInterview {
		resp["interview"] = interview
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCandidate lets HR edit contact and application fields.
func UpdateCandidate(c *gin.Context) {
	id := c.Param("id")

	type UpdateRequest struct {
		FirstName       string   `json:"first_name"`
		LastName        string   `json:"last_name"`
		Phone           string   `json:"phone"`
		NationalID      *string  `json:"national_id"`
		Address         *string  `json:"address"`
		Education       *string  `json:"education"`
		ExpectedSalary  *float64 `json:"expected_salary"`
		PositionApplied string   `json:"position_applied"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	if req.NationalID != nil && !utils.ValidateNationalID(*req.NationalID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid national ID"})
		return
	}

	actor := currentActor(c)
	now := time.Now()
	if req.FirstName != "" {
		candidate.FirstName = utils.SanitizeInput(req.FirstName)
	}
	if req.LastName != "" {
		candidate.LastName = utils.SanitizeInput(req.LastName)
	}
	if req.Phone != "" {
		candidate.Phone = utils.SanitizeInput(req.Phone)
	}
	if req.PositionApplied != "" {
		candidate.PositionApplied = utils.SanitizeInput(req.PositionApplied)
	}
	if req.NationalID != nil {
		candidate.NationalID = req.NationalID
	}
	if req.Address != nil {
		candidate.Address = req.Address
	}
	if req.Education != nil {
		candidate.Education = req.Education
	}
	if req.ExpectedSalary != nil {
		candidate.ExpectedSalary = req.ExpectedSalary
	}
	candidate.UpdatedBy = &actor.UserID
	candidate.UpdatedByEmail = &actor.Email
	candidate.UpdateAt = &now

	if err := getDB().Save(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Candidate updated successfully",
		"candidate": candidate,
	})
}

// GetCandidateHistory returns the append-only status transition log.
func GetCandidateHistory(c *gin.Context) {
	id := c.Param("id")

	var history []models.StatusHistory
	if err := getDB().Where("candidate_id = ?", id).
		Order("created_at ASC").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"total":   len(history),
	})
}

// ShortlistCandidate moves a candidate to shortlisted and creates the
// interviewer assignment. Any previously active assignment is deactivated
// first so at most one stays active.
func ShortlistCandidate(c *gin.Context) {
	id := c.Param("id")

	type ShortlistRequest struct {
		InterviewerName  string `json:"interviewer_name" binding:"required"`
		InterviewerEmail string `json:"interviewer_email" binding:"required,email"`
		Note             string `json:"note"`
	}

	var req ShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	actor := currentActor(c)
	if err := services.ChangeStatus(getDB(), &candidate, models.StatusShortlisted, actor, req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var note *string
	if req.Note != "" {
		note = &req.Note
	}
	assignment, err := services.AssignInterviewer(getDB(), candidate.CandidateID,
		req.InterviewerName, req.InterviewerEmail, "pending", actor, note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Candidate shortlisted",
		"candidate":  candidate,
		"assignment": assignment,
	})
}

// ReassignInterviewer replaces the active assignment before any interview is
// scheduled; with a scheduled interview in place the request is rejected,
// because only the scheduling endpoint cancels the interview together with
// the swap. The old row is deactivated, never deleted.
func ReassignInterviewer(c *gin.Context) {
	id := c.Param("id")

	type ReassignRequest struct {
		InterviewerName  string `json:"interviewer_name" binding:"required"`
		InterviewerEmail string `json:"interviewer_email" binding:"required,email"`
		Note             string `json:"note"`
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	actor := currentActor(c)
	assignment, err := services.ReassignInterviewer(getDB(), candidate.CandidateID,
		req.InterviewerName, req.InterviewerEmail, actor, req.Note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Interviewer reassigned",
		"assignment": assignment,
	})
}

// RejectCandidate moves a candidate to rejected with an optional note.
func RejectCandidate(c *gin.Context) {
	changeCandidateStatus(c, models.StatusRejected, "Candidate rejected")
}

// HoldCandidate parks a candidate on hold.
func HoldCandidate(c *gin.Context) {
	changeCandidateStatus(c, models.StatusOnHold, "Candidate put on hold")
}

// HireCandidate completes the pipeline after the offer went out.
func HireCandidate(c *gin.Context) {
	changeCandidateStatus(c, models.StatusHired, "Candidate hired")
}

// DeclineOffer records that the candidate turned the sent offer down.
func DeclineOffer(c *gin.Context) {
	changeCandidateStatus(c, models.StatusOfferRejected, "Offer declined by candidate")
}

// ResumeCandidate takes a candidate off hold into the requested status.
func ResumeCandidate(c *gin.Context) {
	id := c.Param("id")

	type ResumeRequest struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	actor := currentActor(c)
	if err := services.ChangeStatus(getDB(), &candidate, models.CandidateStatus(req.Status), actor, req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Candidate resumed",
		"candidate": candidate,
	})
}

func changeCandidateStatus(c *gin.Context, to models.CandidateStatus, message string) {
	id := c.Param("id")

	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", id).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	actor := currentActor(c)
	if err := services.ChangeStatus(getDB(), &candidate, to, actor, req.Note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"candidate": candidate,
	})
}

func parseCandidateID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candidate id"})
		return 0, false
	}
	return id, true
}
