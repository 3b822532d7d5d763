package services

import (
	"fmt"
	"time"

	"applicant-tracking-api/models"

	"gorm.io/gorm"
)

// AssignInterviewer deactivates any active assignment for the candidate and
// inserts the new one, so at most one row stays active.
func AssignInterviewer(db *gorm.DB, candidateID int, interviewerName, interviewerEmail, status string, actor Actor, note *string) (*models.CandidateAssignment, error) {
	now := time.Now()
	if err := db.Model(&models.CandidateAssignment{}).
		Where("candidate_id = ? AND is_active = 1", candidateID).
		Updates(map[string]interface{}{"is_active": false, "update_at": now}).Error; err != nil {
		return nil, fmt.Errorf("failed to deactivate prior assignment: %w", err)
	}

	assignment := models.CandidateAssignment{
		CandidateID:      candidateID,
		InterviewerName:  interviewerName,
		InterviewerEmail: interviewerEmail,
		Status:           status,
		IsActive:         true,
		Note:             note,
		AssignedBy:       &actor.UserID,
		AssignedByEmail:  &actor.Email,
		CreateAt:         now,
	}
	if err := db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return &assignment, nil
}

// ReassignInterviewer replaces the active assignment before any interview has
// been scheduled. Once an interview exists, reassignment goes through
// interview scheduling, which cancels the interview together with the
// assignment swap; allowing it here would leave the old interviewer's
// interview scheduled against the new interviewer's assignment.
func ReassignInterviewer(db *gorm.DB, candidateID int, interviewerName, interviewerEmail string, actor Actor, note string) (*models.CandidateAssignment, error) {
	var prior models.CandidateAssignment
	if err := db.Where("candidate_id = ? AND is_active = 1", candidateID).
		First(&prior).Error; err != nil {
		return nil, fmt.Errorf("candidate has no active assignment")
	}
	if prior.InterviewerEmail == interviewerEmail {
		return nil, fmt.Errorf("candidate is already assigned to this interviewer")
	}

	var scheduled int64
	if err := db.Model(&models.Interview{}).
		Where("candidate_id = ? AND status = ?", candidateID, models.InterviewScheduled).
		Count(&scheduled).Error; err != nil {
		return nil, fmt.Errorf("failed to check scheduled interviews: %w", err)
	}
	if scheduled > 0 {
		return nil, fmt.Errorf("candidate has a scheduled interview; reassign through interview scheduling so it is cancelled")
	}

	fullNote := "Reassigned from " + prior.InterviewerName
	if note != "" {
		fullNote = fullNote + ": " + note
	}
	return AssignInterviewer(db, candidateID, interviewerName, interviewerEmail, "pending", actor, &fullNote)
}
