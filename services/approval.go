package services

import (
	"fmt"
	"time"

	"applicant-tracking-api/models"

	"gorm.io/gorm"
)

// SubmitProposal inserts the offer record after confirming the candidate can
// enter the approval stage, so a rejected transition leaves no orphan
// proposal row behind.
func SubmitProposal(db *gorm.DB, candidate *models.Candidate, proposal *models.JobProposal) error {
	if !CanTransition(candidate.Status, models.StatusPendingApproval) {
		return fmt.Errorf("illegal status transition: %s -> %s", candidate.Status, models.StatusPendingApproval)
	}
	if err := db.Create(proposal).Error; err != nil {
		return fmt.Errorf("failed to create job proposal: %w", err)
	}
	return nil
}

// ApproveProposal records the HR Manager approval stage and clears any prior
// first-stage rejection notes.
func ApproveProposal(db *gorm.DB, proposal *models.JobProposal, actor Actor) error {
	now := time.Now()
	if err := db.Model(&models.JobProposal{}).
		Where("proposal_id = ?", proposal.ProposalID).
		Updates(map[string]interface{}{
			"hr_manager_approved":        true,
			"hr_manager_approved_by":     actor.UserID,
			"hr_manager_approved_at":     now,
			"hr_manager_rejection_notes": nil,
			"update_at":                  now,
		}).Error; err != nil {
		return fmt.Errorf("failed to approve proposal: %w", err)
	}
	proposal.HRManagerApproved = true
	proposal.HRManagerApprovedBy = &actor.UserID
	proposal.HRManagerApprovedAt = &now
	proposal.HRManagerRejectionNotes = nil
	proposal.UpdateAt = &now
	return nil
}

// RejectProposalByManager records the first-stage rejection notes. The offer
// stays in the approval stage until HR edits and resubmits.
func RejectProposalByManager(db *gorm.DB, proposal *models.JobProposal, notes string) error {
	now := time.Now()
	if err := db.Model(&models.JobProposal{}).
		Where("proposal_id = ?", proposal.ProposalID).
		Updates(map[string]interface{}{
			"hr_manager_rejection_notes": notes,
			"update_at":                  now,
		}).Error; err != nil {
		return fmt.Errorf("failed to reject proposal: %w", err)
	}
	proposal.HRManagerRejectionNotes = &notes
	proposal.UpdateAt = &now
	return nil
}

// AcknowledgeProposal completes the second approval stage. The first stage
// must have passed.
func AcknowledgeProposal(db *gorm.DB, proposal *models.JobProposal, actor Actor) error {
	if !proposal.HRManagerApproved {
		return fmt.Errorf("offer is not yet approved by the HR Manager")
	}
	now := time.Now()
	if err := db.Model(&models.JobProposal{}).
		Where("proposal_id = ?", proposal.ProposalID).
		Updates(map[string]interface{}{
			"interviewer_acknowledged":    true,
			"interviewer_acknowledged_by": actor.UserID,
			"interviewer_acknowledged_at": now,
			"interviewer_rejection_notes": nil,
			"offer_status":                "approved",
			"update_at":                   now,
		}).Error; err != nil {
		return fmt.Errorf("failed to acknowledge proposal: %w", err)
	}
	proposal.InterviewerAcknowledged = true
	proposal.InterviewerAcknowledgedBy = &actor.UserID
	proposal.InterviewerAcknowledgedAt = &now
	proposal.InterviewerRejectionNotes = nil
	proposal.OfferStatus = "approved"
	proposal.UpdateAt = &now
	return nil
}

// RejectProposalByInterviewer records the second-stage rejection and rolls
// back the HR Manager approval, so the edited offer must pass both stages
// again.
func RejectProposalByInterviewer(db *gorm.DB, proposal *models.JobProposal, notes string) error {
	now := time.Now()
	if err := db.Model(&models.JobProposal{}).
		Where("proposal_id = ?", proposal.ProposalID).
		Updates(map[string]interface{}{
			"interviewer_rejection_notes": notes,
			"hr_manager_approved":         false,
			"hr_manager_approved_by":      nil,
			"hr_manager_approved_at":      nil,
			"update_at":                   now,
		}).Error; err != nil {
		return fmt.Errorf("failed to reject proposal: %w", err)
	}
	proposal.InterviewerRejectionNotes = &notes
	proposal.HRManagerApproved = false
	proposal.HRManagerApprovedBy = nil
	proposal.HRManagerApprovedAt = nil
	proposal.UpdateAt = &now
	return nil
}

// ProposalTerms are the editable offer fields applied on resubmission.
type ProposalTerms struct {
	Position   string
	Level      *string
	Grade      *string
	Department *string
	Salary     float64
	StartDate  *time.Time
}

// ResubmitProposal applies the edited terms and resets both approval stages:
// both flag groups with their by/at stamps, and both rejection-note fields.
func ResubmitProposal(db *gorm.DB, proposal *models.JobProposal, terms ProposalTerms) error {
	now := time.Now()
	if err := db.Model(&models.JobProposal{}).
		Where("proposal_id = ?", proposal.ProposalID).
		Updates(map[string]interface{}{
			"position":                    terms.Position,
			"level":                       terms.Level,
			"grade":                       terms.Grade,
			"department":                  terms.Department,
			"salary":                      terms.Salary,
			"start_date":                  terms.StartDate,
			"offer_status":                "pending",
			"hr_manager_approved":         false,
			"hr_manager_approved_by":      nil,
			"hr_manager_approved_at":      nil,
			"hr_manager_rejection_notes":  nil,
			"interviewer_acknowledged":    false,
			"interviewer_acknowledged_by": nil,
			"interviewer_acknowledged_at": nil,
			"interviewer_rejection_notes": nil,
			"update_at":                   now,
		}).Error; err != nil {
		return fmt.Errorf("failed to resubmit proposal: %w", err)
	}
	proposal.Position = terms.Position
	proposal.Level = terms.Level
	proposal.Grade = terms.Grade
	proposal.Department = terms.Department
	proposal.Salary = terms.Salary
	proposal.StartDate = terms.StartDate
	proposal.OfferStatus = "pending"
	proposal.HRManagerApproved = false
	proposal.HRManagerApprovedBy = nil
	proposal.HRManagerApprovedAt = nil
	proposal.HRManagerRejectionNotes = nil
	proposal.InterviewerAcknowledged = false
	proposal.InterviewerAcknowledgedBy = nil
	proposal.InterviewerAcknowledgedAt = nil
	proposal.InterviewerRejectionNotes = nil
	proposal.UpdateAt = &now
	return nil
}
