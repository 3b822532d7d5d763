package services

import (
	"fmt"
	"time"

	"applicant-tracking-api/models"

	"gorm.io/gorm"
)

// transitions is the closed transition table for candidate statuses.
// Feedback submission can move a candidate straight from interview_scheduled
// to a decision status, so the table allows those jumps alongside the
// linear pipeline.
var transitions = map[models.CandidateStatus][]models.CandidateStatus{
	models.StatusNew: {
		models.StatusShortlisted, models.StatusRejected, models.StatusOnHold,
	},
	models.StatusShortlisted: {
		models.StatusToInterview, models.StatusInterviewScheduled,
		models.StatusRejected, models.StatusOnHold,
	},
	models.StatusToInterview: {
		models.StatusInterviewScheduled, models.StatusRejected, models.StatusOnHold,
	},
	models.StatusInterviewScheduled: {
		models.StatusInterviewed, models.StatusToOffer,
		models.StatusRejected, models.StatusOnHold,
	},
	models.StatusInterviewed: {
		models.StatusToOffer, models.StatusRejected, models.StatusOnHold,
	},
	models.StatusToOffer: {
		models.StatusPendingApproval, models.StatusRejected, models.StatusOnHold,
	},
	models.StatusPendingApproval: {
		models.StatusOfferSent, models.StatusRejected, models.StatusOnHold,
	},
	models.StatusOfferSent: {
		models.StatusHired, models.StatusOfferRejected,
	},
	models.StatusOnHold: {
		models.StatusShortlisted, models.StatusToInterview,
		models.StatusInterviewScheduled, models.StatusInterviewed,
		models.StatusToOffer, models.StatusRejected,
	},
	// rejected, offer_rejected and hired are terminal
	models.StatusRejected:      {},
	models.StatusOfferRejected: {},
	models.StatusHired:         {},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to models.CandidateStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Actor identifies who performed a workflow action, for audit stamping.
type Actor struct {
	UserID int
	Email  string
}

// ChangeStatus validates the transition, appends the status-history row and
// then updates the candidate. History is written first so a crash between the
// two writes still leaves an audit trail. The two writes are separate
// statements; there is no rollback of the history row if the update fails.
func ChangeStatus(db *gorm.DB, candidate *models.Candidate, to models.CandidateStatus, actor Actor, note string) error {
	from := candidate.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("illegal status transition: %s -> %s", from, to)
	}

	now := time.Now()
	fromStr := string(from)
	history := models.StatusHistory{
		CandidateID:    candidate.CandidateID,
		FromStatus:     &fromStr,
		ToStatus:       string(to),
		ChangedBy:      actor.UserID,
		ChangedByEmail: actor.Email,
		CreatedAt:      now,
	}
	if note != "" {
		history.Note = &note
	}
	if err := db.Create(&history).Error; err != nil {
		return fmt.Errorf("failed to record status history: %w", err)
	}

	candidate.Status = to
	candidate.UpdatedBy = &actor.UserID
	candidate.UpdatedByEmail = &actor.Email
	candidate.UpdateAt = &now

	if err := db.Model(&models.Candidate{}).
		Where("candidate_id = ?", candidate.CandidateID).
		Updates(map[string]interface{}{
			"status":           string(to),
			"updated_by":       actor.UserID,
			"updated_by_email": actor.Email,
			"update_at":        now,
		}).Error; err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}

	return nil
}

// RecordNote appends an audit row without changing the status. Used for
// approval-stage rejections, where the candidate stays in pending_approval
// but the event must show up in the history.
func RecordNote(db *gorm.DB, candidate *models.Candidate, actor Actor, note string) error {
	status := string(candidate.Status)
	history := models.StatusHistory{
		CandidateID:    candidate.CandidateID,
		FromStatus:     &status,
		ToStatus:       status,
		ChangedBy:      actor.UserID,
		ChangedByEmail: actor.Email,
		Note:           &note,
		CreatedAt:      time.Now(),
	}
	if err := db.Create(&history).Error; err != nil {
		return fmt.Errorf("failed to record status history: %w", err)
	}
	return nil
}
