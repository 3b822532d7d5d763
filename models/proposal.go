package models

import "time"

// JobProposal is the offer record subject to two-stage approval
// (HR Manager first, then interviewer acknowledgment).
type JobProposal struct {
	ProposalID  int        `gorm:"primaryKey;column:proposal_id" json:"proposal_id"`
	CandidateID int        `gorm:"column:candidate_id" json:"candidate_id"`
	FeedbackID  *int       `gorm:"column:feedback_id" json:"feedback_id,omitempty"`
	Position    string     `gorm:"column:position" json:"position"`
	Level       *string    `gorm:"column:level" json:"level,omitempty"`
	Grade       *string    `gorm:"column:grade" json:"grade,omitempty"`
	Department  *string    `gorm:"column:department" json:"department,omitempty"`
	Salary      float64    `gorm:"column:salary" json:"salary"`
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	OfferStatus string     `gorm:"column:offer_status" json:"offer_status"` // pending|approved|rejected

	HRManagerApproved       bool       `gorm:"column:hr_manager_approved" json:"hr_manager_approved"`
	HRManagerApprovedBy     *int       `gorm:"column:hr_manager_approved_by" json:"hr_manager_approved_by,omitempty"`
	HRManagerApprovedAt     *time.Time `gorm:"column:hr_manager_approved_at" json:"hr_manager_approved_at,omitempty"`
	HRManagerRejectionNotes *string    `gorm:"column:hr_manager_rejection_notes" json:"hr_manager_rejection_notes,omitempty"`

	InterviewerAcknowledged   bool       `gorm:"column:interviewer_acknowledged" json:"interviewer_acknowledged"`
	InterviewerAcknowledgedBy *int       `gorm:"column:interviewer_acknowledged_by" json:"interviewer_acknowledged_by,omitempty"`
	InterviewerAcknowledgedAt *time.Time `gorm:"column:interviewer_acknowledged_at" json:"interviewer_acknowledged_at,omitempty"`
	InterviewerRejectionNotes *string    `gorm:"column:interviewer_rejection_notes" json:"interviewer_rejection_notes,omitempty"`

	SubmittedBy      int        `gorm:"column:submitted_by" json:"submitted_by"`
	SubmittedByEmail string     `gorm:"column:submitted_by_email" json:"submitted_by_email"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (JobProposal) TableName() string {
	return "job_proposals"
}
