package models

import "time"

// CandidateStatus is the closed set of pipeline states. Transitions between
// them are validated centrally in services.ChangeStatus.
type CandidateStatus string

const (
	StatusNew                CandidateStatus = "new"
	StatusShortlisted        CandidateStatus = "shortlisted"
	StatusToInterview        CandidateStatus = "to_interview"
	StatusInterviewScheduled CandidateStatus = "interview_scheduled"
	StatusInterviewed        CandidateStatus = "interviewed"
	StatusToOffer            CandidateStatus = "to_offer"
	StatusPendingApproval    CandidateStatus = "pending_approval"
	StatusOfferSent          CandidateStatus = "offer_sent"
	StatusOfferRejected      CandidateStatus = "offer_rejected"
	StatusHired              CandidateStatus = "hired"
	StatusRejected           CandidateStatus = "rejected"
	StatusOnHold             CandidateStatus = "on_hold"
)

// Candidate is an applicant in the hiring pipeline. Never hard-deleted.
type Candidate struct {
	CandidateID     int             `gorm:"primaryKey;column:candidate_id" json:"candidate_id"`
	FirstName       string          `gorm:"column:first_name" json:"first_name"`
	LastName        string          `gorm:"column:last_name" json:"last_name"`
	Email           string          `gorm:"column:email" json:"email"`
	Phone           string          `gorm:"column:phone" json:"phone"`
	NationalID      *string         `gorm:"column:national_id" json:"national_id,omitempty"`
	Address         *string         `gorm:"column:address" json:"address,omitempty"`
	PositionApplied string          `gorm:"column:position_applied" json:"position_applied"`
	ExperienceYears int             `gorm:"column:experience_years" json:"experience_years"`
	Education       *string         `gorm:"column:education" json:"education,omitempty"`
	ExpectedSalary  *float64        `gorm:"column:expected_salary" json:"expected_salary,omitempty"`
	Status          CandidateStatus `gorm:"column:status" json:"status"`
	ResumeID        *int            `gorm:"column:resume_id" json:"resume_id,omitempty"`
	UpdatedBy       *int            `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedByEmail  *string         `gorm:"column:updated_by_email" json:"updated_by_email,omitempty"`
	CreateAt        time.Time       `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time      `gorm:"column:update_at" json:"update_at"`

	// Relations
	Resume *Document `gorm:"foreignKey:ResumeID" json:"resume,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}

func (c Candidate) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
