package models

import "time"

// CandidateAssignment binds a candidate to an interviewer. Reassignment
// deactivates the old row instead of mutating it, so history survives.
type CandidateAssignment struct {
	AssignmentID     int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	CandidateID      int        `gorm:"column:candidate_id" json:"candidate_id"`
	InterviewerName  string     `gorm:"column:interviewer_name" json:"interviewer_name"`
	InterviewerEmail string     `gorm:"column:interviewer_email" json:"interviewer_email"`
	Status           string     `gorm:"column:status" json:"status"` // pending|in_progress|completed
	IsActive         bool       `gorm:"column:is_active" json:"is_active"`
	Note             *string    `gorm:"column:note" json:"note,omitempty"`
	AssignedBy       *int       `gorm:"column:assigned_by" json:"assigned_by,omitempty"`
	AssignedByEmail  *string    `gorm:"column:assigned_by_email" json:"assigned_by_email,omitempty"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (CandidateAssignment) TableName() string {
	return "candidate_assignments"
}
