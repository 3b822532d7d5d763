package models

import "time"

const (
	InterviewScheduled = "scheduled"
	InterviewCancelled = "cancelled"
	InterviewCompleted = "completed"
)

// Interview is one scheduled session per assignment cycle. Rescheduling with
// the same interviewer mutates the row; reassignment cancels it and inserts a
// new one.
type Interview struct {
	InterviewID       int        `gorm:"primaryKey;column:interview_id" json:"interview_id"`
	CandidateID       int        `gorm:"column:candidate_id" json:"candidate_id"`
	AssignmentID      int        `gorm:"column:assignment_id" json:"assignment_id"`
	InterviewerName   string     `gorm:"column:interviewer_name" json:"interviewer_name"`
	InterviewerEmail  string     `gorm:"column:interviewer_email" json:"interviewer_email"`
	ScheduledAt       time.Time  `gorm:"column:scheduled_at" json:"scheduled_at"`
	DurationMinutes   int        `gorm:"column:duration_minutes" json:"duration_minutes"`
	Location          *string    `gorm:"column:location" json:"location,omitempty"`
	MeetingLink       *string    `gorm:"column:meeting_link" json:"meeting_link,omitempty"`
	IsOnline          bool       `gorm:"column:is_online" json:"is_online"`
	Status            string     `gorm:"column:status" json:"status"` // scheduled|cancelled|completed
	FeedbackSubmitted bool       `gorm:"column:feedback_submitted" json:"feedback_submitted"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Interview) TableName() string {
	return "interviews"
}
