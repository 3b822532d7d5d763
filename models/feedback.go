package models

import "time"

const (
	DecisionToOffer = "to_offer"
	DecisionOnHold  = "on_hold"
	DecisionReject  = "reject"
)

const (
	ScoreCategoryCompetency = "competency"
	ScoreCategoryCoreValue  = "core_value"
)

// InterviewFeedback is the interviewer's scored assessment. Immutable after
// submission except for HR back-fill of salary/position during offer prep.
type InterviewFeedback struct {
	FeedbackID       int        `gorm:"primaryKey;column:feedback_id" json:"feedback_id"`
	InterviewID      int        `gorm:"column:interview_id" json:"interview_id"`
	CandidateID      int        `gorm:"column:candidate_id" json:"candidate_id"`
	InterviewerEmail string     `gorm:"column:interviewer_email" json:"interviewer_email"`
	TotalScore       int        `gorm:"column:total_score" json:"total_score"`
	MaxScore         int        `gorm:"column:max_score" json:"max_score"`
	Percentage       int        `gorm:"column:percentage" json:"percentage"`
	Decision         string     `gorm:"column:decision" json:"decision"` // to_offer|on_hold|reject
	StrengthOpinion  *string    `gorm:"column:strength_opinion" json:"strength_opinion,omitempty"`
	OverallOpinion   *string    `gorm:"column:overall_opinion" json:"overall_opinion,omitempty"`
	ProposedSalary   *float64   `gorm:"column:proposed_salary" json:"proposed_salary,omitempty"`
	ProposedPosition *string    `gorm:"column:proposed_position" json:"proposed_position,omitempty"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Scores []FeedbackScore `gorm:"foreignKey:FeedbackID" json:"scores,omitempty"`
}

// FeedbackScore is one rubric row: a 1-5 rating on a competency or
// core-value topic.
type FeedbackScore struct {
	ScoreID    int    `gorm:"primaryKey;column:score_id" json:"score_id"`
	FeedbackID int    `gorm:"column:feedback_id" json:"feedback_id"`
	Topic      string `gorm:"column:topic" json:"topic"`
	Category   string `gorm:"column:category" json:"category"` // competency|core_value
	Score      int    `gorm:"column:score" json:"score"`
}

func (InterviewFeedback) TableName() string {
	return "interview_feedbacks"
}

func (FeedbackScore) TableName() string {
	return "feedback_scores"
}
