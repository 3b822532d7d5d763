package models

import "time"

// StatusHistory is the append-only audit log of candidate status transitions.
// Write-only from the application's perspective.
type StatusHistory struct {
	HistoryID      int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	CandidateID    int       `gorm:"column:candidate_id" json:"candidate_id"`
	FromStatus     *string   `gorm:"column:from_status" json:"from_status"`
	ToStatus       string    `gorm:"column:to_status" json:"to_status"`
	ChangedBy      int       `gorm:"column:changed_by" json:"changed_by"`
	ChangedByEmail string    `gorm:"column:changed_by_email" json:"changed_by_email"`
	Note           *string   `gorm:"column:note" json:"note"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (StatusHistory) TableName() string {
	return "status_history"
}
