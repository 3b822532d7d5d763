package models

import "time"

type Notification struct {
	NotificationID     uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID             uint       `gorm:"column:user_id" json:"user_id"`
	Title              string     `gorm:"column:title" json:"title"`
	Message            string     `gorm:"column:message" json:"message"`
	Type               string     `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedCandidateID *uint      `gorm:"column:related_candidate_id" json:"related_candidate_id,omitempty"`
	RelatedProposalID  *uint      `gorm:"column:related_proposal_id" json:"related_proposal_id,omitempty"`
	IsRead             bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt           time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt           *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailNotification is the audit row for one outbound email attempt,
// regardless of transport (webhook relay or direct SMTP).
type EmailNotification struct {
	EmailID         uint      `gorm:"primaryKey;column:email_id" json:"email_id"`
	EventType       string    `gorm:"column:event_type" json:"event_type"`
	CandidateID     uint      `gorm:"column:candidate_id" json:"candidate_id"`
	RecipientEmail  string    `gorm:"column:recipient_email" json:"recipient_email"`
	RecipientName   *string   `gorm:"column:recipient_name" json:"recipient_name,omitempty"`
	Status          string    `gorm:"column:status" json:"status"` // pending|sent|failed
	WebhookResponse *string   `gorm:"column:webhook_response" json:"webhook_response,omitempty"`
	Reference       string    `gorm:"column:reference" json:"reference"`
	SenderUserID    *uint     `gorm:"column:sender_user_id" json:"sender_user_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (EmailNotification) TableName() string { return "email_notifications" }

// NotificationConfig holds per-event webhook settings. The secret is never
// exposed to any client route; only the relay service reads this table.
type NotificationConfig struct {
	ConfigID   uint       `gorm:"primaryKey;column:config_id" json:"config_id"`
	EventType  string     `gorm:"column:event_type;unique" json:"event_type"`
	WebhookURL string     `gorm:"column:webhook_url" json:"-"`
	Secret     string     `gorm:"column:secret" json:"-"`
	Enabled    bool       `gorm:"column:enabled" json:"enabled"`
	CreateAt   time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (NotificationConfig) TableName() string { return "notification_configs" }
