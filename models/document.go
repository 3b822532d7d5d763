package models

import "time"

// Document represents an uploaded file (candidate resumes).
type Document struct {
	DocumentID   int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	CandidateID  *int       `gorm:"column:candidate_id" json:"candidate_id,omitempty"`
	OriginalName string     `gorm:"column:original_name" json:"original_name"`
	StoredPath   string     `gorm:"column:stored_path" json:"stored_path"`
	FileSize     int64      `gorm:"column:file_size" json:"file_size"`
	MimeType     string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy   *int       `gorm:"column:uploaded_by" json:"uploaded_by,omitempty"`
	UploadedAt   time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// IsValidResumeType reports whether the mime type is accepted for resumes.
func (d *Document) IsValidResumeType() bool {
	validTypes := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, validType := range validTypes {
		if d.MimeType == validType {
			return true
		}
	}
	return false
}
