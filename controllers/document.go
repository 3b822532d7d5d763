package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"applicant-tracking-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxResumeSize = 10 << 20 // 10 MB

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// UploadResume stores a candidate's resume under a uuid filename and links
// it to the candidate row.
func UploadResume(c *gin.Context) {
	candidateID, err := strconv.Atoi(c.Param("id"))
	if err != nil || candidateID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candidate id"})
		return
	}

	var candidate models.Candidate
	if err := getDB().Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	doc := models.Document{
		CandidateID:  &candidateID,
		OriginalName: fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		UploadedAt:   time.Now(),
	}
	if !doc.IsValidResumeType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF and Word documents are accepted"})
		return
	}

	storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	doc.StoredPath = filepath.Join(uploadPath(), storedName)

	if uid, ok := getCurrentUserID(c); ok {
		doc.UploadedBy = &uid
	}

	if err := c.SaveUploadedFile(fileHeader, doc.StoredPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	if err := getDB().Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record document"})
		return
	}

	now := time.Now()
	if err := getDB().Model(&models.Candidate{}).
		Where("candidate_id = ?", candidateID).
		Updates(map[string]interface{}{"resume_id": doc.DocumentID, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link resume"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Resume uploaded",
		"document": doc,
	})
}

// DownloadResume streams a stored document back to HR.
func DownloadResume(c *gin.Context) {
	id := c.Param("document_id")

	var doc models.Document
	if err := getDB().Where("document_id = ? AND delete_at IS NULL", id).First(&doc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if _, err := os.Stat(doc.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File missing from storage"})
		return
	}

	c.FileAttachment(doc.StoredPath, doc.OriginalName)
}
