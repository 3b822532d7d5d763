package controllers

import (
	"net/http"
	"time"

	"applicant-tracking-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns pipeline counts for the landing dashboards.
func GetDashboardStats(c *gin.Context) {
	db := getDB()

	type statusCount struct {
		Status string `gorm:"column:status" json:"status"`
		Count  int64  `gorm:"column:count" json:"count"`
	}

	var byStatus []statusCount
	if err := db.Model(&models.Candidate{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var pendingApprovals int64
	db.Model(&models.JobProposal{}).
		Where("offer_status = ?", "pending").
		Count(&pendingApprovals)

	var upcomingInterviews int64
	db.Model(&models.Interview{}).
		Where("status = ? AND scheduled_at > ?", models.InterviewScheduled, time.Now()).
		Count(&upcomingInterviews)

	var awaitingFeedback int64
	db.Model(&models.Interview{}).
		Where("status = ? AND feedback_submitted = 0", models.InterviewCompleted).
		Count(&awaitingFeedback)

	c.JSON(http.StatusOK, gin.H{
		"candidates_by_status": byStatus,
		"pending_approvals":    pendingApprovals,
		"upcoming_interviews":  upcomingInterviews,
		"awaiting_feedback":    awaitingFeedback,
	})
}
