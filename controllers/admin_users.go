package controllers

import (
	"net/http"
	"strconv"
	"time"

	"applicant-tracking-api/models"

	"github.com/gin-gonic/gin"
)

// GetUsers lists accounts for the admin user-management screen.
func GetUsers(c *gin.Context) {
	query := getDB().Preload("Role").Where("delete_at IS NULL")

	if roleID := c.Query("role_id"); roleID != "" {
		query = query.Where("role_id = ?", roleID)
	}
	if pending := c.Query("pending"); pending == "1" || pending == "true" {
		query = query.Where("role_id = ?", models.RolePending)
	}

	var users []models.User
	if err := query.Order("create_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// ApproveUser grants a pending account its working role and activates it.
func ApproveUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	type ApproveRequest struct {
		RoleID int `json:"role_id" binding:"required"`
	}
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RoleID == models.RolePending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot approve into the pending role"})
		return
	}

	var user models.User
	if err := getDB().Where("user_id = ? AND delete_at IS NULL", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	if err := getDB().Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"role_id":   req.RoleID,
			"is_active": true,
			"update_at": now,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved"})
}

// DeactivateUser revokes access without deleting the account.
func DeactivateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	uid, _ := getCurrentUserID(c)
	if uid == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot deactivate your own account"})
		return
	}

	now := time.Now()
	if err := getDB().Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{"is_active": false, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}
