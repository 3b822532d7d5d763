package controllers

import (
	"net/http"

	"applicant-tracking-api/services"

	"github.com/gin-gonic/gin"
)

// GetPermissions returns the caller's resolved capability matrix and
// identity flags. Resolution errors come back as an empty, deny-all set.
func GetPermissions(c *gin.Context) {
	uid, ok := getCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	perms := services.ResolvePermissions(getDB(), uid)

	c.JSON(http.StatusOK, gin.H{
		"role_id":        perms.RoleID,
		"is_active":      perms.IsActive,
		"is_hr_admin":    perms.IsHRAdmin(),
		"is_hr_staff":    perms.IsHRStaff(),
		"is_hr_manager":  perms.IsHRManager(),
		"is_interviewer": perms.IsInterviewer(),
		"permissions":    perms.Matrix(),
	})
}
